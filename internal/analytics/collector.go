package analytics

import (
	"context"
	"log/slog"

	"github.com/ruseek/ruseek/pkg/kafka"
)

// Collector buffers search events and publishes them to Kafka from a single
// background goroutine. Track never blocks the request path: events are
// dropped when the buffer is full.
type Collector struct {
	producer *kafka.Producer
	eventCh  chan SearchEvent
	logger   *slog.Logger
	done     chan struct{}
}

// NewCollector creates a Collector with the given buffer size.
func NewCollector(producer *kafka.Producer, bufferSize int) *Collector {
	if bufferSize <= 0 {
		bufferSize = 10000
	}
	return &Collector{
		producer: producer,
		eventCh:  make(chan SearchEvent, bufferSize),
		logger:   slog.Default().With("component", "analytics-collector"),
		done:     make(chan struct{}),
	}
}

// Start launches the publishing goroutine. It drains what it can when ctx is
// cancelled.
func (c *Collector) Start(ctx context.Context) {
	go func() {
		defer close(c.done)
		for {
			select {
			case event, ok := <-c.eventCh:
				if !ok {
					return
				}
				if err := c.producer.Publish(ctx, kafka.Event{
					Key:   "search",
					Value: event,
				}); err != nil {
					c.logger.Error("failed to publish analytics event", "error", err)
				}
			case <-ctx.Done():
				c.drainRemaining()
				return
			}
		}
	}()
	c.logger.Info("analytics collector started", "buffer_size", cap(c.eventCh))
}

// Track enqueues an event, dropping it if the buffer is full.
func (c *Collector) Track(event SearchEvent) {
	select {
	case c.eventCh <- event:
	default:
		c.logger.Warn("analytics event dropped (buffer full)")
	}
}

// Close stops the collector after the queue is flushed.
func (c *Collector) Close() {
	close(c.eventCh)
	<-c.done
}

func (c *Collector) drainRemaining() {
	for {
		select {
		case event, ok := <-c.eventCh:
			if !ok {
				return
			}
			if err := c.producer.Publish(context.Background(), kafka.Event{
				Key:   "search",
				Value: event,
			}); err != nil {
				c.logger.Error("failed to publish remaining event", "error", err)
			}
		default:
			return
		}
	}
}
