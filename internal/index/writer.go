package index

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"
)

// Writer serialises a forward index and an inverted index into a new index
// file. The call sequence is fixed: NewWriter, WriteForwardIndex,
// WriteInvertedIndex, Finalize. A Writer is single-use.
type Writer struct {
	f      *os.File
	path   string
	header Header
	offset int64
}

// NewWriter creates the output file and reserves a zero-filled header
// placeholder at offset 0. Finalize rewrites it with the real header.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating index file: %w", err)
	}
	var zeros [HeaderSize]byte
	if _, err := f.Write(zeros[:]); err != nil {
		f.Close()
		return nil, fmt.Errorf("reserving header: %w", err)
	}
	return &Writer{
		f:    f,
		path: path,
		header: Header{
			Magic:        Magic,
			VersionMajor: VersionMajor,
			VersionMinor: VersionMinor,
		},
		offset: HeaderSize,
	}, nil
}

// WriteForwardIndex writes the document records and records the section
// offset in the header. Titles and URLs must fit their u16 length prefix.
func (w *Writer) WriteForwardIndex(docs []DocumentInfo) error {
	w.header.ForwardOffset = uint64(w.offset)
	w.header.NumDocuments = uint32(len(docs))

	buf := make([]byte, 0, 512)
	for _, doc := range docs {
		if len(doc.Title) > MaxTitleLen {
			return fmt.Errorf("doc %d title is %d bytes: %w", doc.DocID, len(doc.Title), ErrFormatLimit)
		}
		if len(doc.URL) > MaxURLLen {
			return fmt.Errorf("doc %d url is %d bytes: %w", doc.DocID, len(doc.URL), ErrFormatLimit)
		}
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint32(buf, doc.DocID)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(doc.Title)))
		buf = append(buf, doc.Title...)
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(doc.URL)))
		buf = append(buf, doc.URL...)
		if err := w.write(buf); err != nil {
			return err
		}
	}
	return nil
}

// WriteInvertedIndex writes every term with its posting list, terms in
// ascending byte-lexicographic order and doc ids ascending within each list.
// Terms must fit their u8 length prefix.
func (w *Writer) WriteInvertedIndex(inverted map[string][]uint32) error {
	terms := make([]string, 0, len(inverted))
	for term := range inverted {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	w.header.NumTerms = uint32(len(terms))
	if err := w.write(binary.LittleEndian.AppendUint32(nil, uint32(len(terms)))); err != nil {
		return err
	}

	buf := make([]byte, 0, 1024)
	for _, term := range terms {
		if len(term) > MaxTermLen {
			return fmt.Errorf("term %q is %d bytes: %w", term, len(term), ErrFormatLimit)
		}
		postings := inverted[term]
		ids := make([]uint32, len(postings))
		copy(ids, postings)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		buf = buf[:0]
		buf = append(buf, byte(len(term)))
		buf = append(buf, term...)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(ids)))
		for _, id := range ids {
			buf = binary.LittleEndian.AppendUint32(buf, id)
		}
		if err := w.write(buf); err != nil {
			return err
		}
	}
	return nil
}

// Finalize rewrites the header at offset 0, syncs, and closes the file.
func (w *Writer) Finalize() error {
	hdr := w.header.encode()
	if _, err := w.f.WriteAt(hdr[:], 0); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.f.Sync(); err != nil {
		return fmt.Errorf("syncing index file: %w", err)
	}
	err := w.f.Close()
	w.f = nil
	if err != nil {
		return fmt.Errorf("closing index file: %w", err)
	}
	return nil
}

// Close releases the file handle without finalizing. The file on disk is
// incomplete at that point and the caller should remove it.
func (w *Writer) Close() error {
	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

func (w *Writer) write(b []byte) error {
	n, err := w.f.Write(b)
	w.offset += int64(n)
	if err != nil {
		return fmt.Errorf("writing index file: %w", err)
	}
	return nil
}
