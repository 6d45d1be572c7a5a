package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
)

// Reader opens an index file and gives random access to its sections. The
// forward and inverted sections are decoded lazily, once, into in-memory
// maps. A Reader is not safe for concurrent use: it owns a file cursor and
// mutable caches. Callers that serve concurrent queries should load both
// sections up front and share the reader read-only, or hold one reader per
// worker.
type Reader struct {
	path   string
	f      *os.File
	br     *bufio.Reader
	header Header

	docs           map[uint32]DocumentInfo
	inverted       map[string][]uint32
	docsLoaded     bool
	invertedLoaded bool
}

// Open opens the file and validates its header. The minor version is ignored;
// a newer major version is rejected.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	hdr := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, hdr); err != nil {
		f.Close()
		return nil, fmt.Errorf("reading index header: %w", err)
	}
	h := decodeHeader(hdr)
	if h.Magic != Magic {
		f.Close()
		return nil, fmt.Errorf("%w: %#08x", ErrBadMagic, h.Magic)
	}
	if h.VersionMajor > VersionMajor {
		f.Close()
		return nil, fmt.Errorf("%w: %d.%d", ErrBadVersion, h.VersionMajor, h.VersionMinor)
	}
	return &Reader{path: path, f: f, header: h}, nil
}

// Header returns the decoded file header.
func (r *Reader) Header() Header {
	return r.header
}

// LoadDocuments decodes the forward section into a doc_id→DocumentInfo map.
// Idempotent; the first call leaves the cursor at the start of the inverted
// section.
func (r *Reader) LoadDocuments() (map[uint32]DocumentInfo, error) {
	if r.docsLoaded {
		return r.docs, nil
	}
	if _, err := r.f.Seek(int64(r.header.ForwardOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking forward section: %w", err)
	}
	r.br = bufio.NewReaderSize(r.f, 1<<16)

	docs := make(map[uint32]DocumentInfo, r.header.NumDocuments)
	for i := uint32(0); i < r.header.NumDocuments; i++ {
		docID, err := r.readUint32()
		if err != nil {
			return nil, fmt.Errorf("reading document record: %w", err)
		}
		title, err := r.readString16()
		if err != nil {
			return nil, fmt.Errorf("reading document title: %w", err)
		}
		url, err := r.readString16()
		if err != nil {
			return nil, fmt.Errorf("reading document url: %w", err)
		}
		docs[docID] = DocumentInfo{DocID: docID, Title: title, URL: url}
	}
	r.docs = docs
	r.docsLoaded = true
	return r.docs, nil
}

// LoadInvertedIndex decodes the inverted section into a term→postings map.
// It loads the forward section first, which positions the cursor. Idempotent.
func (r *Reader) LoadInvertedIndex() (map[string][]uint32, error) {
	if r.invertedLoaded {
		return r.inverted, nil
	}
	if _, err := r.LoadDocuments(); err != nil {
		return nil, err
	}

	numTerms, err := r.readUint32()
	if err != nil {
		return nil, fmt.Errorf("reading term count: %w", err)
	}
	inverted := make(map[string][]uint32, numTerms)
	for i := uint32(0); i < numTerms; i++ {
		term, err := r.readString8()
		if err != nil {
			return nil, fmt.Errorf("reading term: %w", err)
		}
		df, err := r.readUint32()
		if err != nil {
			return nil, fmt.Errorf("reading df for term %q: %w", term, err)
		}
		postings := make([]uint32, df)
		for j := uint32(0); j < df; j++ {
			postings[j], err = r.readUint32()
			if err != nil {
				return nil, fmt.Errorf("reading postings for term %q: %w", term, err)
			}
		}
		inverted[term] = postings
	}
	r.inverted = inverted
	r.invertedLoaded = true
	return r.inverted, nil
}

// PostingList returns the posting list for a term, or an empty list if the
// term is not indexed. The returned slice aliases the cache and must not be
// mutated.
func (r *Reader) PostingList(term string) ([]uint32, error) {
	inverted, err := r.LoadInvertedIndex()
	if err != nil {
		return nil, err
	}
	return inverted[term], nil
}

// AllDocIDs returns every known doc id in ascending order.
func (r *Reader) AllDocIDs() ([]uint32, error) {
	docs, err := r.LoadDocuments()
	if err != nil {
		return nil, err
	}
	ids := make([]uint32, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Document returns the DocumentInfo for a doc id, or the zero value if the
// id is unknown.
func (r *Reader) Document(docID uint32) (DocumentInfo, error) {
	docs, err := r.LoadDocuments()
	if err != nil {
		return DocumentInfo{}, err
	}
	return docs[docID], nil
}

// Close releases the file handle. Cached sections stay usable.
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

func (r *Reader) readUint32() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r.br, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func (r *Reader) readString16() (string, error) {
	var b [2]byte
	if _, err := io.ReadFull(r.br, b[:]); err != nil {
		return "", err
	}
	n := binary.LittleEndian.Uint16(b[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (r *Reader) readString8() (string, error) {
	n, err := r.br.ReadByte()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
