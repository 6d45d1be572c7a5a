// Package index implements the on-disk index file format: a fixed 32-byte
// header, a forward section of document records, and an inverted section of
// term posting lists. All integers are little-endian. The file is write-once;
// readers open it read-only and cache the decoded sections.
package index

import (
	"encoding/binary"
	"errors"
)

// Magic identifies a valid index file (0x49445831, "IDX1" when the number is
// read big-endian; like every field it is stored little-endian, so the first
// four bytes on disk are "1XDI").
const (
	Magic        uint32 = 0x49445831
	VersionMajor uint16 = 1
	VersionMinor uint16 = 0
	HeaderSize          = 32

	// MaxTitleLen and MaxTermLen are the on-disk width limits for
	// length-prefixed fields.
	MaxTitleLen = 0xFFFF
	MaxURLLen   = 0xFFFF
	MaxTermLen  = 0xFF
)

var (
	ErrBadMagic    = errors.New("index: bad magic")
	ErrBadVersion  = errors.New("index: unsupported version")
	ErrFormatLimit = errors.New("index: value exceeds on-disk width")
)

// DocumentInfo is one forward-index record. The zero value doubles as the
// sentinel for unknown document ids.
type DocumentInfo struct {
	DocID uint32
	Title string
	URL   string
}

// Header is the fixed-size record at offset 0.
type Header struct {
	Magic         uint32
	VersionMajor  uint16
	VersionMinor  uint16
	Flags         uint32
	NumDocuments  uint32
	NumTerms      uint32
	Reserved      uint32
	ForwardOffset uint64
}

func (h Header) encode() [HeaderSize]byte {
	var b [HeaderSize]byte
	binary.LittleEndian.PutUint32(b[0:4], h.Magic)
	binary.LittleEndian.PutUint16(b[4:6], h.VersionMajor)
	binary.LittleEndian.PutUint16(b[6:8], h.VersionMinor)
	binary.LittleEndian.PutUint32(b[8:12], h.Flags)
	binary.LittleEndian.PutUint32(b[12:16], h.NumDocuments)
	binary.LittleEndian.PutUint32(b[16:20], h.NumTerms)
	binary.LittleEndian.PutUint32(b[20:24], h.Reserved)
	binary.LittleEndian.PutUint64(b[24:32], h.ForwardOffset)
	return b
}

func decodeHeader(b []byte) Header {
	return Header{
		Magic:         binary.LittleEndian.Uint32(b[0:4]),
		VersionMajor:  binary.LittleEndian.Uint16(b[4:6]),
		VersionMinor:  binary.LittleEndian.Uint16(b[6:8]),
		Flags:         binary.LittleEndian.Uint32(b[8:12]),
		NumDocuments:  binary.LittleEndian.Uint32(b[12:16]),
		NumTerms:      binary.LittleEndian.Uint32(b[16:20]),
		Reserved:      binary.LittleEndian.Uint32(b[20:24]),
		ForwardOffset: binary.LittleEndian.Uint64(b[24:32]),
	}
}
