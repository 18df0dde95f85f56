package mpeg

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

const (
	// TrailingTagSize is the length of the legacy tag at the end of a file.
	TrailingTagSize = 128

	// LeadingTagHeaderSize is the length of the fixed ID3v2 header.
	LeadingTagHeaderSize = 10

	// MaxSyncsafe is the exclusive upper bound of a 4-byte syncsafe integer.
	MaxSyncsafe = 1 << 28
)

var (
	trailingTagMagic = []byte("TAG")
	leadingTagMagic  = []byte("ID3")
)

// DetectTrailingTag reports whether the last 128 bytes of r begin with
// "TAG". Sources of 128 bytes or less never carry one.
func DetectTrailingTag(r io.ReadSeeker) (bool, error) {
	c := newCursor(r)
	size, err := c.size()
	if err != nil {
		return false, err
	}
	tail, err := readTrailingTag(c, size)
	if err != nil {
		return false, err
	}
	return tail != nil, nil
}

// readTrailingTag returns the 128-byte trailing tag, or nil when the source
// has none.
func readTrailingTag(c *cursor, size int64) ([]byte, error) {
	if size <= TrailingTagSize {
		return nil, nil
	}
	if err := c.seek(size - TrailingTagSize); err != nil {
		return nil, err
	}
	tail := make([]byte, TrailingTagSize)
	if _, err := c.read(tail); err != nil {
		if isEOF(err) {
			return nil, errors.Wrap(ErrTruncated, "trailing tag")
		}
		return nil, errors.Wrap(err, "read trailing tag")
	}
	if !bytes.HasPrefix(tail, trailingTagMagic) {
		return nil, nil
	}
	return tail, nil
}

// DetectLeadingTagLength reads the 10-byte ID3v2 header from r and returns
// the number of tag bytes that follow it.
func DetectLeadingTagLength(r io.Reader) (int64, error) {
	var hdr [LeadingTagHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if isEOF(err) {
			return 0, errors.Wrap(ErrTruncated, "leading tag header")
		}
		return 0, errors.Wrap(err, "read leading tag header")
	}
	if !bytes.HasPrefix(hdr[:], leadingTagMagic) {
		return 0, errors.Wrapf(ErrNotATag, "got %q", hdr[:3])
	}
	return int64(DecodeSyncsafe(hdr[6:10])), nil
}

// DecodeSyncsafe decodes a big-endian integer carrying seven significant bits
// per byte.
func DecodeSyncsafe(b []byte) uint32 {
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// EncodeSyncsafe is the inverse of DecodeSyncsafe for n < MaxSyncsafe.
func EncodeSyncsafe(n uint32) [4]byte {
	return [4]byte{
		byte(n>>21) & 0x7F,
		byte(n>>14) & 0x7F,
		byte(n>>7) & 0x7F,
		byte(n) & 0x7F,
	}
}
