package mpeg

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// Variant is the layout of an MPEG audio file.
type Variant int

const (
	// Bare files start directly with a frame header.
	Bare Variant = iota + 1
	// Tagged files start with an ID3v2 tag.
	Tagged
)

func (v Variant) String() string {
	switch v {
	case Bare:
		return "mp3v1"
	case Tagged:
		return "mp3v2"
	}
	return "unknown"
}

// DetectVariant selects the variant from the first four bytes of a file.
func DetectVariant(b []byte) (Variant, error) {
	if len(b) < headerSize {
		return 0, errors.Wrapf(ErrTruncated, "need %d bytes to detect format, got %d", headerSize, len(b))
	}
	switch {
	case IsSync(b):
		return Bare, nil
	case bytes.HasPrefix(b, leadingTagMagic):
		return Tagged, nil
	}
	return 0, errors.Wrapf(ErrUnrecognizedFormat, "header % x", b[:headerSize])
}

// StartOffset returns the offset of the first frame in r.
func (v Variant) StartOffset(r io.ReadSeeker) (int64, error) {
	switch v {
	case Bare:
		return 0, nil
	case Tagged:
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return 0, errors.Wrap(err, "seek to leading tag")
		}
		n, err := DetectLeadingTagLength(r)
		if err != nil {
			return 0, err
		}
		return LeadingTagHeaderSize + n, nil
	}
	return 0, errors.Wrapf(ErrUnrecognizedFormat, "variant %d", int(v))
}

// Stream is an MPEG audio file whose variant has been detected.
type Stream struct {
	r       io.ReadSeeker
	variant Variant
	size    int64
}

// Open detects the variant of r. It does not traverse any frames.
func Open(r io.ReadSeeker) (*Stream, error) {
	c := newCursor(r)
	size, err := c.size()
	if err != nil {
		return nil, err
	}
	if err := c.seek(0); err != nil {
		return nil, err
	}

	var magic [headerSize]byte
	n, err := c.read(magic[:])
	if err != nil && !isEOF(err) {
		return nil, errors.Wrap(err, "read format header")
	}

	v, err := DetectVariant(magic[:n])
	if err != nil {
		return nil, err
	}

	return &Stream{r: r, variant: v, size: size}, nil
}

func (s *Stream) Variant() Variant { return s.variant }

func (s *Stream) Size() int64 { return s.size }

// Layout is the result of locating frames and tags in a stream.
type Layout struct {
	Region      Region
	TrailingTag []byte
}

// Locate establishes the frame region and captures the trailing tag.
func (s *Stream) Locate() (Layout, error) {
	start, err := s.variant.StartOffset(s.r)
	if err != nil {
		return Layout{}, err
	}
	tail, err := readTrailingTag(newCursor(s.r), s.size)
	if err != nil {
		return Layout{}, err
	}
	return Layout{
		Region:      NewRegion(start, s.size, tail != nil),
		TrailingTag: tail,
	}, nil
}

// Region returns the byte range holding audio frames.
func (s *Stream) Region() (Region, error) {
	l, err := s.Locate()
	return l.Region, err
}

// Analyze walks every frame of the stream.
func (s *Stream) Analyze(fn FrameFunc) (Summary, error) {
	region, err := s.Region()
	if err != nil {
		return Summary{}, err
	}
	return WalkToEnd(s.r, region, fn)
}

// SkipFrames skips the first frame and then n further frames. It is used to
// resume at a frame offset tracked elsewhere without rescanning.
func (s *Stream) SkipFrames(n int) (SkipResult, error) {
	start, err := s.variant.StartOffset(s.r)
	if err != nil {
		return SkipResult{}, err
	}

	first, err := WalkCount(s.r, start, 1)
	if err != nil || first.Status == ReachedEOF {
		return first, err
	}

	return WalkCount(s.r, first.Offset, n)
}

// ForceJointStereo writes a copy of the stream to dst with every frame's
// channel mode set to joint stereo. The leading tag is copied verbatim and
// the trailing tag is appended only when the source has one.
func (s *Stream) ForceJointStereo(dst io.Writer) (RewriteResult, error) {
	l, err := s.Locate()
	if err != nil {
		return RewriteResult{}, err
	}
	return Rewrite(dst, s.r, l.Region, l.TrailingTag, ForceJointStereo)
}
