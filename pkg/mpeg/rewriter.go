package mpeg

import (
	"io"

	"github.com/pkg/errors"
)

// HeaderTransform mutates a raw 4-byte frame header in place.
type HeaderTransform func(raw []byte)

// RewriteResult is the outcome of a rewrite.
type RewriteResult struct {
	Frames      int
	Written     int64
	TrailingTag bool
}

// rewriteSink writes to dst and fails on any short write.
type rewriteSink struct {
	w       io.Writer
	written int64
}

func (s *rewriteSink) write(b []byte) error {
	n, err := s.w.Write(b)
	s.written += int64(n)
	if err != nil {
		return err
	}
	if n != len(b) {
		return errors.Wrapf(ErrShortWrite, "wrote %d of %d bytes", n, len(b))
	}
	return nil
}

// Rewrite copies src to dst frame by frame. Bytes before region.Start are
// copied verbatim, each frame header in region is passed through transform
// before being written with its unmodified payload, and tail, when not nil,
// is appended last. On error dst holds partial output.
func Rewrite(dst io.Writer, src io.ReadSeeker, region Region, tail []byte, transform HeaderTransform) (RewriteResult, error) {
	var res RewriteResult

	c := newCursor(src)
	sink := &rewriteSink{w: dst}
	buf := make([]byte, MaxFrameSize)

	if err := c.seek(0); err != nil {
		return res, err
	}
	// A leading tag that reaches into the trailing tag must not copy tag
	// bytes that tail writes again.
	prefix := region.Start
	if tail != nil && prefix > region.End {
		prefix = region.End
	}
	if err := copyPrefix(c, sink, prefix, buf); err != nil {
		res.Written = sink.written
		return res, err
	}

	raw := buf[:headerSize]
	for c.offset < region.End {
		pos := c.offset
		if _, err := c.read(raw); err != nil {
			res.Written = sink.written
			return res, readFailure(err, res.Frames, pos)
		}

		_, size, err := sizeFrame(raw, res.Frames, pos)
		if err != nil {
			res.Written = sink.written
			return res, err
		}

		if transform != nil {
			transform(raw)
		}

		payload := buf[headerSize:size]
		if _, err := c.read(payload); err != nil {
			res.Written = sink.written
			return res, readFailure(err, res.Frames, pos)
		}
		if err := sink.write(buf[:size]); err != nil {
			res.Written = sink.written
			return res, writeFailure(err, res.Frames, pos)
		}
		res.Frames++
	}

	if tail != nil {
		if err := sink.write(tail); err != nil {
			res.Written = sink.written
			return res, errors.Wrap(err, "write trailing tag")
		}
		res.TrailingTag = true
	}

	res.Written = sink.written
	return res, nil
}

// copyPrefix copies the first n bytes of the source through buf.
func copyPrefix(c *cursor, sink *rewriteSink, n int64, buf []byte) error {
	for n > 0 {
		chunk := buf
		if int64(len(chunk)) > n {
			chunk = chunk[:n]
		}
		if _, err := c.read(chunk); err != nil {
			if isEOF(err) {
				return errors.Wrapf(ErrTruncated, "leading bytes end at %d", c.offset)
			}
			return errors.Wrap(err, "read leading bytes")
		}
		if err := sink.write(chunk); err != nil {
			return errors.Wrap(err, "write leading bytes")
		}
		n -= int64(len(chunk))
	}
	return nil
}

func writeFailure(err error, index int, pos int64) *FrameError {
	if errors.Is(err, ErrShortWrite) {
		return &FrameError{Index: index, Offset: pos, Err: err}
	}
	return &FrameError{Index: index, Offset: pos, Err: ErrIO, Cause: err}
}
