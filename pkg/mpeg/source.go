package mpeg

import (
	"io"

	"github.com/pkg/errors"
)

// cursor tracks the absolute offset of a seekable byte source.
type cursor struct {
	r      io.ReadSeeker
	offset int64
}

func newCursor(r io.ReadSeeker) *cursor {
	return &cursor{r: r}
}

// size returns the length of the source and leaves the cursor at its end.
func (c *cursor) size() (int64, error) {
	n, err := c.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errors.Wrap(err, "seek to end")
	}
	c.offset = n
	return n, nil
}

func (c *cursor) seek(off int64) error {
	n, err := c.r.Seek(off, io.SeekStart)
	if err != nil {
		return errors.Wrapf(err, "seek to %d", off)
	}
	c.offset = n
	return nil
}

func (c *cursor) skip(n int64) error {
	off, err := c.r.Seek(n, io.SeekCurrent)
	if err != nil {
		return errors.Wrapf(err, "skip %d bytes at %d", n, c.offset)
	}
	c.offset = off
	return nil
}

// read fills b. The error is io.EOF when nothing was read at end of file and
// io.ErrUnexpectedEOF when only part of b could be filled.
func (c *cursor) read(b []byte) (int, error) {
	n, err := io.ReadFull(c.r, b)
	c.offset += int64(n)
	return n, err
}

func isEOF(err error) bool {
	return err == io.EOF || err == io.ErrUnexpectedEOF
}
