package mpeg

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnrecognizedFormat is returned when the first bytes of a file are
	// neither a frame sync nor an ID3v2 tag.
	ErrUnrecognizedFormat = errors.New("unrecognized format")

	// ErrNotATag is returned when the "ID3" magic is missing where a leading
	// tag header was expected.
	ErrNotATag = errors.New("not an ID3v2 tag")

	// ErrInvalidSync is returned when a frame was expected but the sync
	// pattern 11111111 111xxxxx is absent.
	ErrInvalidSync = errors.New("invalid frame sync")

	// ErrInvalidTable is returned for headers whose version, layer, bitrate
	// or sampling index selects a zero table entry.
	ErrInvalidTable = errors.New("invalid table entry")

	// ErrTruncated is returned on a short read that is not a legitimate end
	// of stream.
	ErrTruncated = errors.New("truncated stream")

	// ErrIO is returned when the byte source fails for a reason other than
	// end of file during a bounded walk.
	ErrIO = errors.New("i/o error")

	// ErrShortWrite is returned when the destination accepts fewer bytes
	// than requested.
	ErrShortWrite = errors.New("short write")
)

// FrameError reports a fatal condition at a frame boundary. Err is one of
// the sentinels above; Cause, when set, is the underlying source or sink
// error.
type FrameError struct {
	Index  int
	Offset int64
	Err    error
	Cause  error
}

func (e *FrameError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("frame %d at offset %d: %v: %v", e.Index, e.Offset, e.Err, e.Cause)
	}
	return fmt.Sprintf("frame %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *FrameError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}
