package mpeg

import (
	"io"
	"time"
)

// Region is the [Start, End) byte range holding audio frames.
type Region struct {
	Start int64
	End   int64
}

// NewRegion builds the region for a source of the given size whose frames
// begin at start, excluding a trailing tag when present.
func NewRegion(start, size int64, trailingTag bool) Region {
	end := size
	if trailingTag {
		end -= TrailingTagSize
	}
	return Region{Start: start, End: end}
}

// Empty reports whether the region holds no bytes.
func (r Region) Empty() bool {
	return r.Start >= r.End
}

// Frame is one decoded and sized frame.
type Frame struct {
	Index  int
	Offset int64
	Size   int
	Header FrameHeader
}

// FrameFunc receives each frame as it is walked.
type FrameFunc func(Frame)

// Summary is the outcome of an exhaustive walk.
type Summary struct {
	Frames int

	// Last is the header of the final frame; zero when Frames is 0.
	Last FrameHeader
}

func (s Summary) SampleRate() int {
	if s.Frames == 0 {
		return 0
	}
	return s.Last.SamplingRate()
}

func (s Summary) Channels() int {
	if s.Frames == 0 {
		return 0
	}
	return s.Last.Channels()
}

func (s Summary) Version() Version { return s.Last.Version }

func (s Summary) Layer() Layer { return s.Last.Layer }

// Duration estimates the play time from the frame count and the last
// sampling rate.
func (s Summary) Duration() time.Duration {
	sr := s.SampleRate()
	if sr == 0 {
		return 0
	}
	samples := int64(s.Frames) * SamplesPerFrame
	return time.Duration(samples * int64(time.Second) / int64(sr))
}

// Status is the termination reason of a bounded walk.
type Status int

const (
	// Completed means the requested number of frames was skipped.
	Completed Status = iota
	// ReachedEOF means the source ended first; the frame count is partial.
	ReachedEOF
)

func (s Status) String() string {
	if s == ReachedEOF {
		return "reached EOF"
	}
	return "completed"
}

// SkipResult is the outcome of a bounded walk. Offset is the frame boundary
// where the walk stopped.
type SkipResult struct {
	Frames int
	Offset int64
	Status Status
}

// sizeFrame decodes a raw header read at pos and computes its frame size.
func sizeFrame(raw []byte, index int, pos int64) (FrameHeader, int, error) {
	h, err := Decode(raw)
	if err != nil {
		return h, 0, &FrameError{Index: index, Offset: pos, Err: err}
	}
	size, err := h.FrameSize()
	if err != nil {
		return h, 0, &FrameError{Index: index, Offset: pos, Err: err}
	}
	return h, size, nil
}

// readFailure classifies a failed header or payload read.
func readFailure(err error, index int, pos int64) *FrameError {
	if isEOF(err) {
		return &FrameError{Index: index, Offset: pos, Err: ErrTruncated}
	}
	return &FrameError{Index: index, Offset: pos, Err: ErrIO, Cause: err}
}

// WalkToEnd visits every frame in region, calling fn for each when fn is
// not nil. Any short read before region.End is fatal.
func WalkToEnd(r io.ReadSeeker, region Region, fn FrameFunc) (Summary, error) {
	var sum Summary

	c := newCursor(r)
	if err := c.seek(region.Start); err != nil {
		return sum, err
	}

	var raw [headerSize]byte
	for c.offset < region.End {
		pos := c.offset
		if _, err := c.read(raw[:]); err != nil {
			return sum, readFailure(err, sum.Frames, pos)
		}

		h, size, err := sizeFrame(raw[:], sum.Frames, pos)
		if err != nil {
			return sum, err
		}

		if fn != nil {
			fn(Frame{Index: sum.Frames, Offset: pos, Size: size, Header: h})
		}
		sum.Frames++
		sum.Last = h

		if err := c.skip(int64(size - headerSize)); err != nil {
			return sum, &FrameError{Index: sum.Frames - 1, Offset: pos, Err: ErrIO, Cause: err}
		}
	}

	return sum, nil
}

// WalkCount advances over at most limit frames starting at start. Running out
// of data at end of file is not an error: the result carries ReachedEOF and
// the number of frames actually skipped.
func WalkCount(r io.ReadSeeker, start int64, limit int) (SkipResult, error) {
	res := SkipResult{Offset: start}

	c := newCursor(r)
	if err := c.seek(start); err != nil {
		return res, err
	}

	var raw [headerSize]byte
	for res.Frames < limit {
		pos := c.offset
		if _, err := c.read(raw[:]); err != nil {
			if isEOF(err) {
				res.Status = ReachedEOF
				return res, nil
			}
			return res, &FrameError{Index: res.Frames, Offset: pos, Err: ErrIO, Cause: err}
		}

		_, size, err := sizeFrame(raw[:], res.Frames, pos)
		if err != nil {
			return res, err
		}

		if err := c.skip(int64(size - headerSize)); err != nil {
			return res, &FrameError{Index: res.Frames, Offset: pos, Err: ErrIO, Cause: err}
		}
		res.Frames++
		res.Offset = c.offset
	}

	res.Status = Completed
	return res, nil
}
