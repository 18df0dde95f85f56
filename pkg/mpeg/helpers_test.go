package mpeg

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// MPEG1 Layer III, no CRC, 128 kbps, 44100 Hz, stereo: 417 bytes.
var stereo128 = [4]byte{0xFF, 0xFB, 0x90, 0x00}

// withChannelMode returns hdr with the channel mode bits replaced.
func withChannelMode(hdr [4]byte, mode ChannelMode) [4]byte {
	hdr[3] = (hdr[3] & 0x3F) | byte(mode)<<6
	return hdr
}

// withPadding returns hdr with the padding bit set.
func withPadding(hdr [4]byte) [4]byte {
	hdr[2] |= 0x02
	return hdr
}

// buildFrame returns a complete frame for hdr with a payload that differs
// per seed so frames are distinguishable.
func buildFrame(t testing.TB, hdr [4]byte, seed byte) []byte {
	t.Helper()

	h, err := Decode(hdr[:])
	if err != nil {
		t.Fatalf("decode test header: %v", err)
	}
	size, err := h.FrameSize()
	if err != nil {
		t.Fatalf("size test header: %v", err)
	}

	frame := make([]byte, size)
	copy(frame, hdr[:])
	for i := headerSize; i < size; i++ {
		frame[i] = seed + byte(i)
	}
	return frame
}

// buildStream concatenates n frames of hdr.
func buildStream(t testing.TB, n int, hdr [4]byte) []byte {
	t.Helper()

	var b []byte
	for i := 0; i < n; i++ {
		b = append(b, buildFrame(t, hdr, byte(i))...)
	}
	return b
}

func trailingTag() []byte {
	tag := make([]byte, TrailingTagSize)
	copy(tag, "TAGTitle")
	for i := 8; i < len(tag); i++ {
		tag[i] = 'x'
	}
	return tag
}

// leadingTag returns an ID3v2.3 header followed by bodyLen bytes of tag data.
func leadingTag(bodyLen uint32) []byte {
	size := EncodeSyncsafe(bodyLen)
	tag := []byte{'I', 'D', '3', 0x03, 0x00, 0x00, size[0], size[1], size[2], size[3]}
	for i := uint32(0); i < bodyLen; i++ {
		tag = append(tag, byte(i%7))
	}
	return tag
}

var errDisk = errors.New("disk on fire")

// failingReader behaves like bytes.Reader until a read would cross failAt.
type failingReader struct {
	*bytes.Reader
	failAt int64
}

func (f *failingReader) Read(p []byte) (int, error) {
	pos, _ := f.Reader.Seek(0, io.SeekCurrent)
	if pos+int64(len(p)) > f.failAt {
		return 0, errDisk
	}
	return f.Reader.Read(p)
}

// shortWriter accepts one byte less than requested once limit bytes have
// been written.
type shortWriter struct {
	bytes.Buffer
	limit int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if w.Len()+len(p) > w.limit && len(p) > 0 {
		n, _ := w.Buffer.Write(p[:len(p)-1])
		return n, nil
	}
	return w.Buffer.Write(p)
}
