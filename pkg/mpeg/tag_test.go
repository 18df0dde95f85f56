package mpeg

import (
	"bytes"
	"errors"
	"testing"
	"testing/quick"
)

func TestSyncsafe_RoundTrip(t *testing.T) {
	f := func(n uint32) bool {
		n %= MaxSyncsafe
		enc := EncodeSyncsafe(n)
		for _, b := range enc {
			if b&0x80 != 0 {
				return false
			}
		}
		return DecodeSyncsafe(enc[:]) == n
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 10000}); err != nil {
		t.Error(err)
	}

	for _, n := range []uint32{0, 1, 127, 128, 16383, 16384, MaxSyncsafe - 1} {
		enc := EncodeSyncsafe(n)
		if got := DecodeSyncsafe(enc[:]); got != n {
			t.Errorf("expected %d, got %d", n, got)
		}
	}
}

func TestDecodeSyncsafe_IgnoresTopBits(t *testing.T) {
	if got := DecodeSyncsafe([]byte{0x80, 0x80, 0x80, 0xFF}); got != 0x7F {
		t.Errorf("expected 0x7f, got 0x%x", got)
	}
}

func TestDetectLeadingTagLength(t *testing.T) {
	data := append(leadingTag(16), stereo128[:]...)

	n, err := DetectLeadingTagLength(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 16 {
		t.Errorf("expected 16, got %d", n)
	}
}

func TestDetectLeadingTagLength_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not a tag", []byte("RIFF\x00\x00\x00\x00WAVE"), ErrNotATag},
		{"frame sync", append(stereo128[:], make([]byte, 8)...), ErrNotATag},
		{"short header", []byte("ID3\x03\x00"), ErrTruncated},
		{"empty", nil, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DetectLeadingTagLength(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDetectTrailingTag(t *testing.T) {
	tag := trailingTag()

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", nil, false},
		{"exactly one tag", tag, false},
		{"short file", []byte("TAG"), false},
		{"one byte before tag", append([]byte{0xFF}, tag...), true},
		{"frames and tag", append(buildStream(t, 3, stereo128), tag...), true},
		{"frames only", buildStream(t, 3, stereo128), false},
		{"tag not at end", append(append([]byte{0xFF}, tag...), 0x00), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectTrailingTag(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
