package mpeg

import (
	"bytes"
	"errors"
	"testing"
)

func TestDetectVariant(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		want    Variant
		wantErr error
	}{
		{"frame sync", stereo128[:], Bare, nil},
		{"id3", []byte("ID3\x04"), Tagged, nil},
		{"sync with bad second byte", []byte{0xFF, 0x1F, 0x00, 0x00}, 0, ErrUnrecognizedFormat},
		{"second byte alone", []byte{0x00, 0xFB, 0x90, 0x00}, 0, ErrUnrecognizedFormat},
		{"wave", []byte("RIFF"), 0, ErrUnrecognizedFormat},
		{"short", []byte{0xFF, 0xFB}, 0, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectVariant(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestOpen_Bare(t *testing.T) {
	data := buildStream(t, 3, stereo128)

	s, err := Open(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Variant() != Bare {
		t.Errorf("expected %s, got %s", Bare, s.Variant())
	}
	if s.Size() != int64(len(data)) {
		t.Errorf("expected size %d, got %d", len(data), s.Size())
	}

	region, err := s.Region()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if region != (Region{Start: 0, End: int64(len(data))}) {
		t.Errorf("unexpected region %+v", region)
	}

	sum, err := s.Analyze(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Frames != 3 || sum.Channels() != 2 || sum.Version() != MPEG1 || sum.Layer() != LayerIII {
		t.Errorf("unexpected summary %+v", sum)
	}
}

func TestOpen_Tagged(t *testing.T) {
	lead := leadingTag(64)
	data := append(lead, buildStream(t, 3, stereo128)...)
	data = append(data, trailingTag()...)

	s, err := Open(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Variant() != Tagged {
		t.Fatalf("expected %s, got %s", Tagged, s.Variant())
	}

	layout, err := s.Locate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout.Region.Start != int64(len(lead)) {
		t.Errorf("expected start %d, got %d", len(lead), layout.Region.Start)
	}
	if layout.Region.End != int64(len(data)-TrailingTagSize) {
		t.Errorf("expected end %d, got %d", len(data)-TrailingTagSize, layout.Region.End)
	}
	if len(layout.TrailingTag) != TrailingTagSize {
		t.Errorf("expected captured trailing tag, got %d bytes", len(layout.TrailingTag))
	}

	sum, err := s.Analyze(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", sum.Frames)
	}
}

func TestOpen_TagLongerThanFile(t *testing.T) {
	data := leadingTag(0)
	size := EncodeSyncsafe(5000)
	copy(data[6:], size[:])
	data = append(data, buildStream(t, 1, stereo128)...)

	s, err := Open(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum, err := s.Analyze(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Frames != 0 {
		t.Errorf("expected 0 frames, got %d", sum.Frames)
	}
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"unrecognized", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), ErrUnrecognizedFormat},
		{"too short", []byte{0xFF, 0xFB}, ErrTruncated},
		{"empty", nil, ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestStream_SkipFrames(t *testing.T) {
	lead := leadingTag(12)

	tests := []struct {
		name   string
		prefix []byte
	}{
		{"bare", nil},
		{"tagged", lead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := append(append([]byte{}, tt.prefix...), buildStream(t, 5, stereo128)...)
			start := int64(len(tt.prefix))

			s, err := Open(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			res, err := s.SkipFrames(2)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != Completed || res.Frames != 2 {
				t.Errorf("expected 2 frames completed, got %d %s", res.Frames, res.Status)
			}
			if res.Offset != start+3*417 {
				t.Errorf("expected offset %d, got %d", start+3*417, res.Offset)
			}

			res, err = s.SkipFrames(10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != ReachedEOF || res.Frames != 4 {
				t.Errorf("expected 4 frames and EOF, got %d %s", res.Frames, res.Status)
			}
		})
	}
}

func TestStream_SkipFramesEmpty(t *testing.T) {
	data := leadingTag(4)

	s, err := Open(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := s.SkipFrames(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != ReachedEOF || res.Frames != 0 {
		t.Errorf("expected 0 frames and EOF, got %d %s", res.Frames, res.Status)
	}
}
