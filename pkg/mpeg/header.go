package mpeg

import (
	"github.com/pkg/errors"
)

// Version is the 2-bit MPEG audio version ID.
type Version uint8

const (
	MPEG25 Version = iota
	VersionReserved
	MPEG2
	MPEG1
)

func (v Version) String() string {
	switch v {
	case MPEG25:
		return "MPEG2.5"
	case MPEG2:
		return "MPEG2"
	case MPEG1:
		return "MPEG1"
	}
	return "reserved"
}

// Layer is the 2-bit layer description. The encoding runs backwards: 1 is
// Layer III and 3 is Layer I.
type Layer uint8

const (
	LayerReserved Layer = iota
	LayerIII
	LayerII
	LayerI
)

func (l Layer) String() string {
	switch l {
	case LayerIII:
		return "Layer3"
	case LayerII:
		return "Layer2"
	case LayerI:
		return "Layer1"
	}
	return "Reserved"
}

// ChannelMode is the 2-bit channel mode.
type ChannelMode uint8

const (
	Stereo ChannelMode = iota
	JointStereo
	DualChannel
	SingleChannel
)

func (c ChannelMode) String() string {
	switch c {
	case Stereo:
		return "stereo"
	case JointStereo:
		return "joint stereo"
	case DualChannel:
		return "dual channel"
	}
	return "single channel"
}

// Emphasis is the 2-bit de-emphasis selector.
type Emphasis uint8

func (e Emphasis) String() string {
	switch e {
	case 0:
		return "none"
	case 1:
		return "50/15 us"
	case 3:
		return "CCITT J.17"
	}
	return "reserved"
}

// FrameHeader is the decoded form of a 4-byte frame header.
//
//	AAAAAAAA AAABBCCD EEEEFFGH IIJJKLMM
//
// A sync, B version, C layer, D protection, E bitrate index, F sampling
// index, G padding, H private, I channel mode, J mode extension,
// K copyright, L original, M emphasis.
type FrameHeader struct {
	Version       Version
	Layer         Layer
	Protection    uint8 // 0 means a CRC follows the header
	BitrateIndex  uint8
	SamplingIndex uint8
	Padding       uint8
	Private       uint8
	ChannelMode   ChannelMode
	ModeExtension uint8
	Copyright     uint8
	Original      uint8
	Emphasis      Emphasis
}

// IsSync reports whether b starts with the frame sync pattern.
func IsSync(b []byte) bool {
	return len(b) >= 2 && b[0] == 0xFF && (b[1]&0xE0) == 0xE0
}

// Decode extracts the header fields from the first four bytes of b.
func Decode(b []byte) (FrameHeader, error) {
	if len(b) < headerSize {
		return FrameHeader{}, errors.Wrapf(ErrTruncated, "header needs %d bytes, got %d", headerSize, len(b))
	}
	if !IsSync(b) {
		return FrameHeader{}, errors.Wrapf(ErrInvalidSync, "got % x", b[:headerSize])
	}

	return FrameHeader{
		Version:       Version((b[1] & 0x18) >> 3),
		Layer:         Layer((b[1] & 0x06) >> 1),
		Protection:    b[1] & 0x01,
		BitrateIndex:  (b[2] & 0xF0) >> 4,
		SamplingIndex: (b[2] & 0x0C) >> 2,
		Padding:       (b[2] & 0x02) >> 1,
		Private:       b[2] & 0x01,
		ChannelMode:   ChannelMode((b[3] & 0xC0) >> 6),
		ModeExtension: (b[3] & 0x30) >> 4,
		Copyright:     (b[3] & 0x08) >> 3,
		Original:      (b[3] & 0x04) >> 2,
		Emphasis:      Emphasis(b[3] & 0x03),
	}, nil
}

// SamplingRate returns the sampling rate in Hz, 0 for reserved combinations.
func (h FrameHeader) SamplingRate() int {
	return samplingRateTable[h.Version&0x03][h.SamplingIndex&0x03]
}

// Bitrate returns the bit rate in bits per second, 0 for free or reserved
// combinations.
func (h FrameHeader) Bitrate() int {
	return bitrateTable[h.Version&0x03][h.Layer&0x03][h.BitrateIndex&0x0F] * 1000
}

// Channels returns 1 for single channel and 2 otherwise.
func (h FrameHeader) Channels() int {
	return channelTable[h.ChannelMode&0x03]
}

// MediaType classifies the header's version and layer.
func (h FrameHeader) MediaType() MediaType {
	return mediaTypeTable[h.Version&0x03][h.Layer&0x03]
}

// FrameSize returns the size of the whole frame, header included.
func (h FrameHeader) FrameSize() (int, error) {
	sr := h.SamplingRate()
	br := h.Bitrate()
	if sr == 0 || br == 0 {
		return 0, errors.Wrapf(ErrInvalidTable, "%s %s bitrate index %d sampling index %d",
			h.Version, h.Layer, h.BitrateIndex, h.SamplingIndex)
	}
	return bytesPerFrameUnit*br/sr + int(h.Padding), nil
}

// ForceJointStereo rewrites the channel mode bits of a raw header in place
// to joint stereo, leaving the low six bits untouched.
func ForceJointStereo(b []byte) {
	b[3] = (b[3] & 0x3F) | 0x40
}
