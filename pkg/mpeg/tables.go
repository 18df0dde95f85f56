package mpeg

const (
	// SamplesPerFrame is the sample count of one frame as used for duration
	// estimates.
	SamplesPerFrame = 1152

	// bytesPerFrameUnit is the constant of the frame size formula,
	// 144 * bitrate / sampling rate + padding.
	bytesPerFrameUnit = 144

	headerSize = 4
)

// bitrateTable holds kbps values indexed by [version][layer][bitrate index].
var bitrateTable = [4][4][16]int{
	{ // MPEG2.5
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
	},
	{ // reserved
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	},
	{ // MPEG2
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
	},
	{ // MPEG1
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
	},
}

// samplingRateTable holds Hz values indexed by [version][sampling index].
var samplingRateTable = [4][4]int{
	{11025, 12000, 8000, 0},
	{0, 0, 0, 0},
	{22050, 24000, 16000, 0},
	{44100, 48000, 32000, 0},
}

// channelTable is indexed by channel mode.
var channelTable = [4]int{2, 2, 2, 1}

// MediaType classifies a version/layer pair.
type MediaType int

const (
	MediaUnknown MediaType = iota
	MediaMPEG1Audio
	MediaMPEG2Audio
	MediaMPEG3Audio
)

func (m MediaType) String() string {
	switch m {
	case MediaMPEG1Audio:
		return "MPEG-1 audio"
	case MediaMPEG2Audio:
		return "MPEG-2 audio"
	case MediaMPEG3Audio:
		return "MPEG layer-3 audio"
	}
	return "unknown"
}

// mediaTypeTable is indexed by [version][layer].
var mediaTypeTable = [4][4]MediaType{
	{MediaUnknown, MediaMPEG2Audio, MediaMPEG2Audio, MediaMPEG2Audio},
	{MediaUnknown, MediaUnknown, MediaUnknown, MediaUnknown},
	{MediaUnknown, MediaMPEG2Audio, MediaMPEG2Audio, MediaMPEG3Audio},
	{MediaUnknown, MediaMPEG1Audio, MediaMPEG1Audio, MediaMPEG1Audio},
}

// MaxFrameSize is the largest frame size, in bytes, any valid header can
// produce. Payload scratch buffers are sized from it.
var MaxFrameSize = maxFrameSize()

func maxFrameSize() int {
	largest := 0
	for v := range bitrateTable {
		for l := range bitrateTable[v] {
			for _, kbps := range bitrateTable[v][l] {
				for _, hz := range samplingRateTable[v] {
					if kbps == 0 || hz == 0 {
						continue
					}
					if n := bytesPerFrameUnit*kbps*1000/hz + 1; n > largest {
						largest = n
					}
				}
			}
		}
	}
	return largest
}
