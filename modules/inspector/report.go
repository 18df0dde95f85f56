package inspector

import (
	"github.com/zachfi/mp3walk/pkg/mpeg"
)

// Report is the JSON body returned for an inspected file.
type Report struct {
	File        string  `json:"file"`
	Variant     string  `json:"variant"`
	Size        int64   `json:"size"`
	DataStart   int64   `json:"data_start"`
	DataEnd     int64   `json:"data_end"`
	TrailingTag bool    `json:"trailing_tag"`
	Frames      int     `json:"frames"`
	SampleRate  int     `json:"sample_rate,omitempty"`
	Channels    int     `json:"channels,omitempty"`
	Version     string  `json:"version,omitempty"`
	Layer       string  `json:"layer,omitempty"`
	MediaType   string  `json:"media_type,omitempty"`
	Duration    float64 `json:"duration_seconds,omitempty"`
	FrameList   []Frame `json:"frame_list,omitempty"`
}

// Frame is one entry of Report.FrameList.
type Frame struct {
	Index       int    `json:"index"`
	Offset      int64  `json:"offset"`
	Size        int    `json:"size"`
	Bitrate     int    `json:"bitrate"`
	ChannelMode string `json:"channel_mode"`
	Padding     bool   `json:"padding"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newReport(name string, s *mpeg.Stream, l mpeg.Layout, sum mpeg.Summary) Report {
	rep := Report{
		File:        name,
		Variant:     s.Variant().String(),
		Size:        s.Size(),
		DataStart:   l.Region.Start,
		DataEnd:     l.Region.End,
		TrailingTag: l.TrailingTag != nil,
		Frames:      sum.Frames,
	}
	if sum.Frames == 0 {
		return rep
	}

	rep.SampleRate = sum.SampleRate()
	rep.Channels = sum.Channels()
	rep.Version = sum.Version().String()
	rep.Layer = sum.Layer().String()
	rep.MediaType = sum.Last.MediaType().String()
	rep.Duration = sum.Duration().Seconds()
	return rep
}

func newFrame(fr mpeg.Frame) Frame {
	return Frame{
		Index:       fr.Index,
		Offset:      fr.Offset,
		Size:        fr.Size,
		Bitrate:     fr.Header.Bitrate(),
		ChannelMode: fr.Header.ChannelMode.String(),
		Padding:     fr.Header.Padding == 1,
	}
}
