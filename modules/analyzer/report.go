package analyzer

import (
	"fmt"
	"io"

	"github.com/zachfi/mp3walk/pkg/mpeg"
)

const rule = "------------------------------------------------------------------------------"

var (
	protectionLabels    = [2]string{"CRC", "NON"}
	modeExtensionLabels = [4]string{"subband 4+", "subband 8+", "subband 12+", "subband 16+"}
	copyrightLabels     = [2]string{"copyright disabled", "copyright enabled"}
	originalLabels      = [2]string{"copied", "original"}
)

func writeHeader(w io.Writer, path string, v mpeg.Variant, l mpeg.Layout) {
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "%s\n", v)
	fmt.Fprintf(w, "Data Start : %d\n", l.Region.Start)
	fmt.Fprintf(w, "Data End   : %d\n", l.Region.End)
}

func writeFrame(w io.Writer, fr mpeg.Frame) {
	h := fr.Header
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "Frame : %08d   Pos : %d   frame size : %d   version : %s   layer : %s\n",
		fr.Index, fr.Offset, fr.Size, h.Version, h.Layer)
	fmt.Fprintf(w, "sampling rate  : %d   bit rate : %d   channel : %s\n",
		h.SamplingRate(), h.Bitrate(), h.ChannelMode)
	fmt.Fprintf(w, "protection bit : %s   padding bit : %d   private bit : %d\n",
		protectionLabels[h.Protection&0x01], h.Padding, h.Private)
	fmt.Fprintf(w, "extension mode : %s   copyright : %s   original : %s   emphasis : %s\n",
		modeExtensionLabels[h.ModeExtension&0x03], copyrightLabels[h.Copyright&0x01], originalLabels[h.Original&0x01], h.Emphasis)
	fmt.Fprintf(w, "%s\n", rule)
}

func writeSummary(w io.Writer, sum mpeg.Summary) {
	fmt.Fprintf(w, "Frames      : %d\n", sum.Frames)
	if sum.Frames == 0 {
		return
	}
	fmt.Fprintf(w, "Sample rate : %d\n", sum.SampleRate())
	fmt.Fprintf(w, "Channel     : %d\n", sum.Channels())
	fmt.Fprintf(w, "Version     : %s\n", sum.Version())
	fmt.Fprintf(w, "Layer       : %s\n", sum.Layer())
	fmt.Fprintf(w, "Media type  : %s\n", sum.Last.MediaType())
	fmt.Fprintf(w, "Duration    : %s\n", sum.Duration())
}

func writeSkip(w io.Writer, n int, res mpeg.SkipResult) {
	fmt.Fprintf(w, "Skip %d     : %d frames, offset %d, %s\n", n, res.Frames, res.Offset, res.Status)
}
