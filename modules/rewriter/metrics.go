package rewriter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricFiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mp3walk",
		Subsystem: module,
		Name:      "files_total",
		Help:      "Files rewritten, by result.",
	}, []string{"result"})

	metricFrames = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mp3walk",
		Subsystem: module,
		Name:      "frames_total",
		Help:      "Frame headers rewritten to joint stereo.",
	})

	metricBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mp3walk",
		Subsystem: module,
		Name:      "written_bytes_total",
		Help:      "Bytes written to rewritten files.",
	})
)
