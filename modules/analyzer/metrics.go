package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricFiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mp3walk",
		Subsystem: module,
		Name:      "files_total",
		Help:      "Files analyzed, by result.",
	}, []string{"result"})

	metricFrames = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mp3walk",
		Subsystem: module,
		Name:      "frames_total",
		Help:      "Frames walked across all analyzed files.",
	})
)

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
