package inspector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "mp3walk",
	Subsystem: module,
	Name:      "requests_total",
	Help:      "Inspection requests, by HTTP status code.",
}, []string{"code"})
