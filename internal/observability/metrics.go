package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

var (
	registerOnce sync.Once

	framesDecoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "commsbind",
			Subsystem: "frame",
			Name:      "decoded_total",
			Help:      "Messages decoded and dispatched by a frame.",
		},
		[]string{"frame", "message"},
	)
	framesEncoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "commsbind",
			Subsystem: "frame",
			Name:      "encoded_total",
			Help:      "Messages encoded by a frame.",
		},
		[]string{"frame", "message"},
	)
	frameErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "commsbind",
			Subsystem: "frame",
			Name:      "errors_total",
			Help:      "Frame read and write failures by status.",
		},
		[]string{"frame", "status"},
	)
	frameBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "commsbind",
			Subsystem: "frame",
			Name:      "bytes_total",
			Help:      "Octets consumed (in) or produced (out) by a frame.",
		},
		[]string{"frame", "direction"},
	)
	frameSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "commsbind",
			Subsystem: "frame",
			Name:      "size_bytes",
			Help:      "Size of complete frames in octets.",
			Buckets:   prometheus.ExponentialBuckets(8, 4, 8),
		},
		[]string{"frame", "direction"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesDecoded, framesEncoded, frameErrors, frameBytes, frameSize)
	})
}

func RecordDecoded(frame, message string, size int) {
	RegisterMetrics()
	framesDecoded.WithLabelValues(frame, message).Inc()
	frameBytes.WithLabelValues(frame, DirectionIn).Add(float64(size))
	frameSize.WithLabelValues(frame, DirectionIn).Observe(float64(size))
}

func RecordEncoded(frame, message string, size int) {
	RegisterMetrics()
	framesEncoded.WithLabelValues(frame, message).Inc()
	frameBytes.WithLabelValues(frame, DirectionOut).Add(float64(size))
	frameSize.WithLabelValues(frame, DirectionOut).Observe(float64(size))
}

// RecordFrameError counts a failure under its status name.
func RecordFrameError(frame, status string) {
	RegisterMetrics()
	frameErrors.WithLabelValues(frame, status).Inc()
}

// Decoded returns the decode counter for a frame and message.
func Decoded(frame, message string) prometheus.Counter {
	RegisterMetrics()
	return framesDecoded.WithLabelValues(frame, message)
}

func Encoded(frame, message string) prometheus.Counter {
	RegisterMetrics()
	return framesEncoded.WithLabelValues(frame, message)
}

func Errors(frame, status string) prometheus.Counter {
	RegisterMetrics()
	return frameErrors.WithLabelValues(frame, status)
}
