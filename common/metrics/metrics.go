package metrics

import (
	"github.com/jlexm/turtle-tracker-svc/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"strings"
	"time"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var namespace = strings.ReplaceAll(common.ServiceName, "-", "_")

var registry = prometheus.NewRegistry()

var operations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "record_operations_total",
	Help:      "Turtle record operations by operation and outcome.",
}, []string{"operation", "outcome"})

var durations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "record_operation_duration_seconds",
	Help:      "Latency of turtle record operations.",
	Buckets:   prometheus.DefBuckets,
}, []string{"operation"})

var uploadedBytes = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "image_upload_bytes_total",
	Help:      "Bytes of turtle images written to the blob store.",
})

func init() {
	registry.MustRegister(operations, durations, uploadedBytes)
}

// RecordOperation counts one finished operation started at `started`
func RecordOperation(operation string, outcome string, started time.Time) {
	operations.WithLabelValues(operation, outcome).Inc()
	durations.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// RecordImageUpload adds the size of an uploaded image
func RecordImageUpload(size int) {
	uploadedBytes.Add(float64(size))
}

// Registry exposes the registry the counters live in, mostly for tests
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the registry in the prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// Operations is the operation counter, mostly for tests
func Operations() *prometheus.CounterVec {
	return operations
}

// UploadedBytes is the upload byte counter, mostly for tests
func UploadedBytes() prometheus.Counter {
	return uploadedBytes
}
