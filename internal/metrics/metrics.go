// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mvaleed/personnel/internal/domain"
)

const namespace = "personnel"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	grpcRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "grpc",
		Name:      "requests_total",
		Help:      "Total number of gRPC calls by method and status code.",
	}, []string{"method", "code"})

	operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "directory",
		Name:      "operations_total",
		Help:      "Directory operations by name and result (ok or error kind).",
	}, []string{"operation", "result"})

	operationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "directory",
		Name:      "operation_duration_seconds",
		Help:      "Latency distribution of directory operations.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	}, []string{"operation"})
)

// ObserveHTTP records one served HTTP request. route is the matched pattern,
// never the raw path.
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveGRPC records one finished gRPC call.
func ObserveGRPC(method, code string) {
	grpcRequests.WithLabelValues(method, code).Inc()
}

// ObserveOperation records the outcome of a directory operation.
func ObserveOperation(operation string, err error, elapsed time.Duration) {
	operations.WithLabelValues(operation, Result(err)).Inc()
	operationLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Result is the result label for err: "ok", or the error's kind.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	return domain.KindOf(err).String()
}
