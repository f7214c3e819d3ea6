package httpx

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookshelf_http_requests_total",
		Help: "HTTP requests processed, labeled by method, path and status.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookshelf_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// MetricsMiddleware records request counts and latency. Paths are
// recorded as the mux pattern-ish prefix, not the raw URL, to keep
// label cardinality bounded.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		timer := prometheus.NewTimer(requestDuration.WithLabelValues(r.Method, metricPath(r.URL.Path)))
		next.ServeHTTP(rw, r)
		timer.ObserveDuration()

		requestsTotal.WithLabelValues(r.Method, metricPath(r.URL.Path), strconv.Itoa(rw.statusCode)).Inc()
	})
}

func metricPath(path string) string {
	// Collapse /api/books/{id} into one series.
	const booksPrefix = "/api/books/"
	if len(path) > len(booksPrefix) && path[:len(booksPrefix)] == booksPrefix {
		return "/api/books/{id}"
	}
	return path
}
