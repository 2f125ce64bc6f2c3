package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Flow-level metrics, labeled by outcome so dashboards can split success from
// upstream failure without log scraping.
var (
	ResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "canvas_resolutions_total",
		Help: "Location resolution calls by result.",
	}, []string{"result"})

	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "canvas_recommendations_total",
		Help: "Style recommendation calls by result.",
	}, []string{"result"})

	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "canvas_generations_total",
		Help: "Image generation calls by quality and result.",
	}, []string{"quality", "result"})

	GenerationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "canvas_generation_duration_seconds",
		Help:    "Image generation latency by quality.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
	}, []string{"quality"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "canvas_http_requests_total",
		Help: "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "canvas_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// NewMetricsMiddleware records request counts and latency for every route.
func NewMetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(recorder.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
		})
	}
}
