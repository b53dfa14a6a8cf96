package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "idgen_gateway_requests_total",
		Help: "Total number of gateway requests",
	}, []string{"path", "code"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "idgen_gateway_request_latency_seconds",
		Help:    "Gateway request latency distribution",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 100微秒到3.2秒
	}, []string{"path"})
)

// MetricsMiddleware 请求计数与延迟
type MetricsMiddleware struct {
}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{}
}

func (m *MetricsMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(rw, r)

		path := r.URL.Path
		httpRequests.WithLabelValues(path, strconv.Itoa(rw.statusCode)).Inc()
		httpLatency.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}
