package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsHandler 暴露 Prometheus 指标
func metricsHandler() http.HandlerFunc {
	return promhttp.Handler().ServeHTTP
}
