package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DocumentsUploaded = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "landverify", Name: "documents_uploaded_total", Help: "Number of documents uploaded."},
	)
	DocumentsVerified = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "landverify", Name: "documents_verified_total", Help: "Number of verify decisions by outcome."},
		[]string{"status"},
	)
	LoginFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "landverify", Name: "login_failures_total", Help: "Number of rejected login attempts."},
	)
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "landverify", Name: "http_requests_total", Help: "Number of HTTP requests by method and status."},
		[]string{"method", "status"},
	)
)

// RegisterCollectors registers all service collectors on the given registry.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentsUploaded)
	reg.MustRegister(DocumentsVerified)
	reg.MustRegister(LoginFailures)
	reg.MustRegister(RequestsTotal)
}

// Handler exposes the registry in Prometheus text format.
func Handler(reg *prometheus.Registry) gin.HandlerFunc {
	h := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
