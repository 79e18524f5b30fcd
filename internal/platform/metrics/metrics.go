package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the Prometheus metrics of the service on its own registry.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	postingsTotal   *prometheus.CounterVec
	fallbacksTotal  *prometheus.CounterVec
	cacheTotal      *prometheus.CounterVec
}

var _ portssvc.PostingObserver = (*Metrics)(nil)

// New initialises the registry and every collector.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeping_http_requests_total",
			Help: "Number of HTTP requests by route and status.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookkeeping_http_request_duration_seconds",
			Help:    "HTTP request duration per route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		postingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeping_postings_total",
			Help: "Committed postings by operation.",
		}, []string{"operation"}),
		fallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeping_reference_fallbacks_total",
			Help: "References resolved to a default value, by role.",
		}, []string{"role"}),
		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeping_report_cache_requests_total",
			Help: "Report cache lookups by report and result (hit, miss, error).",
		}, []string{"report", "result"}),
	}
	registry.MustRegister(m.requestsTotal, m.requestDuration, m.postingsTotal, m.fallbacksTotal, m.cacheTotal)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler returns the /metrics handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and latency of every request, labelled by the matched gin route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Gatherer exposes the registry for reads, mostly in tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) ObservePosting(operation string, _ *domain.PostingResult) {
	if m == nil {
		return
	}
	m.postingsTotal.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveFallbacks(fallbacks []domain.Fallback) {
	if m == nil {
		return
	}
	for _, fb := range fallbacks {
		m.fallbacksTotal.WithLabelValues(string(fb.Role)).Inc()
	}
}

// ObserveCache counts one report cache lookup.
func (m *Metrics) ObserveCache(report, result string) {
	if m == nil {
		return
	}
	m.cacheTotal.WithLabelValues(report, result).Inc()
}
