package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil limiter disables rate limiting on /api/v1; a nil metrics serves 503 on /metrics.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
	limiterInstance *limiter.Limiter,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	setupAPIV1Routes(r, cfg, services, limiterInstance)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiterInstance *limiter.Limiter,
) {
	var chain []gin.HandlerFunc
	if limiterInstance != nil {
		chain = append(chain, middleware.RateLimit(limiterInstance))
	}
	if cfg.JWTSecret != "" {
		chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret))
	}
	v1 := r.Group("/api/v1", chain...)

	registerTransactionRoutes(v1, services.Posting)
	registerInvoiceRoutes(v1, services.Posting)
	registerReportingRoutes(v1, services)
	registerReferenceRoutes(v1, services.Reference)
}
