package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// apiMiddleware runs in front of every /api/v1 route, after authentication.
// The custom binding validators are registered on first use.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services, apiMiddleware)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiMiddleware []gin.HandlerFunc,
) {
	var chain []gin.HandlerFunc
	if cfg.JWTSecret != "" {
		chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	}
	chain = append(chain, apiMiddleware...)
	v1 := r.Group("/api/v1", chain...)

	organizations := v1.Group("/organizations")
	registerOrganizationRoutes(organizations, services.Organization)

	// Everything below /organizations/:code operates inside one organization.
	org := organizations.Group("/:code")
	registerAccountRoutes(org, services.Organization, services.Account)
	registerJournalRoutes(org, v1, services.Organization, services.Journal, cfg.EntryListDefaultLimit)
	registerReportingRoutes(org, services.Organization, services.Reporting)

	registerTaxonomyRoutes(v1.Group("/taxonomy"), services.Taxonomy, cfg.TaxonomyCSVDelimiter)
}
