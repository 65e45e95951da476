package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports.
type reportingHandler struct {
	organizationService portssvc.OrganizationReaderSvc
	reportingService    portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(os portssvc.OrganizationReaderSvc, rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		organizationService: os,
		reportingService:    rs,
	}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationReaderSvc, reportingService portssvc.ReportingService) {
	h := newReportingHandler(organizationService, reportingService)

	rg.GET("/trial-balance", h.getTrialBalance)
	rg.GET("/snapshot", h.getSnapshot)
}

// getTrialBalance godoc
// @Summary Get trial balance
// @Description Per-account debit, credit and balance totals over every line posted to the organization
// @Tags reports
// @Produce json
// @Param code path string true "Organization code"
// @Param currency query string false "Only report accounts in this currency"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Failed to generate trial balance"
// @Security BearerAuth
// @Router /organizations/{code}/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	org, ok := organizationFromPath(c, h.organizationService)
	if !ok {
		return
	}

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	rows, err := h.reportingService.GetTrialBalance(c.Request.Context(), org.ID, params.Currency)
	if err != nil {
		respondError(c, logger.With(slog.Int64("organization_id", org.ID)), err, "Failed to generate trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(rows))
}

// getSnapshot godoc
// @Summary Get an organization snapshot
// @Description The organization with its accounts, trial balance and latest entries
// @Tags reports
// @Produce json
// @Param code path string true "Organization code"
// @Param limit query int false "Number of entries to include" default(25)
// @Success 200 {object} domain.Snapshot
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Failed to build snapshot"
// @Security BearerAuth
// @Router /organizations/{code}/snapshot [get]
func (h *reportingHandler) getSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organization code is required"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	snapshot, err := h.reportingService.GetSnapshot(c.Request.Context(), code, params.Limit)
	if err != nil {
		respondError(c, logger.With(slog.String("organization_code", code)), err, "Failed to build snapshot")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
