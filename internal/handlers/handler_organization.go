package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// organizationHandler handles HTTP requests related to the organization directory.
type organizationHandler struct {
	organizationService portssvc.OrganizationReaderSvc
}

func newOrganizationHandler(os portssvc.OrganizationReaderSvc) *organizationHandler {
	return &organizationHandler{organizationService: os}
}

// registerOrganizationRoutes registers the read-only organization routes.
func registerOrganizationRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationReaderSvc) {
	h := newOrganizationHandler(organizationService)

	rg.GET("", h.listOrganizations)
	rg.GET("/:code", h.getOrganization)
}

// listOrganizations godoc
// @Summary List organizations
// @Description Returns the organization hierarchy as a tree, or ordered by path when flat=true
// @Tags organizations
// @Produce json
// @Param flat query bool false "Return a flat list ordered by hierarchy path"
// @Success 200 {object} dto.ItemsResponse[domain.OrganizationNode]
// @Failure 500 {object} map[string]string "Failed to list organizations"
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListOrganizationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	if params.Flat {
		orgs, err := h.organizationService.ListOrganizations(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, "Failed to list organizations")
			return
		}
		c.JSON(http.StatusOK, dto.NewItemsResponse(orgs))
		return
	}

	tree, err := h.organizationService.ListOrganizationTree(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list organizations")
		return
	}
	c.JSON(http.StatusOK, dto.NewItemsResponse(tree))
}

// getOrganization godoc
// @Summary Get an organization by code
// @Tags organizations
// @Produce json
// @Param code path string true "Organization code (case-insensitive)"
// @Success 200 {object} domain.Organization
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{code} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	org, ok := organizationFromPath(c, h.organizationService)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, org)
}

// organizationFromPath resolves the :code path parameter. On failure the response
// has already been written and ok is false.
func organizationFromPath(c *gin.Context, organizationService portssvc.OrganizationReaderSvc) (*domain.Organization, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		logger.Warn("Organization code missing from path")
		c.JSON(http.StatusBadRequest, gin.H{"error": "organization code is required"})
		return nil, false
	}

	org, err := organizationService.GetOrganizationByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger.With(slog.String("organization_code", code)), err, "Failed to resolve organization")
		return nil, false
	}
	return org, true
}
