package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// taxonomyHandler handles HTTP requests related to the reference taxonomy.
type taxonomyHandler struct {
	taxonomyService  portssvc.TaxonomySvcFacade
	defaultDelimiter rune
}

func newTaxonomyHandler(ts portssvc.TaxonomySvcFacade, defaultDelimiter rune) *taxonomyHandler {
	return &taxonomyHandler{taxonomyService: ts, defaultDelimiter: defaultDelimiter}
}

// registerTaxonomyRoutes registers routes related to the reference taxonomy.
func registerTaxonomyRoutes(rg *gin.RouterGroup, taxonomyService portssvc.TaxonomySvcFacade, defaultDelimiter rune) {
	h := newTaxonomyHandler(taxonomyService, defaultDelimiter)

	rg.GET("", h.searchTaxonomy)
	rg.GET("/:code", h.getTaxonomyNode)
	rg.POST("/import", h.importTaxonomy)
}

// searchTaxonomy godoc
// @Summary Search the reference taxonomy
// @Tags taxonomy
// @Produce json
// @Param q query string false "Matched against code and title"
// @Param limit query int false "Maximum number of nodes"
// @Success 200 {object} dto.ItemsResponse[domain.TaxonomyNode]
// @Security BearerAuth
// @Router /taxonomy [get]
func (h *taxonomyHandler) searchTaxonomy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.SearchTaxonomyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	nodes, err := h.taxonomyService.SearchTaxonomy(c.Request.Context(), params.Query, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to search taxonomy")
		return
	}
	c.JSON(http.StatusOK, dto.NewItemsResponse(nodes))
}

// getTaxonomyNode godoc
// @Summary Get a taxonomy node by code
// @Tags taxonomy
// @Produce json
// @Param code path string true "Taxonomy code (case-insensitive)"
// @Success 200 {object} domain.TaxonomyNode
// @Failure 404 {object} map[string]string "Taxonomy code not found"
// @Security BearerAuth
// @Router /taxonomy/{code} [get]
func (h *taxonomyHandler) getTaxonomyNode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	node, err := h.taxonomyService.GetTaxonomyByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger.With(slog.String("taxonomy_code", code)), err, "Failed to retrieve taxonomy node")
		return
	}
	c.JSON(http.StatusOK, node)
}

// importTaxonomy godoc
// @Summary Import a taxonomy file
// @Description Upserts every usable row of a delimited file with a header row, in one transaction
// @Tags taxonomy
// @Accept plain
// @Accept mpfd
// @Produce json
// @Param delimiter query string false "Field delimiter (default ';', 'tab' for tab separated)"
// @Param version_tag query string false "Version recorded on every imported node"
// @Param file formData file false "Taxonomy file when sent as multipart"
// @Success 200 {object} domain.TaxonomyImportResult
// @Failure 400 {object} map[string]string "Malformed source"
// @Failure 500 {object} map[string]string "Import failed"
// @Security BearerAuth
// @Router /taxonomy/import [post]
func (h *taxonomyHandler) importTaxonomy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ImportTaxonomyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	opts := domain.TaxonomyImportOptions{Delimiter: h.defaultDelimiter, VersionTag: params.VersionTag}
	if params.Delimiter != "" {
		delimiter, err := config.ParseDelimiter(params.Delimiter)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts.Delimiter = delimiter
	}

	var source io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			respondBindError(c, logger, err, "upload")
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			respondBindError(c, logger, err, "upload")
			return
		}
		defer file.Close()
		source = file
	}

	result, err := h.taxonomyService.ImportTaxonomy(c.Request.Context(), source, opts)
	if err != nil {
		respondError(c, logger, err, "Taxonomy import failed")
		return
	}

	logger.Info("Taxonomy imported",
		slog.Int("inserted", result.Inserted),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
	)
	c.JSON(http.StatusOK, result)
}
