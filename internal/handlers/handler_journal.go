package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	organizationService portssvc.OrganizationReaderSvc
	journalService      portssvc.JournalSvcFacade
	defaultListLimit    int
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(os portssvc.OrganizationReaderSvc, js portssvc.JournalSvcFacade, defaultListLimit int) *journalHandler {
	return &journalHandler{
		organizationService: os,
		journalService:      js,
		defaultListLimit:    pagination.LimitOrDefault(defaultListLimit, 25),
	}
}

// registerJournalRoutes registers the organization scoped entry routes on org and the
// entry id routes on root.
func registerJournalRoutes(org, root *gin.RouterGroup, organizationService portssvc.OrganizationReaderSvc, journalService portssvc.JournalSvcFacade, defaultListLimit int) {
	h := newJournalHandler(organizationService, journalService, defaultListLimit)

	orgEntries := org.Group("/entries")
	{
		orgEntries.POST("", h.createEntry)
		orgEntries.GET("", h.listEntries)
	}

	entries := root.Group("/entries")
	{
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/post", h.postEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Validates, balances and atomically persists an entry with its group and line nodes
// @Tags entries
// @Accept json
// @Produce json
// @Param code path string true "Organization code"
// @Param entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Organization or account not found"
// @Failure 422 {object} map[string]string "Validation error, including unbalanced entries"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Security BearerAuth
// @Router /organizations/{code}/entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	org, ok := organizationFromPath(c, h.organizationService)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	logger = logger.With(slog.Int64("organization_id", org.ID))
	logger.Info("Received request to create entry", slog.Int("line_count", len(req.Lines)))

	entry, err := h.journalService.CreateEntry(c.Request.Context(), org.ID, req, middleware.GetActorIDFromContext(c))
	if err != nil {
		respondError(c, logger, err, "Failed to create entry")
		return
	}

	logger.Info("Entry created successfully", slog.Int64("entry_id", entry.ID))
	c.JSON(http.StatusCreated, dto.EntryResponse{Entry: *entry})
}

// listEntries godoc
// @Summary List the latest entries
// @Description Entries ordered by date then id, newest first, with debit and credit totals
// @Tags entries
// @Produce json
// @Param code path string true "Organization code"
// @Param limit query int false "Maximum number of entries" default(25)
// @Success 200 {object} dto.ItemsResponse[domain.EntrySummary]
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /organizations/{code}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	org, ok := organizationFromPath(c, h.organizationService)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), org.ID, pagination.LimitOrDefault(params.Limit, h.defaultListLimit))
	if err != nil {
		respondError(c, logger, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, dto.NewItemsResponse(entries))
}

// getEntry godoc
// @Summary Get an entry
// @Description Returns the entry with its group node first and its lines in posting order
// @Tags entries
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid entry ID"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entryID, ok := entryIDFromPath(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger.With(slog.Int64("entry_id", entryID)), err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.EntryResponse{Entry: *entry})
}

// postEntry godoc
// @Summary Post an entry
// @Description Marks the entry as posted and stamps posted_at
// @Tags entries
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid entry ID"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entries/{id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entryID, ok := entryIDFromPath(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.Int64("entry_id", entryID))

	entry, err := h.journalService.PostEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to post entry")
		return
	}

	logger.Info("Entry posted successfully")
	c.JSON(http.StatusOK, dto.EntryResponse{Entry: *entry})
}

func entryIDFromPath(c *gin.Context, logger *slog.Logger) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("Invalid entry ID", slog.String("entry_id", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return 0, false
	}
	return id, true
}
