package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	organizationService portssvc.OrganizationReaderSvc
	accountService      portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(os portssvc.OrganizationReaderSvc, as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		organizationService: os,
		accountService:      as,
	}
}

// registerAccountRoutes registers routes related to accounts of one organization.
func registerAccountRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationReaderSvc, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(organizationService, accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
	}
}

// createAccount godoc
// @Summary Create or replace an account
// @Description Upserts an account keyed on organization and code
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   code path string true "Organization code"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 422 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /organizations/{code}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	org, ok := organizationFromPath(c, h.organizationService)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	logger = logger.With(slog.Int64("organization_id", org.ID), slog.String("account_code", req.Code))
	logger.Info("Received request to create account")

	account, err := h.accountService.CreateAccount(c.Request.Context(), org.ID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.Int64("account_id", account.ID))
	c.JSON(http.StatusCreated, dto.AccountResponse{Account: *account})
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves the chart of accounts of an organization ordered by code
// @Tags accounts
// @Produce  json
// @Param   code path string true "Organization code"
// @Success 200 {object} dto.ItemsResponse[domain.LedgerAccount]
// @Failure 404 {object} map[string]string "Organization not found"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /organizations/{code}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	org, ok := organizationFromPath(c, h.organizationService)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), org.ID)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}

	logger.Debug("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.NewItemsResponse(accounts))
}
