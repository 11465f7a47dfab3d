package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", adminOnly, h.openAccount)
		accounts.GET("", adminOnly, h.listAccounts)
		accounts.GET("/me", h.getMyAccount)
		accounts.GET("/me/currencies", h.getMyBalances)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PATCH("/:accountID/activate", adminOnly, h.activateAccount)
		accounts.PATCH("/:accountID/deactivate", adminOnly, h.deactivateAccount)
	}
}

// openAccount godoc
// @Summary Open a new account
// @Description Creates an account with a fresh account number and zero balance
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account holder details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Owner already has an account"
// @Failure 500 {object} map[string]string "Failed to open account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) openAccount(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "OpenAccount")
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to open account", slog.String("account_owner", req.OwnerID))

	account, err := h.accountService.OpenAccount(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to open account")
		return
	}

	logger.Info("Account opened", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves every account
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getMyAccount godoc
// @Summary Get my account
// @Description Retrieves the account owned by the caller
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Caller has no account"
// @Security BearerAuth
// @Router /accounts/me [get]
func (h *accountHandler) getMyAccount(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetMyAccount(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getMyBalances godoc
// @Summary Get my balance in other currencies
// @Description Converts the caller's balance into the supported currencies using cached rates
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.AccountBalancesResponse
// @Failure 404 {object} map[string]string "Caller has no account"
// @Failure 503 {object} map[string]string "Exchange rates unavailable"
// @Security BearerAuth
// @Router /accounts/me/currencies [get]
func (h *accountHandler) getMyBalances(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	balances, err := h.accountService.GetMyBalances(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to convert balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountBalancesResponse(balances))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves an account visible to the caller
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), caller, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// activateAccount godoc
// @Summary Activate an account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/activate [patch]
func (h *accountHandler) activateAccount(c *gin.Context) {
	h.setStatus(c, true)
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 400 {object} map[string]string "The vault can not be deactivated"
// @Security BearerAuth
// @Router /accounts/{accountID}/deactivate [patch]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	h.setStatus(c, false)
}

func (h *accountHandler) setStatus(c *gin.Context, active bool) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	account, err := h.accountService.SetAccountStatus(c.Request.Context(), caller, c.Param("accountID"), active)
	if err != nil {
		respondError(c, err, "Failed to update account status")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
