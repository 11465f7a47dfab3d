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

// reportingHandler handles HTTP requests for the read-only views over the ledger
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the report routes next to the movement routes
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	reports := rg.Group("/transactions")
	{
		reports.GET("/top-accounts", adminOnly, h.topAccounts)
		reports.GET("/history", middleware.RequireRole(domain.RoleUser), h.history)
		reports.GET("/accounts/:accountID/recent", h.recentMovements)
		reports.GET("/accounts/:accountID/daily-usage", h.dailyUsage)
	}
	rg.GET("/accounts/:accountID/reconcile", adminOnly, h.reconcile)
}

// topAccounts godoc
// @Summary Most credited accounts
// @Description Lists the accounts that received the most movements
// @Tags transactions
// @Produce  json
// @Success 200 {array} dto.TopAccountResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /transactions/top-accounts [get]
func (h *reportingHandler) topAccounts(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	rows, err := h.reportingService.TopAccounts(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to build top accounts report")
		return
	}
	c.JSON(http.StatusOK, dto.ToTopAccountsResponse(rows))
}

// recentMovements godoc
// @Summary Recent movements of an account
// @Description Lists the newest entries where the account is source or destination
// @Tags transactions
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Number of entries (default 5)"
// @Success 200 {array} dto.TransactionResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /transactions/accounts/{accountID}/recent [get]
func (h *reportingHandler) recentMovements(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var params dto.RecentMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "RecentMovements")
		return
	}

	txns, err := h.reportingService.RecentMovements(c.Request.Context(), caller, c.Param("accountID"), params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list recent movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}

// history godoc
// @Summary Movement history of the caller
// @Description Lists every entry involving the caller's account with account numbers and product names
// @Tags transactions
// @Produce  json
// @Success 200 {array} dto.HistoryEntryResponse
// @Failure 404 {object} map[string]string "Caller has no account"
// @Security BearerAuth
// @Router /transactions/history [get]
func (h *reportingHandler) history(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	entries, err := h.reportingService.History(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to load history")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("History loaded", slog.Int("entries", len(entries)))
	c.JSON(http.StatusOK, dto.ToHistoryResponse(entries))
}

// dailyUsage godoc
// @Summary Daily transfer usage
// @Description Reports how much of the daily transfer limit the account has used
// @Tags transactions
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} domain.DailyTransferUsage
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /transactions/accounts/{accountID}/daily-usage [get]
func (h *reportingHandler) dailyUsage(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	usage, err := h.reportingService.DailyTransferUsage(c.Request.Context(), caller, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to load daily transfer usage")
		return
	}
	c.JSON(http.StatusOK, usage)
}

// reconcile godoc
// @Summary Reconcile an account
// @Description Recomputes the balance of an account from the ledger and compares it with the stored balance
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} domain.AccountReconciliation
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/reconcile [get]
func (h *reportingHandler) reconcile(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	result, err := h.reportingService.ReconcileAccount(c.Request.Context(), caller, c.Param("accountID"))
	if err != nil {
		respondError(c, err, "Failed to reconcile account")
		return
	}
	if !result.IsBalanced() {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Account balance does not match the ledger",
			slog.String("account_id", result.AccountID),
			slog.String("difference", result.Difference.String()))
	}
	c.JSON(http.StatusOK, result)
}
