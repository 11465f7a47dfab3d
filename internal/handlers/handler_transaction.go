package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
)

// transactionHandler handles HTTP requests that create or rewrite ledger entries.
type transactionHandler struct {
	movementService portssvc.MovementSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ms portssvc.MovementSvcFacade) *transactionHandler {
	return &transactionHandler{
		movementService: ms,
	}
}

// registerTransactionRoutes registers routes related to movements.
func registerTransactionRoutes(rg *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := newTransactionHandler(movementService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	userOnly := middleware.RequireRole(domain.RoleUser)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/transfer", userOnly, h.transfer)
		transactions.POST("/payment", userOnly, h.payment)
		transactions.POST("/deposit", adminOnly, h.deposit)
		transactions.PUT("/deposit/:transactionID", adminOnly, h.editDeposit)
		transactions.POST("/deposit/:transactionID/reverse", adminOnly, h.reverseDeposit)
	}
}

// transfer godoc
// @Summary Transfer between accounts
// @Description Moves funds from the caller's account to another customer account
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "Caller does not own the source account"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account inactive"
// @Failure 422 {object} map[string]string "Insufficient funds or daily limit exceeded"
// @Security BearerAuth
// @Router /transactions/transfer [post]
func (h *transactionHandler) transfer(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Transfer")
		return
	}

	txn, err := h.movementService.Transfer(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to transfer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// deposit godoc
// @Summary Deposit into an account
// @Description Credits a customer account from the vault
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /transactions/deposit [post]
func (h *transactionHandler) deposit(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Deposit")
		return
	}

	txn, err := h.movementService.Deposit(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to deposit")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// payment godoc
// @Summary Pay for a product
// @Description Debits the product price from the caller's account
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   payment body dto.PaymentRequest true "Payment details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account or product not found"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /transactions/payment [post]
func (h *transactionHandler) payment(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Payment")
		return
	}

	txn, err := h.movementService.Payment(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to pay")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// editDeposit godoc
// @Summary Edit a deposit
// @Description Replaces the amount of a deposit and applies the difference to the destination account
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   deposit body dto.EditDepositRequest true "New amount"
// @Success 200 {object} dto.BalanceChangeResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Not a deposit or already reversed"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Security BearerAuth
// @Router /transactions/deposit/{transactionID} [put]
func (h *transactionHandler) editDeposit(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	var req dto.EditDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "EditDeposit")
		return
	}

	change, err := h.movementService.EditDeposit(c.Request.Context(), caller, c.Param("transactionID"), req)
	if err != nil {
		respondError(c, err, "Failed to edit deposit")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceChangeResponse(change))
}

// reverseDeposit godoc
// @Summary Reverse a deposit
// @Description Undoes a deposit made within the reversal window
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.BalanceChangeResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Not a deposit or already reversed"
// @Failure 422 {object} map[string]string "Reversal window expired or insufficient funds"
// @Security BearerAuth
// @Router /transactions/deposit/{transactionID}/reverse [post]
func (h *transactionHandler) reverseDeposit(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	change, err := h.movementService.ReverseDeposit(c.Request.Context(), caller, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to reverse deposit")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceChangeResponse(change))
}
