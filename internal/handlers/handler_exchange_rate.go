package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade // nil when no rate source is configured
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("", h.getRates)
		exchangeRates.GET("/convert", h.convert)
	}
}

type convertParams struct {
	Amount   string `form:"amount" binding:"required"`
	Currency string `form:"currency" binding:"required,len=3"`
}

// getRates godoc
// @Summary Current exchange rates
// @Description Returns the cached rates of the base currency. Stale is set when the last refresh failed.
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.ExchangeRatesResponse
// @Failure 503 {object} map[string]string "Rates unavailable"
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) getRates(c *gin.Context) {
	if h.exchangeRateService == nil {
		respondError(c, apperrors.ErrUnavailable, "Exchange rates are not configured")
		return
	}

	snapshot, err := h.exchangeRateService.GetRates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRatesResponse(snapshot))
}

// convert godoc
// @Summary Convert an amount
// @Description Expresses an amount of the base currency in another currency, rounded to 2 decimals
// @Tags exchange rates
// @Produce  json
// @Param   amount query string true "Amount in the base currency"
// @Param   currency query string true "Target currency code"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown currency"
// @Failure 503 {object} map[string]string "Rates unavailable"
// @Security BearerAuth
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	if h.exchangeRateService == nil {
		respondError(c, apperrors.ErrUnavailable, "Exchange rates are not configured")
		return
	}
	var params convertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "Convert")
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	converted, err := h.exchangeRateService.Convert(c.Request.Context(), amount, params.Currency)
	if err != nil {
		respondError(c, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, gin.H{"currency": params.Currency, "amount": converted})
}
