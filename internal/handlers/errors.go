package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrLimitExceeded),
		errors.Is(err, apperrors.ErrWindowExpired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError writes the mapped status. Messages of server errors are not exposed.
func respondError(c *gin.Context, err error, failure string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error(failure, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failure})
		return
	}
	logger.Warn(failure, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBindError(c *gin.Context, err error, action string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request for "+action, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

// callerOrAbort returns the authenticated caller or writes 401.
func callerOrAbort(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Caller not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Caller{}, false
	}
	return caller, true
}
