package middleware

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type of keys stored in request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	callerCtxKey = contextKey("caller")
)

// WithCaller returns a copy of ctx carrying the authenticated caller.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerCtxKey, caller)
}

// GetCallerFromCtx retrieves the authenticated caller from a standard context.
func GetCallerFromCtx(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerCtxKey).(domain.Caller)
	return caller, ok
}

// GetCallerFromContext retrieves the authenticated caller from the Gin request context.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	return GetCallerFromCtx(c.Request.Context())
}

// GetUserIDFromContext retrieves the authenticated owner reference from the Gin context.
// It returns the owner id and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	caller, ok := GetCallerFromContext(c)
	if !ok || caller.OwnerID == "" {
		return "", false
	}
	return caller.OwnerID, true
}
