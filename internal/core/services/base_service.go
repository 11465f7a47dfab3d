package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock    func() time.Time
	location *time.Location
}

func newBaseService() BaseService {
	return BaseService{clock: time.Now, location: time.Local}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a rejected operation with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("reason", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// Now returns the current time of the service clock in UTC.
func (s *BaseService) Now() time.Time {
	return s.clock().UTC()
}

// StartOfDay returns local midnight of the day containing t, in the ledger time zone.
func (s *BaseService) StartOfDay(t time.Time) time.Time {
	local := t.In(s.location)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location)
}

// AuthorizeRole checks that the caller holds one of the roles required by an action.
func (s *BaseService) AuthorizeRole(ctx context.Context, caller domain.Caller, action string, roles ...domain.Role) error {
	for _, role := range roles {
		if caller.Role == role {
			return nil
		}
	}
	err := fmt.Errorf("%w: %s requires role %v", apperrors.ErrForbidden, action, roles)
	s.LogWarn(ctx, err, "Caller not authorized",
		slog.String("owner_id", caller.OwnerID),
		slog.String("role", string(caller.Role)),
		slog.String("action", action))
	return err
}

// AuthorizeAccountAccess allows admins and the account owner.
func (s *BaseService) AuthorizeAccountAccess(ctx context.Context, caller domain.Caller, account domain.Account, action string) error {
	if caller.IsAdmin() || caller.Owns(account) {
		return nil
	}
	err := fmt.Errorf("%w: %s on account %s", apperrors.ErrForbidden, action, account.AccountNumber)
	s.LogWarn(ctx, err, "Caller does not own the account",
		slog.String("owner_id", caller.OwnerID),
		slog.String("account_id", account.AccountID),
		slog.String("action", action))
	return err
}
