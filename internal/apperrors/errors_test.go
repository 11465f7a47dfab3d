package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_UnwrapKeepsSentinel(t *testing.T) {
	wrapped := fmt.Errorf("%w: account 123", apperrors.ErrNotFound)
	appErr := apperrors.NewAppError(500, "failed to lock accounts", wrapped)

	assert.True(t, errors.Is(appErr, apperrors.ErrNotFound))
	assert.Equal(t, "failed to lock accounts: resource not found: account 123", appErr.Error())
}

func TestAppError_NilCause(t *testing.T) {
	appErr := apperrors.NewAppError(500, "locked account missing", nil)

	assert.Equal(t, "locked account missing", appErr.Error())
	assert.Nil(t, errors.Unwrap(appErr))
}
