package handlers

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
)

var registerValidatorsOnce sync.Once

// registerValidators installs the custom binding tags on gin's validator.
// A tag that fails to register would reject every request, so startup stops instead.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("handlers: gin binding validator is not go-playground/validator")
		}
		if err := registerBankValidations(v); err != nil {
			panic(fmt.Sprintf("handlers: %v", err))
		}
	})
}

// registerBankValidations adds money (positive, at most 2 decimals),
// account_number (10 digits) and dpi (13 digits).
func registerBankValidations(v *validator.Validate) error {
	// decimal.Decimal is a struct, expose it to field validators as its string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	validations := map[string]validator.Func{
		"money":          validateMoney,
		"account_number": digitsValidator(domain.AccountNumberLength),
		"dpi":            digitsValidator(domain.DPILength),
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validation: %w", tag, err)
		}
	}
	return nil
}

func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.IsPositive() && d.Equal(d.Round(2))
}

func digitsValidator(length int) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return utils.IsDigits(fl.Field().String(), length)
	}
}
