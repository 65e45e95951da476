package handlers

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// RegisterValidators adds the ledger specific binding rules to gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("iso_currency", validateISOCurrency); err != nil {
			validatorsErr = fmt.Errorf("register iso_currency: %w", err)
			return
		}
		if err := v.RegisterValidation("ledger_account_type", validateAccountType); err != nil {
			validatorsErr = fmt.Errorf("register ledger_account_type: %w", err)
		}
	})
	return validatorsErr
}

// validateISOCurrency accepts known ISO 4217 codes in any case.
func validateISOCurrency(fl validator.FieldLevel) bool {
	code := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return code != "" && money.GetCurrency(code) != nil
}

// validateAccountType accepts the six account types in any case.
func validateAccountType(fl validator.FieldLevel) bool {
	t := domain.AccountType(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	for _, known := range domain.AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}
