// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"kwikkash/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("user_role", validateUserRole)
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("fund_entry_type", validateFundEntryType)
		_ = v.RegisterValidation("paid_month", validatePaidMonth)
	}
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.UserRoleStudent, models.UserRoleProfessional, models.UserRoleHousewife:
		return true
	}
	return false
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return models.ValidExpenseCategory(fl.Field().String())
}

func validateFundEntryType(fl validator.FieldLevel) bool {
	switch models.FundEntryType(fl.Field().String()) {
	case models.FundEntryDeposit, models.FundEntryWithdrawal:
		return true
	}
	return false
}

func validatePaidMonth(fl validator.FieldLevel) bool {
	return models.ValidPaidMonth(fl.Field().String())
}
