package models

import (
	"regexp"
	"time"
)

// paidMonthRegex matches the "YYYY-MM" format used by the paid checklist.
var paidMonthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidPaidMonth reports whether month is a "YYYY-MM" calendar month.
func ValidPaidMonth(month string) bool {
	return paidMonthRegex.MatchString(month)
}

// FixedExpense represents a recurring monthly "Needs" line item.
type FixedExpense struct {
	Base
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	Name           string     `gorm:"not null" json:"name"`
	Amount         float64    `gorm:"not null" json:"amount"`
	Category       string     `json:"category"`
	TimelineMonths *int       `json:"timeline_months,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`

	Payments []FixedExpensePayment `gorm:"foreignKey:ExpenseID" json:"payments,omitempty"`
}

// FixedExpensePayment marks a fixed expense as manually paid for a calendar
// month. It is a pure checklist entry and never feeds the budget numbers.
type FixedExpensePayment struct {
	Base
	ExpenseID uint   `gorm:"not null;index:idx_expense_month,unique" json:"expense_id"`
	Month     string `gorm:"size:7;not null;index:idx_expense_month,unique" json:"month"` // "YYYY-MM"
}
