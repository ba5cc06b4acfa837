package models

import "time"

// ExpenseCategories is the fixed set of discretionary spending categories.
var ExpenseCategories = []string{
	"Food & Dining",
	"Groceries",
	"Transport",
	"Shopping",
	"Entertainment",
	"Utilities",
	"Rent/EMI",
	"Healthcare",
	"Education",
	"Other",
}

// ValidExpenseCategory reports whether s is one of the fixed categories.
func ValidExpenseCategory(s string) bool {
	for _, c := range ExpenseCategories {
		if c == s {
			return true
		}
	}
	return false
}

// Transaction represents a logged discretionary expense.
// The date is assigned at creation time and is immutable afterwards;
// edits may only touch amount, category, and description.
type Transaction struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    string    `gorm:"not null" json:"category"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
}
