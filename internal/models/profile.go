package models

// UserRole represents the self-declared role chosen during onboarding
type UserRole string

const (
	UserRoleStudent      UserRole = "Student"
	UserRoleProfessional UserRole = "Professional"
	UserRoleHousewife    UserRole = "Housewife"
)

// Profile holds a user's onboarding data and the derived budget figures.
//
// The Monthly* and DailySpendingLimit columns are a cache of the budget
// calculator's output. They are recomputed inside the same database
// transaction as every write to income or fixed expenses and must never
// be written directly.
type Profile struct {
	Base
	UserID uint     `gorm:"uniqueIndex;not null" json:"user_id"`
	Role   UserRole `gorm:"not null" json:"role"`
	Income float64  `gorm:"not null" json:"income"`

	// Derived budget fields (cache of budget.Calculate)
	MonthlyNeeds       float64 `json:"monthly_needs"`
	MonthlyWants       float64 `json:"monthly_wants"`
	MonthlySavings     float64 `json:"monthly_savings"`
	DailySpendingLimit float64 `json:"daily_spending_limit"`

	// Emergency fund target and cached balance (floored at zero)
	EmergencyFundTarget  float64 `json:"emergency_fund_target"`
	EmergencyFundBalance float64 `json:"emergency_fund_balance"`
}
