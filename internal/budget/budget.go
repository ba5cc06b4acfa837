// Package budget holds the budget derivation rules. Calculate is the single
// authority for the needs/wants/savings split and the daily spending limit:
// every write path that touches income or fixed expenses must go through it,
// and no other code may assign the derived profile fields.
package budget

import "kwikkash/internal/models"

// WantsShare and SavingsShare split the disposable income after fixed
// expenses. DaysPerMonth converts the monthly wants budget to a daily limit.
const (
	WantsShare   = 0.6
	SavingsShare = 0.4
	DaysPerMonth = 30
)

// Breakdown is the derived monthly budget for a profile.
type Breakdown struct {
	MonthlyNeeds       float64 `json:"monthly_needs"`
	MonthlyWants       float64 `json:"monthly_wants"`
	MonthlySavings     float64 `json:"monthly_savings"`
	DailySpendingLimit float64 `json:"daily_spending_limit"`
}

// Calculate derives the monthly budget from income and fixed expenses.
//
// Disposable income is floored at zero before the split, so wants and
// savings are never negative even when fixed expenses exceed income.
func Calculate(income float64, fixedExpenses []models.FixedExpense) Breakdown {
	var needs float64
	for _, e := range fixedExpenses {
		needs += e.Amount
	}

	disposable := income - needs
	if disposable < 0 {
		disposable = 0
	}

	wants := disposable * WantsShare
	savings := disposable * SavingsShare

	var dailyLimit float64
	if wants > 0 {
		dailyLimit = wants / DaysPerMonth
	}

	return Breakdown{
		MonthlyNeeds:       needs,
		MonthlyWants:       wants,
		MonthlySavings:     savings,
		DailySpendingLimit: dailyLimit,
	}
}

// Apply writes the breakdown onto a profile's derived fields.
func (b Breakdown) Apply(p *models.Profile) {
	p.MonthlyNeeds = b.MonthlyNeeds
	p.MonthlyWants = b.MonthlyWants
	p.MonthlySavings = b.MonthlySavings
	p.DailySpendingLimit = b.DailySpendingLimit
}
