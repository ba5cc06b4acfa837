package models

import "time"

// Goal represents a named savings target with a contribution plan.
// CurrentAmount is monotonically non-decreasing: contributions only ever
// add to it, clamped at TargetAmount. There is no withdraw operation.
type Goal struct {
	Base
	UserID              uint       `gorm:"not null;index" json:"user_id"`
	Name                string     `gorm:"not null" json:"name"`
	TargetAmount        float64    `gorm:"not null" json:"target_amount"`
	CurrentAmount       float64    `gorm:"not null;default:0" json:"current_amount"`
	MonthlyContribution float64    `gorm:"not null" json:"monthly_contribution"`
	TimelineMonths      *int       `json:"timeline_months,omitempty"`
	StartDate           *time.Time `json:"start_date,omitempty"`

	Contributions []GoalContribution `gorm:"foreignKey:GoalID" json:"contributions,omitempty"`
}

// GoalContribution records a single contribution event toward a goal.
// Amount is the requested amount, even when clamping discarded part of it.
type GoalContribution struct {
	Base
	GoalID uint      `gorm:"not null;index" json:"goal_id"`
	Amount float64   `gorm:"not null" json:"amount"`
	Date   time.Time `gorm:"not null" json:"date"`
}
