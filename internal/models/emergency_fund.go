package models

import "time"

// FundEntryType represents the direction of an emergency fund entry
type FundEntryType string

const (
	FundEntryDeposit    FundEntryType = "deposit"
	FundEntryWithdrawal FundEntryType = "withdrawal"
)

// EmergencyFundEntry is one signed entry in the emergency fund history.
// Withdrawals record the full requested amount even when the cached
// balance floors at zero, so history and balance can legitimately
// disagree after an over-withdrawal.
type EmergencyFundEntry struct {
	Base
	UserID uint          `gorm:"not null;index" json:"user_id"`
	Type   FundEntryType `gorm:"not null" json:"type"`
	Amount float64       `gorm:"not null" json:"amount"`
	Date   time.Time     `gorm:"not null" json:"date"`
	Notes  string        `json:"notes,omitempty"`
}
