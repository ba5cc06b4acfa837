package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kwikkash/internal/errors"
	"kwikkash/internal/models"
)

// fundService handles the emergency fund ledger.
type fundService struct {
	db       *gorm.DB
	profiles ProfileServicer
}

// NewFundService creates a new FundServicer.
func NewFundService(db *gorm.DB, profiles ProfileServicer) FundServicer {
	return &fundService{db: db, profiles: profiles}
}

// Record appends a deposit or withdrawal to the fund history and updates the
// cached balance. Over-withdrawal floors the balance at zero while the
// history entry keeps the full requested amount.
func (s *fundService) Record(userID uint, entryType models.FundEntryType, amount float64, notes string) (*FundStatus, error) {
	if entryType != models.FundEntryDeposit && entryType != models.FundEntryWithdrawal {
		return nil, apperrors.ErrInvalidFundAction
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Read the balance inside the transaction so a concurrent entry
		// cannot be computed from a stale copy.
		var profile models.Profile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrProfileNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		entry := &models.EmergencyFundEntry{
			UserID: userID,
			Type:   entryType,
			Amount: amount,
			Date:   time.Now().UTC(),
			Notes:  notes,
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		balance := profile.EmergencyFundBalance
		if entryType == models.FundEntryDeposit {
			balance += amount
		} else {
			balance -= amount
			if balance < 0 {
				balance = 0
			}
		}

		if err := tx.Model(&models.Profile{}).Where("user_id = ?", userID).
			Update("emergency_fund_balance", balance).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetFund(userID)
}

// GetFund returns the fund balance, target, and history, newest first.
func (s *fundService) GetFund(userID uint) (*FundStatus, error) {
	profile, err := s.profiles.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	var history []models.EmergencyFundEntry
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&history).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &FundStatus{
		Balance: profile.EmergencyFundBalance,
		Target:  profile.EmergencyFundTarget,
		History: history,
	}, nil
}

// SetTarget stores the user's emergency fund target.
func (s *fundService) SetTarget(userID uint, target float64) (*models.Profile, error) {
	return s.profiles.SetEmergencyFundTarget(userID, target)
}
