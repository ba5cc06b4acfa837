package services

import (
	"errors"

	"gorm.io/gorm"

	"kwikkash/internal/budget"
	apperrors "kwikkash/internal/errors"
	"kwikkash/internal/models"
)

// profileService handles onboarding profiles and the derived budget cache.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// GetProfile retrieves a user's profile.
func (s *profileService) GetProfile(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// UpdateProfile creates or updates the user's onboarding profile and
// recomputes the derived budget fields in the same transaction.
func (s *profileService) UpdateProfile(userID uint, role models.UserRole, income float64) (*models.Profile, error) {
	if income < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income cannot be negative")
	}

	var profile models.Profile
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.Profile{UserID: userID, Role: role, Income: income}
			if err := tx.Create(&profile).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		case err != nil:
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		default:
			profile.Role = role
			profile.Income = income
			if err := tx.Model(&profile).Updates(map[string]interface{}{
				"role":   role,
				"income": income,
			}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		return s.RecomputeBudget(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	return s.GetProfile(userID)
}

// GetBudget returns the budget breakdown derived from the user's current
// income and fixed expenses. It is computed fresh rather than read from the
// cached profile columns, so the two can be compared when debugging.
func (s *profileService) GetBudget(userID uint) (*budget.Breakdown, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	var expenses []models.FixedExpense
	if err := s.db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	breakdown := budget.Calculate(profile.Income, expenses)
	return &breakdown, nil
}

// SetEmergencyFundTarget stores the user's emergency fund target amount.
func (s *profileService) SetEmergencyFundTarget(userID uint, target float64) (*models.Profile, error) {
	if target < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target cannot be negative")
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(profile).Update("emergency_fund_target", target).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	profile.EmergencyFundTarget = target

	return profile, nil
}

// RecomputeBudget re-derives the cached budget columns from income and fixed
// expenses inside the caller's transaction.
func (s *profileService) RecomputeBudget(tx *gorm.DB, userID uint) error {
	var profile models.Profile
	if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProfileNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.FixedExpense
	if err := tx.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	breakdown := budget.Calculate(profile.Income, expenses)
	if err := tx.Model(&profile).Updates(map[string]interface{}{
		"monthly_needs":        breakdown.MonthlyNeeds,
		"monthly_wants":        breakdown.MonthlyWants,
		"monthly_savings":      breakdown.MonthlySavings,
		"daily_spending_limit": breakdown.DailySpendingLimit,
	}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return nil
}
