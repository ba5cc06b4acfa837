package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kwikkash/internal/errors"
	"kwikkash/internal/models"
	"kwikkash/internal/pagination"
)

// goalService handles the savings goal ledger.
type goalService struct {
	db       *gorm.DB
	profiles ProfileServicer
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, profiles ProfileServicer) GoalServicer {
	return &goalService{db: db, profiles: profiles}
}

// CreateGoal adds a savings goal. When a timeline is given and no explicit
// monthly contribution, the contribution is derived as target over timeline.
// The combined monthly plan across unmet goals may not exceed the user's
// monthly savings budget.
func (s *goalService) CreateGoal(userID uint, name string, targetAmount, monthlyContribution float64, timelineMonths *int) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
	}

	if monthlyContribution <= 0 && timelineMonths != nil && *timelineMonths > 0 {
		monthlyContribution = targetAmount / float64(*timelineMonths)
	}
	if monthlyContribution <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly contribution or timeline is required")
	}

	if err := s.checkPlan(userID, monthlyContribution, 0); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:              userID,
		Name:                name,
		TargetAmount:        targetAmount,
		MonthlyContribution: monthlyContribution,
		TimelineMonths:      timelineMonths,
	}
	if timelineMonths != nil {
		now := time.Now().UTC()
		goal.StartDate = &now
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals lists the user's goals, newest first.
func (s *goalService) GetUserGoals(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	query := s.db.Model(&models.Goal{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := query.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(goals, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetGoalByID retrieves a goal with its contribution history.
func (s *goalService) GetGoalByID(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Preload("Contributions", func(db *gorm.DB) *gorm.DB {
		return db.Order("date DESC")
	}).Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal patches a goal. Setting a timeline on a goal that never had a
// start date stamps one now; an existing start date is kept.
func (s *goalService) UpdateGoal(userID, goalID uint, name string, targetAmount, monthlyContribution *float64, timelineMonths *int) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if targetAmount != nil {
		if *targetAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be positive")
		}
		updates["target_amount"] = *targetAmount
	}
	if monthlyContribution != nil {
		if *monthlyContribution <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly contribution must be positive")
		}
		if err := s.checkPlan(userID, *monthlyContribution, goalID); err != nil {
			return nil, err
		}
		updates["monthly_contribution"] = *monthlyContribution
	}
	if timelineMonths != nil {
		updates["timeline_months"] = *timelineMonths
		if goal.StartDate == nil {
			now := time.Now().UTC()
			updates["start_date"] = now
		}
	}
	if len(updates) == 0 {
		return goal, nil
	}

	if err := s.db.Model(goal).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetGoalByID(userID, goalID)
}

// Contribute records a contribution toward a goal. The goal's current
// amount is clamped at the target while the history entry keeps the full
// requested amount.
func (s *goalService) Contribute(userID, goalID uint, amount float64) (*models.Goal, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution must be positive")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		if err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGoalNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		newAmount := goal.CurrentAmount + amount
		if newAmount > goal.TargetAmount {
			newAmount = goal.TargetAmount
		}

		if err := tx.Model(&goal).Update("current_amount", newAmount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		contribution := &models.GoalContribution{
			GoalID: goal.ID,
			Amount: amount,
			Date:   time.Now().UTC(),
		}
		if err := tx.Create(contribution).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetGoalByID(userID, goalID)
}

// TotalPlannedContributions sums the monthly contributions of goals that
// have not yet reached their target.
func (s *goalService) TotalPlannedContributions(userID uint) (float64, error) {
	var total float64
	err := s.db.Model(&models.Goal{}).
		Where("user_id = ? AND current_amount < target_amount", userID).
		Select("COALESCE(SUM(monthly_contribution), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// checkPlan verifies that the plan including a new or changed contribution
// stays within the monthly savings budget. excludeGoalID removes the goal
// being updated from the existing total; zero excludes nothing.
func (s *goalService) checkPlan(userID uint, newContribution float64, excludeGoalID uint) error {
	profile, err := s.profiles.GetProfile(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return apperrors.ErrProfileIncomplete
		}
		return err
	}

	query := s.db.Model(&models.Goal{}).
		Where("user_id = ? AND current_amount < target_amount", userID)
	if excludeGoalID != 0 {
		query = query.Where("id <> ?", excludeGoalID)
	}

	var planned float64
	if err := query.Select("COALESCE(SUM(monthly_contribution), 0)").Scan(&planned).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if planned+newContribution > profile.MonthlySavings {
		return apperrors.ErrPlanExceedsSavings
	}
	return nil
}
