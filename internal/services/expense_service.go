package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kwikkash/internal/errors"
	"kwikkash/internal/models"
)

// expenseService handles fixed expenses and the monthly paid checklist.
type expenseService struct {
	db       *gorm.DB
	profiles ProfileServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, profiles ProfileServicer) ExpenseServicer {
	return &expenseService{db: db, profiles: profiles}
}

// CreateExpense adds a fixed expense and recomputes the budget.
func (s *expenseService) CreateExpense(userID uint, name string, amount float64, category string, timelineMonths *int) (*models.FixedExpense, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense name is required")
	}
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be negative")
	}

	expense := &models.FixedExpense{
		UserID:         userID,
		Name:           name,
		Amount:         amount,
		Category:       category,
		TimelineMonths: timelineMonths,
	}
	if timelineMonths != nil {
		now := time.Now().UTC()
		expense.StartDate = &now
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.recompute(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

// GetUserExpenses lists the user's fixed expenses, newest first.
func (s *expenseService) GetUserExpenses(userID uint) ([]models.FixedExpense, error) {
	var expenses []models.FixedExpense
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// UpdateExpense patches a fixed expense and recomputes the budget.
// Fields left empty or nil are not touched.
func (s *expenseService) UpdateExpense(userID, expenseID uint, name string, amount *float64, category string, timelineMonths *int) (*models.FixedExpense, error) {
	expense, err := s.getOwnedExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if amount != nil {
		if *amount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be negative")
		}
		updates["amount"] = *amount
	}
	if category != "" {
		updates["category"] = category
	}
	if timelineMonths != nil {
		updates["timeline_months"] = *timelineMonths
		if expense.StartDate == nil {
			now := time.Now().UTC()
			updates["start_date"] = now
		}
	}
	if len(updates) == 0 {
		return expense, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(expense).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.recompute(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	return s.getOwnedExpense(userID, expenseID)
}

// DeleteExpense removes a fixed expense and recomputes the budget.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.getOwnedExpense(userID, expenseID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("expense_id = ?", expense.ID).Delete(&models.FixedExpensePayment{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.recompute(tx, userID)
	})
}

// LogPayment marks an expense as paid for the given "YYYY-MM" month.
// Logging the same month twice is a no-op.
func (s *expenseService) LogPayment(userID, expenseID uint, month string) error {
	if _, err := s.getOwnedExpense(userID, expenseID); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.FixedExpensePayment{}).
		Where("expense_id = ? AND month = ?", expenseID, month).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}

	payment := &models.FixedExpensePayment{ExpenseID: expenseID, Month: month}
	if err := s.db.Create(payment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UnlogPayment clears the paid mark for the given month. Clearing a month
// that was never logged is a no-op.
func (s *expenseService) UnlogPayment(userID, expenseID uint, month string) error {
	if _, err := s.getOwnedExpense(userID, expenseID); err != nil {
		return err
	}

	// Hard delete so the month can be re-logged without tripping the
	// unique (expense_id, month) index on a soft-deleted row.
	if err := s.db.Unscoped().Where("expense_id = ? AND month = ?", expenseID, month).
		Delete(&models.FixedExpensePayment{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetLoggedPayments returns the IDs of the user's expenses marked paid for
// the given month.
func (s *expenseService) GetLoggedPayments(userID uint, month string) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.FixedExpensePayment{}).
		Joins("JOIN fixed_expenses ON fixed_expenses.id = fixed_expense_payments.expense_id").
		Where("fixed_expenses.user_id = ? AND fixed_expense_payments.month = ?", userID, month).
		Pluck("fixed_expense_payments.expense_id", &ids).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}

// getOwnedExpense loads an expense and checks ownership.
func (s *expenseService) getOwnedExpense(userID, expenseID uint) (*models.FixedExpense, error) {
	var expense models.FixedExpense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// recompute refreshes the derived budget columns. Expenses can be added
// before onboarding completes, so a missing profile is not an error here.
func (s *expenseService) recompute(tx *gorm.DB, userID uint) error {
	if err := s.profiles.RecomputeBudget(tx, userID); err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil
		}
		return err
	}
	return nil
}
