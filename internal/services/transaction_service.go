package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "kwikkash/internal/errors"
	"kwikkash/internal/models"
	"kwikkash/internal/pagination"
)

// transactionService handles the discretionary spending ledger.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction logs a discretionary expense stamped with the current
// time and reports today's running total against the daily limit. The
// limit check is advisory only and never blocks the write.
func (s *transactionService) CreateTransaction(userID uint, amount float64, category, description string) (*CheckinResult, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if !models.ValidExpenseCategory(category) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown expense category")
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        time.Now().UTC(),
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	todays, err := s.GetTodaysSpending(userID)
	if err != nil {
		return nil, err
	}

	// Users who have not finished onboarding have no daily limit yet;
	// they still get a zero-limit result with no exceeded flag.
	var limit float64
	var profile models.Profile
	err = s.db.Where("user_id = ?", userID).First(&profile).Error
	switch {
	case err == nil:
		limit = profile.DailySpendingLimit
	case errors.Is(err, gorm.ErrRecordNotFound):
		limit = 0
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &CheckinResult{
		Transaction:    transaction,
		TodaysSpending: todays,
		DailyLimit:     limit,
		LimitExceeded:  limit > 0 && todays > limit,
	}, nil
}

// GetUserTransactions lists the user's transactions newest first, with
// optional category and date range filters.
func (s *transactionService) GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := query.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(transactions, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetTransactionByID retrieves a single transaction owned by the user.
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction patches amount, category, or description. The original
// date is kept regardless of when the edit happens.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, amount *float64, category, description *string) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
		}
		updates["amount"] = *amount
	}
	if category != nil {
		if !models.ValidExpenseCategory(*category) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown expense category")
		}
		updates["category"] = *category
	}
	if description != nil {
		updates["description"] = *description
	}
	if len(updates) == 0 {
		return transaction, nil
	}

	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction removes a transaction permanently.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Unscoped().Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetTodaysSpending sums the user's transactions within the current UTC
// calendar day.
func (s *transactionService) GetTodaysSpending(userID uint) (float64, error) {
	start, end := todayBounds(time.Now().UTC())

	var total float64
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// todayBounds returns the half-open [start, end) UTC day window containing t.
func todayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
