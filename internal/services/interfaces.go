package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"kwikkash/internal/advisor"
	"kwikkash/internal/budget"
	"kwikkash/internal/models"
	"kwikkash/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// ProfileServicer defines the contract for profile and derived budget logic.
type ProfileServicer interface {
	GetProfile(userID uint) (*models.Profile, error)
	UpdateProfile(userID uint, role models.UserRole, income float64) (*models.Profile, error)
	GetBudget(userID uint) (*budget.Breakdown, error)
	SetEmergencyFundTarget(userID uint, target float64) (*models.Profile, error)

	// RecomputeBudget re-derives the cached budget fields from income and
	// fixed expenses inside the caller's transaction. It is the only code
	// path allowed to write the derived profile columns.
	RecomputeBudget(tx *gorm.DB, userID uint) error
}

// ExpenseServicer defines the contract for fixed expenses and the monthly
// paid checklist.
type ExpenseServicer interface {
	CreateExpense(userID uint, name string, amount float64, category string, timelineMonths *int) (*models.FixedExpense, error)
	GetUserExpenses(userID uint) ([]models.FixedExpense, error)
	UpdateExpense(userID, expenseID uint, name string, amount *float64, category string, timelineMonths *int) (*models.FixedExpense, error)
	DeleteExpense(userID, expenseID uint) error
	LogPayment(userID, expenseID uint, month string) error
	UnlogPayment(userID, expenseID uint, month string) error
	GetLoggedPayments(userID uint, month string) ([]uint, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Category *string
	FromDate *time.Time
	ToDate   *time.Time
}

// CheckinResult is the outcome of logging a transaction, including the
// one-shot daily limit notification data.
type CheckinResult struct {
	Transaction    *models.Transaction `json:"transaction"`
	TodaysSpending float64             `json:"todays_spending"`
	DailyLimit     float64             `json:"daily_limit"`
	LimitExceeded  bool                `json:"limit_exceeded"`
}

// TransactionServicer defines the contract for the transaction ledger.
type TransactionServicer interface {
	CreateTransaction(userID uint, amount float64, category, description string) (*CheckinResult, error)
	GetUserTransactions(userID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, amount *float64, category, description *string) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
	GetTodaysSpending(userID uint) (float64, error)
}

// GoalServicer defines the contract for the savings goal ledger.
type GoalServicer interface {
	CreateGoal(userID uint, name string, targetAmount, monthlyContribution float64, timelineMonths *int) (*models.Goal, error)
	GetUserGoals(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID uint) (*models.Goal, error)
	UpdateGoal(userID, goalID uint, name string, targetAmount, monthlyContribution *float64, timelineMonths *int) (*models.Goal, error)
	Contribute(userID, goalID uint, amount float64) (*models.Goal, error)
	TotalPlannedContributions(userID uint) (float64, error)
}

// FundStatus is the emergency fund balance, target, and history.
type FundStatus struct {
	Balance float64                     `json:"balance"`
	Target  float64                     `json:"target"`
	History []models.EmergencyFundEntry `json:"history"`
}

// FundServicer defines the contract for the emergency fund ledger.
type FundServicer interface {
	Record(userID uint, entryType models.FundEntryType, amount float64, notes string) (*FundStatus, error)
	GetFund(userID uint) (*FundStatus, error)
	SetTarget(userID uint, target float64) (*models.Profile, error)
}

// AdvisorServicer defines the contract for the AI advisory flows.
type AdvisorServicer interface {
	Recommendations(ctx context.Context, userID uint) (advisor.RecommendationsOutput, error)
	SpendingAlert(ctx context.Context, userID uint) (advisor.AlertOutput, error)
	Forecast(ctx context.Context, userID uint, seasonalTrends string) (advisor.ForecastOutput, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
