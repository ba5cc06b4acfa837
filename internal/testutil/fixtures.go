package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kwikkash/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProfile creates an onboarded profile with derived budget fields
// already filled in for the given income and zero fixed expenses.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID uint, income float64) *models.Profile {
	t.Helper()

	disposable := income
	profile := &models.Profile{
		UserID:             userID,
		Role:               models.UserRoleProfessional,
		Income:             income,
		MonthlyWants:       disposable * 0.6,
		MonthlySavings:     disposable * 0.4,
		DailySpendingLimit: disposable * 0.6 / 30,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestFixedExpense creates a fixed expense with the given amount.
func CreateTestFixedExpense(t *testing.T, db *gorm.DB, userID uint, amount float64) *models.FixedExpense {
	t.Helper()

	expense := &models.FixedExpense{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Expense %d", nextID()),
		Amount:   amount,
		Category: "Housing",
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test fixed expense: %v", err)
	}
	return expense
}

// CreateTestTransaction creates a transaction dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, amount float64, category string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, userID, amount, category, time.Now().UTC())
}

// CreateTestTransactionAt creates a transaction with an explicit date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, userID uint, amount float64, category string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:   userID,
		Amount:   amount,
		Category: category,
		Date:     date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestGoal creates a goal with the given target and monthly contribution.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, target, monthly float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:              userID,
		Name:                fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:        target,
		MonthlyContribution: monthly,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestFundEntry creates an emergency fund history entry.
func CreateTestFundEntry(t *testing.T, db *gorm.DB, userID uint, entryType models.FundEntryType, amount float64) *models.EmergencyFundEntry {
	t.Helper()

	entry := &models.EmergencyFundEntry{
		UserID: userID,
		Type:   entryType,
		Amount: amount,
		Date:   time.Now().UTC(),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test fund entry: %v", err)
	}
	return entry
}
