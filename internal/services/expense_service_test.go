package services

import (
	"testing"

	"kwikkash/internal/models"
	"kwikkash/internal/testutil"
)

func TestCreateExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	profiles := NewProfileService(db)
	svc := NewExpenseService(db, profiles)

	t.Run("creates_and_recomputes_budget", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, err := profiles.UpdateProfile(user.ID, models.UserRoleProfessional, 50000)
		testutil.AssertNoError(t, err)

		expense, err := svc.CreateExpense(user.ID, "Rent", 12000, "Housing", nil)
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Fatal("expected a persisted expense")
		}
		if expense.StartDate != nil {
			t.Error("expected no start date without a timeline")
		}

		profile, err := profiles.GetProfile(user.ID)
		testutil.AssertNoError(t, err)
		if profile.MonthlyNeeds != 12000 {
			t.Errorf("expected needs 12000 after create, got %f", profile.MonthlyNeeds)
		}
		if profile.MonthlyWants != 22800 {
			t.Errorf("expected wants 22800 after create, got %f", profile.MonthlyWants)
		}
	})

	t.Run("timeline_stamps_start_date", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		months := 6

		expense, err := svc.CreateExpense(user.ID, "Course EMI", 2000, "Education", &months)
		testutil.AssertNoError(t, err)

		if expense.StartDate == nil {
			t.Error("expected start date to be stamped with a timeline")
		}
	})

	t.Run("works_before_onboarding", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateExpense(user.ID, "Rent", 8000, "Housing", nil)
		testutil.AssertNoError(t, err)
	})

	t.Run("accepts_zero_amount", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, err := profiles.UpdateProfile(user.ID, models.UserRoleProfessional, 50000)
		testutil.AssertNoError(t, err)

		expense, err := svc.CreateExpense(user.ID, "Waived rent", 0, "Housing", nil)
		testutil.AssertNoError(t, err)
		if expense.ID == 0 {
			t.Fatal("expected a persisted expense")
		}

		profile, err := profiles.GetProfile(user.ID)
		testutil.AssertNoError(t, err)
		if profile.MonthlyNeeds != 0 {
			t.Errorf("expected zero-amount line item to add nothing to needs, got %f", profile.MonthlyNeeds)
		}
	})

	t.Run("rejects_invalid_input", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateExpense(user.ID, "", 100, "Housing", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateExpense(user.ID, "Rent", -100, "Housing", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	profiles := NewProfileService(db)
	svc := NewExpenseService(db, profiles)

	t.Run("updates_amount_and_recomputes", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, err := profiles.UpdateProfile(user.ID, models.UserRoleProfessional, 50000)
		testutil.AssertNoError(t, err)
		expense, err := svc.CreateExpense(user.ID, "Rent", 12000, "Housing", nil)
		testutil.AssertNoError(t, err)

		amount := 15000.0
		updated, err := svc.UpdateExpense(user.ID, expense.ID, "", &amount, "", nil)
		testutil.AssertNoError(t, err)

		if updated.Amount != 15000 {
			t.Errorf("expected amount 15000, got %f", updated.Amount)
		}

		profile, err := profiles.GetProfile(user.ID)
		testutil.AssertNoError(t, err)
		if profile.MonthlyNeeds != 15000 {
			t.Errorf("expected needs 15000 after update, got %f", profile.MonthlyNeeds)
		}
	})

	t.Run("not_owner", func(t *testing.T) {
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestFixedExpense(t, db, owner.ID, 1000)

		_, err := svc.UpdateExpense(other.ID, expense.ID, "Hijack", nil, "", nil)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
	})
}

func TestDeleteExpense(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	profiles := NewProfileService(db)
	svc := NewExpenseService(db, profiles)

	user := testutil.CreateTestUser(t, db)
	_, err := profiles.UpdateProfile(user.ID, models.UserRoleProfessional, 50000)
	testutil.AssertNoError(t, err)
	expense, err := svc.CreateExpense(user.ID, "Rent", 12000, "Housing", nil)
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteExpense(user.ID, expense.ID))

	expenses, err := svc.GetUserExpenses(user.ID)
	testutil.AssertNoError(t, err)
	if len(expenses) != 0 {
		t.Errorf("expected no expenses after delete, got %d", len(expenses))
	}

	profile, err := profiles.GetProfile(user.ID)
	testutil.AssertNoError(t, err)
	if profile.MonthlyNeeds != 0 {
		t.Errorf("expected needs 0 after delete, got %f", profile.MonthlyNeeds)
	}

	err = svc.DeleteExpense(user.ID, expense.ID)
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
}

func TestPaymentChecklist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	profiles := NewProfileService(db)
	svc := NewExpenseService(db, profiles)

	t.Run("log_is_idempotent", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestFixedExpense(t, db, user.ID, 1000)

		testutil.AssertNoError(t, svc.LogPayment(user.ID, expense.ID, "2025-06"))
		testutil.AssertNoError(t, svc.LogPayment(user.ID, expense.ID, "2025-06"))

		ids, err := svc.GetLoggedPayments(user.ID, "2025-06")
		testutil.AssertNoError(t, err)
		if len(ids) != 1 || ids[0] != expense.ID {
			t.Errorf("expected exactly one logged payment for the expense, got %v", ids)
		}
	})

	t.Run("unlog_then_relog", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestFixedExpense(t, db, user.ID, 1000)

		testutil.AssertNoError(t, svc.LogPayment(user.ID, expense.ID, "2025-07"))
		testutil.AssertNoError(t, svc.UnlogPayment(user.ID, expense.ID, "2025-07"))

		ids, err := svc.GetLoggedPayments(user.ID, "2025-07")
		testutil.AssertNoError(t, err)
		if len(ids) != 0 {
			t.Errorf("expected no logged payments after unlog, got %v", ids)
		}

		testutil.AssertNoError(t, svc.LogPayment(user.ID, expense.ID, "2025-07"))
	})

	t.Run("unlog_never_logged_is_noop", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestFixedExpense(t, db, user.ID, 1000)

		testutil.AssertNoError(t, svc.UnlogPayment(user.ID, expense.ID, "2025-08"))
	})

	t.Run("months_are_independent", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestFixedExpense(t, db, user.ID, 1000)

		testutil.AssertNoError(t, svc.LogPayment(user.ID, expense.ID, "2025-06"))

		ids, err := svc.GetLoggedPayments(user.ID, "2025-07")
		testutil.AssertNoError(t, err)
		if len(ids) != 0 {
			t.Errorf("expected other month to be unaffected, got %v", ids)
		}
	})

	t.Run("payments_do_not_change_budget", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		_, err := profiles.UpdateProfile(user.ID, models.UserRoleProfessional, 50000)
		testutil.AssertNoError(t, err)
		expense, err := svc.CreateExpense(user.ID, "Rent", 10000, "Housing", nil)
		testutil.AssertNoError(t, err)

		before, err := profiles.GetProfile(user.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.LogPayment(user.ID, expense.ID, "2025-06"))

		after, err := profiles.GetProfile(user.ID)
		testutil.AssertNoError(t, err)
		if before.MonthlyWants != after.MonthlyWants || before.DailySpendingLimit != after.DailySpendingLimit {
			t.Error("expected payment logging to leave the budget untouched")
		}
	})
}
