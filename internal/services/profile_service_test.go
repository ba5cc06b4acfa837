package services

import (
	"testing"

	"kwikkash/internal/models"
	"kwikkash/internal/testutil"
)

func TestUpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)

	t.Run("creates_profile_and_derives_budget", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFixedExpense(t, db, user.ID, 15000)

		profile, err := svc.UpdateProfile(user.ID, models.UserRoleProfessional, 50000)
		testutil.AssertNoError(t, err)

		if profile.Income != 50000 {
			t.Errorf("expected income 50000, got %f", profile.Income)
		}
		if profile.MonthlyNeeds != 15000 {
			t.Errorf("expected needs 15000, got %f", profile.MonthlyNeeds)
		}
		if profile.MonthlyWants != 21000 {
			t.Errorf("expected wants 21000, got %f", profile.MonthlyWants)
		}
		if profile.MonthlySavings != 14000 {
			t.Errorf("expected savings 14000, got %f", profile.MonthlySavings)
		}
		if profile.DailySpendingLimit != 700 {
			t.Errorf("expected daily limit 700, got %f", profile.DailySpendingLimit)
		}
	})

	t.Run("updates_existing_profile", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProfile(user.ID, models.UserRoleStudent, 20000)
		testutil.AssertNoError(t, err)

		profile, err := svc.UpdateProfile(user.ID, models.UserRoleProfessional, 60000)
		testutil.AssertNoError(t, err)

		if profile.Role != models.UserRoleProfessional {
			t.Errorf("expected role to change, got %s", profile.Role)
		}
		if profile.MonthlyWants != 36000 {
			t.Errorf("expected wants recomputed to 36000, got %f", profile.MonthlyWants)
		}

		var count int64
		db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected a single profile row, got %d", count)
		}
	})

	t.Run("rejects_negative_income", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProfile(user.ID, models.UserRoleStudent, -100)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("expenses_exceeding_income_floor_at_zero", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFixedExpense(t, db, user.ID, 30000)

		profile, err := svc.UpdateProfile(user.ID, models.UserRoleHousewife, 20000)
		testutil.AssertNoError(t, err)

		if profile.MonthlyWants != 0 || profile.MonthlySavings != 0 || profile.DailySpendingLimit != 0 {
			t.Errorf("expected zeroed budget, got wants=%f savings=%f limit=%f",
				profile.MonthlyWants, profile.MonthlySavings, profile.DailySpendingLimit)
		}
	})
}

func TestGetProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)

	t.Run("not_onboarded", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetProfile(user.ID)
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}

func TestGetBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)

	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestFixedExpense(t, db, user.ID, 10000)
	_, err := svc.UpdateProfile(user.ID, models.UserRoleProfessional, 40000)
	testutil.AssertNoError(t, err)

	breakdown, err := svc.GetBudget(user.ID)
	testutil.AssertNoError(t, err)

	if breakdown.MonthlyNeeds != 10000 {
		t.Errorf("expected needs 10000, got %f", breakdown.MonthlyNeeds)
	}
	if breakdown.MonthlyWants != 18000 {
		t.Errorf("expected wants 18000, got %f", breakdown.MonthlyWants)
	}
	if breakdown.MonthlySavings != 12000 {
		t.Errorf("expected savings 12000, got %f", breakdown.MonthlySavings)
	}
	if breakdown.DailySpendingLimit != 600 {
		t.Errorf("expected daily limit 600, got %f", breakdown.DailySpendingLimit)
	}
}

func TestSetEmergencyFundTarget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)

	t.Run("sets_target", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)

		profile, err := svc.SetEmergencyFundTarget(user.ID, 100000)
		testutil.AssertNoError(t, err)

		if profile.EmergencyFundTarget != 100000 {
			t.Errorf("expected target 100000, got %f", profile.EmergencyFundTarget)
		}
	})

	t.Run("rejects_negative_target", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)

		_, err := svc.SetEmergencyFundTarget(user.ID, -1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("requires_profile", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SetEmergencyFundTarget(user.ID, 1000)
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}
