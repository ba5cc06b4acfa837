package services

import (
	"testing"

	"kwikkash/internal/pagination"
	"kwikkash/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	profiles := NewProfileService(db)
	svc := NewGoalService(db, profiles)

	t.Run("creates_with_explicit_contribution", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000) // savings 20000

		goal, err := svc.CreateGoal(user.ID, "New Laptop", 80000, 5000, nil)
		testutil.AssertNoError(t, err)

		if goal.MonthlyContribution != 5000 {
			t.Errorf("expected contribution 5000, got %f", goal.MonthlyContribution)
		}
		if goal.CurrentAmount != 0 {
			t.Errorf("expected zero current amount, got %f", goal.CurrentAmount)
		}
		if goal.StartDate != nil {
			t.Error("expected no start date without a timeline")
		}
	})

	t.Run("derives_contribution_from_timeline", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)
		months := 10

		goal, err := svc.CreateGoal(user.ID, "Bike", 60000, 0, &months)
		testutil.AssertNoError(t, err)

		if goal.MonthlyContribution != 6000 {
			t.Errorf("expected derived contribution 6000, got %f", goal.MonthlyContribution)
		}
		if goal.StartDate == nil {
			t.Error("expected start date with a timeline")
		}
	})

	t.Run("plan_exceeding_savings_is_rejected", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000) // savings 20000

		_, err := svc.CreateGoal(user.ID, "First", 100000, 15000, nil)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateGoal(user.ID, "Second", 100000, 6000, nil)
		testutil.AssertAppError(t, err, "PLAN_EXCEEDS_SAVINGS")
	})

	t.Run("requires_onboarding", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Laptop", 80000, 5000, nil)
		testutil.AssertAppError(t, err, "PROFILE_INCOMPLETE")
	})

	t.Run("rejects_invalid_input", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)

		_, err := svc.CreateGoal(user.ID, "", 1000, 100, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateGoal(user.ID, "NoPlan", 1000, 0, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateGoal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	profiles := NewProfileService(db)
	svc := NewGoalService(db, profiles)

	t.Run("adding_timeline_stamps_start_date_once", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)
		goal, err := svc.CreateGoal(user.ID, "Laptop", 80000, 5000, nil)
		testutil.AssertNoError(t, err)

		months := 12
		updated, err := svc.UpdateGoal(user.ID, goal.ID, "", nil, nil, &months)
		testutil.AssertNoError(t, err)
		if updated.StartDate == nil {
			t.Fatal("expected start date after adding a timeline")
		}
		first := *updated.StartDate

		months = 6
		updated, err = svc.UpdateGoal(user.ID, goal.ID, "", nil, nil, &months)
		testutil.AssertNoError(t, err)
		if !updated.StartDate.Equal(first) {
			t.Error("expected the original start date to be kept")
		}
	})

	t.Run("contribution_change_revalidates_plan", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000) // savings 20000
		goal, err := svc.CreateGoal(user.ID, "Laptop", 80000, 15000, nil)
		testutil.AssertNoError(t, err)

		too := 25000.0
		_, err = svc.UpdateGoal(user.ID, goal.ID, "", nil, &too, nil)
		testutil.AssertAppError(t, err, "PLAN_EXCEEDS_SAVINGS")

		// Raising within budget excludes the goal's own old contribution.
		ok := 20000.0
		updated, err := svc.UpdateGoal(user.ID, goal.ID, "", nil, &ok, nil)
		testutil.AssertNoError(t, err)
		if updated.MonthlyContribution != 20000 {
			t.Errorf("expected contribution 20000, got %f", updated.MonthlyContribution)
		}
	})

	t.Run("not_owner", func(t *testing.T) {
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, owner.ID, 1000, 100)

		_, err := svc.UpdateGoal(other.ID, goal.ID, "Hijack", nil, nil, nil)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestContribute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	profiles := NewProfileService(db)
	svc := NewGoalService(db, profiles)

	t.Run("accumulates_and_records_history", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 10000, 1000)

		updated, err := svc.Contribute(user.ID, goal.ID, 3000)
		testutil.AssertNoError(t, err)
		if updated.CurrentAmount != 3000 {
			t.Errorf("expected current 3000, got %f", updated.CurrentAmount)
		}

		updated, err = svc.Contribute(user.ID, goal.ID, 2000)
		testutil.AssertNoError(t, err)
		if updated.CurrentAmount != 5000 {
			t.Errorf("expected current 5000, got %f", updated.CurrentAmount)
		}
		if len(updated.Contributions) != 2 {
			t.Errorf("expected 2 history entries, got %d", len(updated.Contributions))
		}
	})

	t.Run("clamps_at_target_keeps_full_history_amount", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 10000, 1000)

		_, err := svc.Contribute(user.ID, goal.ID, 9000)
		testutil.AssertNoError(t, err)

		updated, err := svc.Contribute(user.ID, goal.ID, 5000)
		testutil.AssertNoError(t, err)

		if updated.CurrentAmount != 10000 {
			t.Errorf("expected clamp at target 10000, got %f", updated.CurrentAmount)
		}
		// History keeps the requested amount, not the clamped delta.
		if updated.Contributions[0].Amount != 5000 {
			t.Errorf("expected newest history entry 5000, got %f", updated.Contributions[0].Amount)
		}
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 10000, 1000)

		_, err := svc.Contribute(user.ID, goal.ID, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.Contribute(user.ID, goal.ID, -50)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_owner", func(t *testing.T) {
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, owner.ID, 1000, 100)

		_, err := svc.Contribute(other.ID, goal.ID, 100)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestTotalPlannedContributions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	profiles := NewProfileService(db)
	svc := NewGoalService(db, profiles)

	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestGoal(t, db, user.ID, 10000, 1000)
	testutil.CreateTestGoal(t, db, user.ID, 20000, 2500)

	// A completed goal drops out of the plan.
	done := testutil.CreateTestGoal(t, db, user.ID, 5000, 500)
	_, err := svc.Contribute(user.ID, done.ID, 5000)
	testutil.AssertNoError(t, err)

	total, err := svc.TotalPlannedContributions(user.ID)
	testutil.AssertNoError(t, err)

	if total != 3500 {
		t.Errorf("expected planned total 3500, got %f", total)
	}
}

func TestGetUserGoals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	profiles := NewProfileService(db)
	svc := NewGoalService(db, profiles)

	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestGoal(t, db, user.ID, 10000, 1000)
	testutil.CreateTestGoal(t, db, user.ID, 20000, 2000)

	page, err := svc.GetUserGoals(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if page.TotalItems != 2 {
		t.Errorf("expected 2 goals, got %d", page.TotalItems)
	}
}
