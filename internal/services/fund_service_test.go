package services

import (
	"testing"

	"kwikkash/internal/models"
	"kwikkash/internal/testutil"
)

func TestFundRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	profiles := NewProfileService(db)
	svc := NewFundService(db, profiles)

	t.Run("deposit_raises_balance", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)

		status, err := svc.Record(user.ID, models.FundEntryDeposit, 5000, "bonus")
		testutil.AssertNoError(t, err)

		if status.Balance != 5000 {
			t.Errorf("expected balance 5000, got %f", status.Balance)
		}
		if len(status.History) != 1 || status.History[0].Notes != "bonus" {
			t.Errorf("expected one history entry with notes, got %+v", status.History)
		}
	})

	t.Run("withdrawal_lowers_balance", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)

		_, err := svc.Record(user.ID, models.FundEntryDeposit, 5000, "")
		testutil.AssertNoError(t, err)

		status, err := svc.Record(user.ID, models.FundEntryWithdrawal, 2000, "car repair")
		testutil.AssertNoError(t, err)

		if status.Balance != 3000 {
			t.Errorf("expected balance 3000, got %f", status.Balance)
		}
	})

	t.Run("over_withdrawal_floors_balance_keeps_history_amount", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)

		_, err := svc.Record(user.ID, models.FundEntryDeposit, 1000, "")
		testutil.AssertNoError(t, err)

		status, err := svc.Record(user.ID, models.FundEntryWithdrawal, 4000, "")
		testutil.AssertNoError(t, err)

		if status.Balance != 0 {
			t.Errorf("expected floored balance 0, got %f", status.Balance)
		}
		if status.History[0].Amount != 4000 {
			t.Errorf("expected history to keep requested 4000, got %f", status.History[0].Amount)
		}
	})

	t.Run("builds_on_the_stored_balance", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)

		_, err := svc.Record(user.ID, models.FundEntryDeposit, 1000, "")
		testutil.AssertNoError(t, err)

		// Another writer moves the balance between calls.
		err = db.Model(&models.Profile{}).Where("user_id = ?", user.ID).
			Update("emergency_fund_balance", 5000).Error
		testutil.AssertNoError(t, err)

		status, err := svc.Record(user.ID, models.FundEntryDeposit, 500, "")
		testutil.AssertNoError(t, err)
		if status.Balance != 5500 {
			t.Errorf("expected balance 5500 from the stored value, got %f", status.Balance)
		}
	})

	t.Run("rejects_unknown_entry_type", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)

		_, err := svc.Record(user.ID, models.FundEntryType("transfer"), 100, "")
		testutil.AssertAppError(t, err, "INVALID_FUND_ACTION")
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)

		_, err := svc.Record(user.ID, models.FundEntryDeposit, 0, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("requires_onboarding", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Record(user.ID, models.FundEntryDeposit, 100, "")
		testutil.AssertAppError(t, err, "PROFILE_NOT_FOUND")
	})
}

func TestGetFund(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	profiles := NewProfileService(db)
	svc := NewFundService(db, profiles)

	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestProfile(t, db, user.ID, 50000)

	_, err := svc.SetTarget(user.ID, 100000)
	testutil.AssertNoError(t, err)
	_, err = svc.Record(user.ID, models.FundEntryDeposit, 2000, "")
	testutil.AssertNoError(t, err)
	status, err := svc.Record(user.ID, models.FundEntryDeposit, 3000, "")
	testutil.AssertNoError(t, err)

	if status.Target != 100000 {
		t.Errorf("expected target 100000, got %f", status.Target)
	}
	if status.Balance != 5000 {
		t.Errorf("expected balance 5000, got %f", status.Balance)
	}
	if len(status.History) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(status.History))
	}
}
