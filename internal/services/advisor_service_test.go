package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"kwikkash/internal/advisor"
	"kwikkash/internal/testutil"
)

// countingGenerator returns a canned reply and counts calls.
type countingGenerator struct {
	text  string
	calls int

	lastPrompt string
}

func (g *countingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	return g.text, nil
}

func TestAdvisorRecommendations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	t.Run("builds_snapshot_from_database", func(t *testing.T) {
		gen := &countingGenerator{text: `{"recommendations": ["Pack lunch on weekdays"]}`}
		svc := NewAdvisorService(db, advisor.New(gen), time.Minute)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)
		testutil.CreateTestFixedExpense(t, db, user.ID, 12000)
		testutil.CreateTestGoal(t, db, user.ID, 80000, 5000)
		testutil.CreateTestTransaction(t, db, user.ID, 450, "Food & Dining")

		out, err := svc.Recommendations(context.Background(), user.ID)
		testutil.AssertNoError(t, err)

		if len(out.Recommendations) != 1 {
			t.Fatalf("expected 1 recommendation, got %d", len(out.Recommendations))
		}
		if !strings.Contains(gen.lastPrompt, "Food & Dining") {
			t.Error("expected spending categories in the prompt")
		}
	})

	t.Run("caches_per_user", func(t *testing.T) {
		gen := &countingGenerator{text: `{"recommendations": ["x"]}`}
		svc := NewAdvisorService(db, advisor.New(gen), time.Minute)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestProfile(t, db, user.ID, 50000)

		_, err := svc.Recommendations(context.Background(), user.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.Recommendations(context.Background(), user.ID)
		testutil.AssertNoError(t, err)

		if gen.calls != 1 {
			t.Errorf("expected 1 model call with caching, got %d", gen.calls)
		}
	})

	t.Run("requires_onboarding", func(t *testing.T) {
		svc := NewAdvisorService(db, advisor.New(&countingGenerator{}), time.Minute)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Recommendations(context.Background(), user.ID)
		testutil.AssertAppError(t, err, "PROFILE_INCOMPLETE")
	})
}

func TestAdvisorSpendingAlert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	gen := &countingGenerator{text: `{"alerts": "Food spending is up this week."}`}
	svc := NewAdvisorService(db, advisor.New(gen), time.Minute)

	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestProfile(t, db, user.ID, 50000)
	testutil.CreateTestGoal(t, db, user.ID, 80000, 5000)
	testutil.CreateTestTransaction(t, db, user.ID, 700, "Food & Dining")

	out, err := svc.SpendingAlert(context.Background(), user.ID)
	testutil.AssertNoError(t, err)

	if out.Alerts != "Food spending is up this week." {
		t.Errorf("unexpected alert: %q", out.Alerts)
	}
	if !strings.Contains(gen.lastPrompt, "700.00") {
		t.Error("expected recent spending in the prompt")
	}
}

func TestAdvisorForecast(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	gen := &countingGenerator{text: `{"predicted_limit": "₹550 per day", "alerts": "Mind the festival spending."}`}
	svc := NewAdvisorService(db, advisor.New(gen), time.Minute)

	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestProfile(t, db, user.ID, 50000)

	out, err := svc.Forecast(context.Background(), user.ID, `{"festival_season": true}`)
	testutil.AssertNoError(t, err)

	if out.PredictedLimit != "₹550 per day" {
		t.Errorf("unexpected predicted limit: %q", out.PredictedLimit)
	}
	if !strings.Contains(gen.lastPrompt, "festival_season") {
		t.Error("expected seasonal trends in the prompt")
	}
}
