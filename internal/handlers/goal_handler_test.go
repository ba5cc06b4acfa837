package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "kwikkash/internal/errors"
	"kwikkash/internal/models"
	"kwikkash/internal/pagination"
	"kwikkash/internal/services"
)

// --- mock goal service ---

type mockGoalService struct {
	createFn     func(userID uint, name string, targetAmount, monthlyContribution float64, timelineMonths *int) (*models.Goal, error)
	listFn       func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	getByIDFn    func(userID, goalID uint) (*models.Goal, error)
	updateFn     func(userID, goalID uint, name string, targetAmount, monthlyContribution *float64, timelineMonths *int) (*models.Goal, error)
	contributeFn func(userID, goalID uint, amount float64) (*models.Goal, error)
	plannedFn    func(userID uint) (float64, error)
}

func (m *mockGoalService) CreateGoal(userID uint, name string, targetAmount, monthlyContribution float64, timelineMonths *int) (*models.Goal, error) {
	if m.createFn != nil {
		return m.createFn(userID, name, targetAmount, monthlyContribution, timelineMonths)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) GetUserGoals(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	if m.listFn != nil {
		return m.listFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Goal{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockGoalService) GetGoalByID(userID, goalID uint) (*models.Goal, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(userID, goalID)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) UpdateGoal(userID, goalID uint, name string, targetAmount, monthlyContribution *float64, timelineMonths *int) (*models.Goal, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, goalID, name, targetAmount, monthlyContribution, timelineMonths)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) Contribute(userID, goalID uint, amount float64) (*models.Goal, error) {
	if m.contributeFn != nil {
		return m.contributeFn(userID, goalID, amount)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) TotalPlannedContributions(userID uint) (float64, error) {
	if m.plannedFn != nil {
		return m.plannedFn(userID)
	}
	return 0, nil
}

var _ services.GoalServicer = (*mockGoalService)(nil)

func setupGoalRouter(handler *GoalHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/goals", handler.CreateGoal)
	auth.GET("/goals", handler.GetGoals)
	auth.GET("/goals/plan", handler.GetPlan)
	auth.GET("/goals/:id", handler.GetGoal)
	auth.PUT("/goals/:id", handler.UpdateGoal)
	auth.POST("/goals/:id/contributions", handler.Contribute)
	return r
}

func TestGoalHandler_CreateGoal(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockGoalService{
			createFn: func(userID uint, name string, targetAmount, monthlyContribution float64, _ *int) (*models.Goal, error) {
				return &models.Goal{
					Base:                models.Base{ID: 1},
					UserID:              userID,
					Name:                name,
					TargetAmount:        targetAmount,
					MonthlyContribution: monthlyContribution,
				}, nil
			},
		}
		handler := NewGoalHandler(svc, &mockAuditService{})
		r := setupGoalRouter(handler)

		rec := doRequest(r, "POST", "/goals",
			`{"name":"New Laptop","target_amount":80000,"monthly_contribution":5000}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		goal := result["goal"].(map[string]interface{})
		if goal["name"] != "New Laptop" {
			t.Errorf("expected New Laptop, got %v", goal["name"])
		}
	})

	t.Run("returns 409 when plan exceeds savings", func(t *testing.T) {
		svc := &mockGoalService{
			createFn: func(uint, string, float64, float64, *int) (*models.Goal, error) {
				return nil, apperrors.ErrPlanExceedsSavings
			},
		}
		handler := NewGoalHandler(svc, &mockAuditService{})
		r := setupGoalRouter(handler)

		rec := doRequest(r, "POST", "/goals",
			`{"name":"Too Big","target_amount":100000,"monthly_contribution":50000}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "PLAN_EXCEEDS_SAVINGS")
	})

	t.Run("returns 400 on missing target", func(t *testing.T) {
		handler := NewGoalHandler(&mockGoalService{}, &mockAuditService{})
		r := setupGoalRouter(handler)

		rec := doRequest(r, "POST", "/goals", `{"name":"No Target"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestGoalHandler_Contribute(t *testing.T) {
	t.Run("returns 200 with updated goal", func(t *testing.T) {
		svc := &mockGoalService{
			contributeFn: func(_ uint, goalID uint, amount float64) (*models.Goal, error) {
				return &models.Goal{
					Base:          models.Base{ID: goalID},
					CurrentAmount: amount,
					TargetAmount:  10000,
				}, nil
			},
		}
		handler := NewGoalHandler(svc, &mockAuditService{})
		r := setupGoalRouter(handler)

		rec := doRequest(r, "POST", "/goals/1/contributions", `{"amount":3000}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		goal := result["goal"].(map[string]interface{})
		if goal["current_amount"].(float64) != 3000 {
			t.Errorf("expected current_amount 3000, got %v", goal["current_amount"])
		}
	})

	t.Run("returns 404 on unknown goal", func(t *testing.T) {
		svc := &mockGoalService{
			contributeFn: func(uint, uint, float64) (*models.Goal, error) {
				return nil, apperrors.ErrGoalNotFound
			},
		}
		handler := NewGoalHandler(svc, &mockAuditService{})
		r := setupGoalRouter(handler)

		rec := doRequest(r, "POST", "/goals/99/contributions", `{"amount":100}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on non-positive amount", func(t *testing.T) {
		handler := NewGoalHandler(&mockGoalService{}, &mockAuditService{})
		r := setupGoalRouter(handler)

		rec := doRequest(r, "POST", "/goals/1/contributions", `{"amount":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestGoalHandler_GetPlan(t *testing.T) {
	svc := &mockGoalService{
		plannedFn: func(uint) (float64, error) { return 7500, nil },
	}
	handler := NewGoalHandler(svc, &mockAuditService{})
	r := setupGoalRouter(handler)

	rec := doRequest(r, "GET", "/goals/plan", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_planned_contributions"].(float64) != 7500 {
		t.Errorf("expected 7500, got %v", result["total_planned_contributions"])
	}
}
