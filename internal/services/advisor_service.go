package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"kwikkash/internal/advisor"
	apperrors "kwikkash/internal/errors"
	"kwikkash/internal/models"
)

// spendingHistoryDays bounds the recent transaction window sent to the model.
const spendingHistoryDays = 30

// advisorService builds financial snapshots from the database and runs the
// advisory flows, caching each flow's result per user so repeated requests
// do not hammer the model endpoint.
type advisorService struct {
	db      *gorm.DB
	advisor *advisor.Advisor
	cache   *cache.Cache
}

// NewAdvisorService creates a new AdvisorServicer with the given result TTL.
func NewAdvisorService(db *gorm.DB, a *advisor.Advisor, ttl time.Duration) AdvisorServicer {
	return &advisorService{
		db:      db,
		advisor: a,
		cache:   cache.New(ttl, 2*ttl),
	}
}

// Recommendations returns expense adjustment recommendations for the user.
func (s *advisorService) Recommendations(ctx context.Context, userID uint) (advisor.RecommendationsOutput, error) {
	key := fmt.Sprintf("recommendations:%d", userID)
	if cached, found := s.cache.Get(key); found {
		return cached.(advisor.RecommendationsOutput), nil
	}

	profile, err := s.getProfile(userID)
	if err != nil {
		return advisor.RecommendationsOutput{}, err
	}

	fixed, err := s.fixedExpenseItems(userID)
	if err != nil {
		return advisor.RecommendationsOutput{}, err
	}
	goals, err := s.goalPlans(userID)
	if err != nil {
		return advisor.RecommendationsOutput{}, err
	}
	current, err := s.categoryTotals(userID)
	if err != nil {
		return advisor.RecommendationsOutput{}, err
	}

	out := s.advisor.Recommendations(ctx, advisor.RecommendationsInput{
		Income:             profile.Income,
		FixedExpenses:      fixed,
		Goals:              goals,
		CurrentExpenses:    current,
		DailySpendingLimit: profile.DailySpendingLimit,
	})

	s.cache.SetDefault(key, out)
	return out, nil
}

// SpendingAlert returns a proactive spending alert for the user.
func (s *advisorService) SpendingAlert(ctx context.Context, userID uint) (advisor.AlertOutput, error) {
	key := fmt.Sprintf("alerts:%d", userID)
	if cached, found := s.cache.Get(key); found {
		return cached.(advisor.AlertOutput), nil
	}

	profile, err := s.getProfile(userID)
	if err != nil {
		return advisor.AlertOutput{}, err
	}
	goals, err := s.goalPlans(userID)
	if err != nil {
		return advisor.AlertOutput{}, err
	}
	history, err := s.recentSpending(userID)
	if err != nil {
		return advisor.AlertOutput{}, err
	}

	out := s.advisor.SpendingAlert(ctx, advisor.AlertInput{
		Income:   profile.Income,
		Goals:    goals,
		Expenses: history,
	})

	s.cache.SetDefault(key, out)
	return out, nil
}

// Forecast returns a predicted daily limit and alert for the user.
func (s *advisorService) Forecast(ctx context.Context, userID uint, seasonalTrends string) (advisor.ForecastOutput, error) {
	key := fmt.Sprintf("forecast:%d:%s", userID, seasonalTrends)
	if cached, found := s.cache.Get(key); found {
		return cached.(advisor.ForecastOutput), nil
	}

	profile, err := s.getProfile(userID)
	if err != nil {
		return advisor.ForecastOutput{}, err
	}
	goals, err := s.goalPlans(userID)
	if err != nil {
		return advisor.ForecastOutput{}, err
	}
	history, err := s.recentSpending(userID)
	if err != nil {
		return advisor.ForecastOutput{}, err
	}

	out := s.advisor.Forecast(ctx, advisor.ForecastInput{
		Income:         profile.Income,
		Goals:          goals,
		Expenses:       history,
		SeasonalTrends: seasonalTrends,
	})

	s.cache.SetDefault(key, out)
	return out, nil
}

func (s *advisorService) getProfile(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileIncomplete
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

func (s *advisorService) fixedExpenseItems(userID uint) ([]advisor.FixedExpenseItem, error) {
	var expenses []models.FixedExpense
	if err := s.db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	items := make([]advisor.FixedExpenseItem, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, advisor.FixedExpenseItem{Name: e.Name, Amount: e.Amount})
	}
	return items, nil
}

func (s *advisorService) goalPlans(userID uint) ([]advisor.GoalPlan, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	plans := make([]advisor.GoalPlan, 0, len(goals))
	for _, g := range goals {
		plan := advisor.GoalPlan{
			Name:                g.Name,
			TargetAmount:        g.TargetAmount,
			MonthlyContribution: g.MonthlyContribution,
		}
		if g.TimelineMonths != nil {
			plan.TimelineMonths = *g.TimelineMonths
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// recentSpending lists the user's transactions from the last
// spendingHistoryDays, newest first.
func (s *advisorService) recentSpending(userID uint) ([]advisor.ExpenseRecord, error) {
	since := time.Now().UTC().AddDate(0, 0, -spendingHistoryDays)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ?", userID, since).
		Order("date DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	records := make([]advisor.ExpenseRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, advisor.ExpenseRecord{
			Amount:   t.Amount,
			Category: t.Category,
			Date:     t.Date.Format("2006-01-02"),
		})
	}
	return records, nil
}

// categoryTotals aggregates the recent spending window by category.
func (s *advisorService) categoryTotals(userID uint) ([]advisor.ExpenseRecord, error) {
	since := time.Now().UTC().AddDate(0, 0, -spendingHistoryDays)

	var rows []struct {
		Category string
		Total    float64
	}
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND date >= ?", userID, since).
		Select("category, SUM(amount) AS total").
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	records := make([]advisor.ExpenseRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, advisor.ExpenseRecord{
			Amount:   r.Total,
			Category: r.Category,
		})
	}
	return records, nil
}
