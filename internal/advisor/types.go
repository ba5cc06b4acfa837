package advisor

// GoalPlan is the goal summary sent to the model.
type GoalPlan struct {
	Name                string  `json:"name"`
	TargetAmount        float64 `json:"target_amount"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	TimelineMonths      int     `json:"timeline_months,omitempty"`
}

// ExpenseRecord is one historical spending record sent to the model.
type ExpenseRecord struct {
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

// FixedExpenseItem is one fixed monthly expense sent to the model.
type FixedExpenseItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// RecommendationsInput feeds the expense adjustment recommendations flow.
type RecommendationsInput struct {
	Income             float64
	FixedExpenses      []FixedExpenseItem
	Goals              []GoalPlan
	CurrentExpenses    []ExpenseRecord
	DailySpendingLimit float64
}

// RecommendationsOutput is the recommendations flow result.
type RecommendationsOutput struct {
	Recommendations []string `json:"recommendations"`
}

// AlertInput feeds the spending alerts flow.
type AlertInput struct {
	Income   float64
	Goals    []GoalPlan
	Expenses []ExpenseRecord
}

// AlertOutput is the spending alerts flow result.
type AlertOutput struct {
	Alerts string `json:"alerts"`
}

// ForecastInput feeds the spending forecast flow.
type ForecastInput struct {
	Income         float64
	Goals          []GoalPlan
	Expenses       []ExpenseRecord
	SeasonalTrends string // free-form JSON, passed through to the prompt
}

// ForecastOutput is the spending forecast flow result.
type ForecastOutput struct {
	PredictedLimit string `json:"predicted_limit"`
	Alerts         string `json:"alerts"`
}

// Static fallbacks returned whenever the remote model call fails or
// produces no usable output. The advisory flows never surface errors.
const (
	fallbackAlert          = "The AI service is temporarily unavailable. Please try again later."
	fallbackPredictedLimit = "Could not generate a forecast at this time."
	fallbackRecommendation = "Sorry, I am having trouble generating recommendations right now. Please try again in a moment."
)

// FallbackRecommendations returns the static recommendations fallback.
func FallbackRecommendations() RecommendationsOutput {
	return RecommendationsOutput{Recommendations: []string{fallbackRecommendation}}
}

// FallbackAlert returns the static alerts fallback.
func FallbackAlert() AlertOutput {
	return AlertOutput{Alerts: fallbackAlert}
}

// FallbackForecast returns the static forecast fallback.
func FallbackForecast() ForecastOutput {
	return ForecastOutput{PredictedLimit: fallbackPredictedLimit, Alerts: fallbackAlert}
}
