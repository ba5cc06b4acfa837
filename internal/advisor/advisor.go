package advisor

import (
	"context"
	"encoding/json"
	"strings"

	"kwikkash/internal/logger"
)

// Advisor runs the three advisory flows against a Generator.
// Each flow builds a prompt from the caller's snapshot, makes one call,
// and decodes the model's JSON reply. On any failure the flow returns
// the static fallback; callers never see an error.
type Advisor struct {
	gen Generator
}

// New creates an Advisor over the given generator.
func New(gen Generator) *Advisor {
	return &Advisor{gen: gen}
}

// Recommendations returns expense adjustment recommendations.
func (a *Advisor) Recommendations(ctx context.Context, in RecommendationsInput) RecommendationsOutput {
	var out RecommendationsOutput
	if !a.run(ctx, "recommendations", recommendationsPrompt(in), &out) || len(out.Recommendations) == 0 {
		return FallbackRecommendations()
	}
	return out
}

// SpendingAlert returns a single proactive spending alert.
func (a *Advisor) SpendingAlert(ctx context.Context, in AlertInput) AlertOutput {
	var out AlertOutput
	if !a.run(ctx, "alerts", alertPrompt(in), &out) || out.Alerts == "" {
		return FallbackAlert()
	}
	return out
}

// Forecast returns a predicted daily limit plus a proactive alert.
func (a *Advisor) Forecast(ctx context.Context, in ForecastInput) ForecastOutput {
	var out ForecastOutput
	if !a.run(ctx, "forecast", forecastPrompt(in), &out) || out.PredictedLimit == "" {
		return FallbackForecast()
	}
	return out
}

// run performs one generate call and decodes the JSON reply into out.
// Returns false when the call or the decode failed.
func (a *Advisor) run(ctx context.Context, flow, prompt string, out interface{}) bool {
	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		logger.Get().Warnw("advisor call failed", "flow", flow, "error", err)
		return false
	}

	if err := json.Unmarshal([]byte(extractJSON(text)), out); err != nil {
		logger.Get().Warnw("advisor output not decodable", "flow", flow, "error", err)
		return false
	}
	return true
}

// extractJSON strips markdown code fences and surrounding prose that models
// sometimes wrap around the JSON object they were asked for.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
