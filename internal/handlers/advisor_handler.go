package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kwikkash/internal/services"
)

// AdvisorHandler handles AI advisory requests.
type AdvisorHandler struct {
	advisorService services.AdvisorServicer
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(advisorService services.AdvisorServicer) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

// ForecastRequest represents the optional forecast request payload.
type ForecastRequest struct {
	SeasonalTrends string `json:"seasonal_trends" binding:"max=2000"`
}

// GetRecommendations handles the expense recommendations flow.
// @Summary     Get recommendations
// @Description Get AI-generated expense adjustment recommendations; falls back to a static message when the model is unavailable
// @Tags        advisor
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} advisor.RecommendationsOutput "Recommendations"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Onboarding incomplete"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advisor/recommendations [get]
func (h *AdvisorHandler) GetRecommendations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out, err := h.advisorService.Recommendations(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// GetSpendingAlert handles the proactive spending alert flow.
// @Summary     Get spending alert
// @Description Get an AI-generated spending alert; falls back to a static message when the model is unavailable
// @Tags        advisor
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} advisor.AlertOutput "Alert"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Onboarding incomplete"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advisor/alerts [get]
func (h *AdvisorHandler) GetSpendingAlert(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out, err := h.advisorService.SpendingAlert(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// GetForecast handles the spending forecast flow.
// @Summary     Get spending forecast
// @Description Get an AI-generated daily limit forecast; falls back to a static message when the model is unavailable
// @Tags        advisor
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ForecastRequest false "Optional seasonal trends JSON"
// @Success     200 {object} advisor.ForecastOutput "Forecast"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Onboarding incomplete"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /advisor/forecast [post]
func (h *AdvisorHandler) GetForecast(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ForecastRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, err)
			return
		}
	}

	out, err := h.advisorService.Forecast(c.Request.Context(), userID, req.SeasonalTrends)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
