package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kwikkash/internal/errors"
	"kwikkash/internal/models"
	"kwikkash/internal/services"
)

// FundHandler handles emergency fund requests.
type FundHandler struct {
	fundService  services.FundServicer
	auditService services.AuditServicer
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fundService services.FundServicer, auditService services.AuditServicer) *FundHandler {
	return &FundHandler{fundService: fundService, auditService: auditService}
}

// FundEntryRequest represents the request payload for a fund movement.
type FundEntryRequest struct {
	Type   models.FundEntryType `json:"type" binding:"required,fund_entry_type"`
	Amount float64              `json:"amount" binding:"required,gt=0"`
	Notes  string               `json:"notes" binding:"max=255"`
}

// FundTargetRequest represents the request payload for setting the fund target.
type FundTargetRequest struct {
	Target float64 `json:"target" binding:"required,gte=0"`
}

// GetFund handles retrieving the fund status and history.
// @Summary     Get emergency fund
// @Description Get the fund balance, target, and newest-first history
// @Tags        fund
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.FundStatus "Fund status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not set up"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fund [get]
func (h *FundHandler) GetFund(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status, err := h.fundService.GetFund(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"fund": status})
}

// RecordEntry handles recording a deposit or withdrawal.
// @Summary     Record fund entry
// @Description Record a deposit or withdrawal; the balance floors at zero
// @Tags        fund
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FundEntryRequest true "Entry details"
// @Success     201 {object} services.FundStatus "Updated fund status"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not set up"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fund/entries [post]
func (h *FundHandler) RecordEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FundEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	status, err := h.fundService.Record(userID, req.Type, req.Amount, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "FUND_ENTRY", "emergency_fund", userID, c.ClientIP(),
		map[string]interface{}{"type": req.Type, "amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"fund": status})
}

// SetTarget handles setting the fund target.
// @Summary     Set fund target
// @Description Set the emergency fund target amount
// @Tags        fund
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body FundTargetRequest true "Target amount"
// @Success     200 {object} models.Profile "Profile with updated target"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Profile not set up"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /fund/target [put]
func (h *FundHandler) SetTarget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FundTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	profile, err := h.fundService.SetTarget(userID, req.Target)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SET_FUND_TARGET", "emergency_fund", userID, c.ClientIP(),
		map[string]interface{}{"target": req.Target})

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
