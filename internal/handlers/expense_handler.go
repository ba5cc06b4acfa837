package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kwikkash/internal/errors"
	"kwikkash/internal/models"
	"kwikkash/internal/services"
)

// ExpenseHandler handles fixed expense and payment checklist requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for creating a fixed expense.
// Amount is a pointer so a zero-amount line item survives the required check.
type CreateExpenseRequest struct {
	Name           string   `json:"name" binding:"required,min=1,max=100"`
	Amount         *float64 `json:"amount" binding:"required,gte=0"`
	Category       string   `json:"category" binding:"max=50"`
	TimelineMonths *int     `json:"timeline_months" binding:"omitempty,gt=0"`
}

// UpdateExpenseRequest represents the request payload for updating a fixed expense.
type UpdateExpenseRequest struct {
	Name           string   `json:"name" binding:"omitempty,min=1,max=100"`
	Amount         *float64 `json:"amount" binding:"omitempty,gte=0"`
	Category       string   `json:"category" binding:"omitempty,max=50"`
	TimelineMonths *int     `json:"timeline_months" binding:"omitempty,gt=0"`
}

// PaymentRequest represents the request payload for the monthly paid checklist.
type PaymentRequest struct {
	Month string `json:"month" binding:"required,paid_month"`
}

// CreateExpense handles the creation of a fixed expense.
// @Summary     Create a fixed expense
// @Description Add a recurring monthly expense; the budget split is recomputed
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.FixedExpense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, req.Name, *req.Amount, req.Category, req.TimelineMonths)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_EXPENSE", "fixed_expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "amount": *req.Amount})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses handles listing the user's fixed expenses.
// @Summary     Get fixed expenses
// @Description List the user's recurring monthly expenses
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.FixedExpense "Fixed expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.GetUserExpenses(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// UpdateExpense handles updating a fixed expense.
// @Summary     Update fixed expense
// @Description Update a recurring expense; the budget split is recomputed
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Updated expense details"
// @Success     200 {object} models.FixedExpense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, req.Name, req.Amount, req.Category, req.TimelineMonths)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_EXPENSE", "fixed_expense", expenseID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting a fixed expense.
// @Summary     Delete fixed expense
// @Description Remove a recurring expense; the budget split is recomputed
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EXPENSE", "fixed_expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// LogPayment handles marking an expense as paid for a month.
// @Summary     Log expense payment
// @Description Mark a fixed expense as paid for a calendar month (idempotent)
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int            true "Expense ID"
// @Param       request body PaymentRequest true "Month in YYYY-MM format"
// @Success     200 {object} MessageResponse "Payment logged"
// @Failure     400 {object} ErrorResponse "Invalid input or expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/payments [post]
func (h *ExpenseHandler) LogPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.expenseService.LogPayment(userID, expenseID, req.Month); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment logged"})
}

// UnlogPayment handles clearing the paid mark for a month.
// @Summary     Unlog expense payment
// @Description Clear the paid mark for a calendar month (idempotent)
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path int    true "Expense ID"
// @Param       month path string true "Month in YYYY-MM format"
// @Success     200 {object} MessageResponse "Payment cleared"
// @Failure     400 {object} ErrorResponse "Invalid month or expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id}/payments/{month} [delete]
func (h *ExpenseHandler) UnlogPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	month := c.Param("month")
	if !models.ValidPaidMonth(month) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be in YYYY-MM format"))
		return
	}

	if err := h.expenseService.UnlogPayment(userID, expenseID, month); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment cleared"})
}

// GetLoggedPayments handles listing which expenses are paid for a month.
// @Summary     Get logged payments
// @Description List the expense IDs marked paid for a month
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query string true "Month in YYYY-MM format"
// @Success     200 {array} int "Paid expense IDs"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/payments [get]
func (h *ExpenseHandler) GetLoggedPayments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query struct {
		Month string `form:"month" binding:"required,paid_month"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	ids, err := h.expenseService.GetLoggedPayments(userID, query.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense_ids": ids})
}
