package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/core/services"
	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/atelierops/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adjustmentHandler handles HTTP requests correcting paid expenses.
type adjustmentHandler struct {
	adjustmentService portssvc.AdjustmentSvcFacade
}

// newAdjustmentHandler creates a new adjustmentHandler.
func newAdjustmentHandler(as portssvc.AdjustmentSvcFacade) *adjustmentHandler {
	return &adjustmentHandler{
		adjustmentService: as,
	}
}

// registerAdjustmentRoutes registers the correction routes nested under a
// specific expense. All mutating routes carry the money rate limit.
func registerAdjustmentRoutes(expenseSpecific *gin.RouterGroup, adjustmentService portssvc.AdjustmentSvcFacade, rateLimit gin.HandlerFunc) {
	h := newAdjustmentHandler(adjustmentService)

	expenseSpecific.POST("/adjustments", rateLimit, h.adjustExpense)
	expenseSpecific.GET("/adjustments", h.adjustmentHistory)
	expenseSpecific.POST("/revert", rateLimit, h.revertExpense)
	expenseSpecific.POST("/refunds", rateLimit, h.partialRefund)
}

// mapAdjustmentError translates adjustment service errors into HTTP responses.
// The adjust, revert and refund paths share the same failure modes.
func mapAdjustmentError(c *gin.Context, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(action + " failed: expense not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
	case errors.Is(err, services.ErrNoPaymentToAdjust),
		errors.Is(err, services.ErrPaymentNotPosted),
		errors.Is(err, services.ErrRefundExceedsPaid),
		errors.Is(err, services.ErrPaymentExceedsOutstanding):
		logger.Warn(action+" rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMissingCorrectionTarget),
		errors.Is(err, services.ErrUnknownPaymentMethod),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn(action+" failed validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn(action + " failed: insufficient funds on the corrected account")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Corrected account cannot cover the movement"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// adjustExpense godoc
// @Summary Adjust a paid expense
// @Description Corrects an expense's amount, its paying account, or both. Money refunded or moved flows through compensating ledger entries; existing entries are never edited.
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   adjustment body dto.AdjustExpenseRequest true "Correction details"
// @Success 201 {object} dto.AdjustmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 422 {object} map[string]string "Expense has no adjustable payment"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to adjust expense"
// @Security BearerAuth
// @Router /expenses/{expenseID}/adjustments [post]
func (h *adjustmentHandler) adjustExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	var req dto.AdjustExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdjustExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor", actor), slog.String("expense_id", expenseID))
	logger.Info("Received request to adjust expense")

	adjustment, err := h.adjustmentService.Adjust(c.Request.Context(), expenseID, req, actor)
	if err != nil {
		mapAdjustmentError(c, logger, "adjust expense", err)
		return
	}

	logger.Info("Expense adjusted",
		slog.String("adjustment_id", adjustment.AdjustmentID),
		slog.String("reason", string(adjustment.Reason)),
		slog.String("delta", adjustment.AdjustmentDelta.String()))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adjustment))
}

// adjustmentHistory godoc
// @Summary List an expense's adjustments
// @Description Retrieves the corrections applied to an expense, newest first.
// @Tags adjustments
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {array} dto.AdjustmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to list adjustments"
// @Security BearerAuth
// @Router /expenses/{expenseID}/adjustments [get]
func (h *adjustmentHandler) adjustmentHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	adjustments, err := h.adjustmentService.History(c.Request.Context(), expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Adjustment history failed: expense not found", slog.String("expense_id", expenseID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		} else {
			logger.Error("Failed to list adjustments", slog.String("expense_id", expenseID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list adjustments"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListAdjustmentResponse(adjustments))
}

// revertExpense godoc
// @Summary Revert an expense payment
// @Description Undoes an expense payment entirely, returning the full paid amount to the paying account and zeroing the expense's paid state.
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   revert body dto.RevertExpenseRequest true "Reversal details"
// @Success 201 {object} dto.AdjustmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 422 {object} map[string]string "Expense has no payment to revert"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to revert expense"
// @Security BearerAuth
// @Router /expenses/{expenseID}/revert [post]
func (h *adjustmentHandler) revertExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	var req dto.RevertExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RevertExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor", actor), slog.String("expense_id", expenseID))
	logger.Info("Received request to revert expense payment")

	adjustment, err := h.adjustmentService.Revert(c.Request.Context(), expenseID, req, actor)
	if err != nil {
		mapAdjustmentError(c, logger, "revert expense", err)
		return
	}

	logger.Info("Expense payment reverted",
		slog.String("adjustment_id", adjustment.AdjustmentID),
		slog.String("delta", adjustment.AdjustmentDelta.String()))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adjustment))
}

// partialRefund godoc
// @Summary Refund part of a paid expense
// @Description Returns part of the paid amount to the paying account without touching the expense's nominal amount.
// @Tags adjustments
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   refund body dto.PartialRefundRequest true "Refund details"
// @Success 201 {object} dto.AdjustmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 422 {object} map[string]string "Refund exceeds the paid amount"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to refund expense"
// @Security BearerAuth
// @Router /expenses/{expenseID}/refunds [post]
func (h *adjustmentHandler) partialRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	var req dto.PartialRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PartialRefund", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor", actor), slog.String("expense_id", expenseID))
	logger.Info("Received request for partial refund", slog.String("amount", req.Amount.String()))

	adjustment, err := h.adjustmentService.PartialRefund(c.Request.Context(), expenseID, req, actor)
	if err != nil {
		mapAdjustmentError(c, logger, "refund expense", err)
		return
	}

	logger.Info("Partial refund applied",
		slog.String("adjustment_id", adjustment.AdjustmentID),
		slog.String("delta", adjustment.AdjustmentDelta.String()))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adjustment))
}
