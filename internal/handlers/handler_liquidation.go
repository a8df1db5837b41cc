package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/atelierops/shop_ledger_app/internal/apperrors"
	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/atelierops/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// liquidationHandler handles HTTP requests for till liquidations.
type liquidationHandler struct {
	liquidationService portssvc.LiquidationSvcFacade
}

// newLiquidationHandler creates a new liquidationHandler.
func newLiquidationHandler(ls portssvc.LiquidationSvcFacade) *liquidationHandler {
	return &liquidationHandler{
		liquidationService: ls,
	}
}

// registerLiquidationRoutes registers routes related to liquidations. The
// mutating route carries the money rate limit.
func registerLiquidationRoutes(rg *gin.RouterGroup, liquidationService portssvc.LiquidationSvcFacade, rateLimit gin.HandlerFunc) {
	h := newLiquidationHandler(liquidationService)

	liquidations := rg.Group("/liquidations")
	{
		liquidations.POST("", rateLimit, h.liquidate)
		liquidations.GET("", h.history)
	}
}

// liquidate godoc
// @Summary Liquidate the operating till
// @Description Transfers the requested amount from the operating till into the consolidated till, recording both ledger legs under a shared LIQ- reference.
// @Tags liquidations
// @Accept  json
// @Produce  json
// @Param   liquidation body dto.CreateLiquidationRequest true "Liquidation details"
// @Success 201 {object} dto.LiquidationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Operating till cannot cover the amount"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to liquidate"
// @Security BearerAuth
// @Router /liquidations [post]
func (h *liquidationHandler) liquidate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLiquidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Liquidate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor", actor))
	logger.Info("Received request to liquidate operating till", slog.String("amount", req.Amount.String()))

	result, err := h.liquidationService.Liquidate(c.Request.Context(), req, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Liquidation failed: insufficient funds in operating till")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Operating till cannot cover the requested amount"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Liquidation failed validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Liquidation failed: till account not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Till account not found"})
		} else {
			logger.Error("Failed to liquidate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to liquidate"})
		}
		return
	}

	logger.Info("Liquidation completed",
		slog.String("reference", result.Reference),
		slog.String("amount", result.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToLiquidationResponse(result))
}

// history godoc
// @Summary List past liquidations
// @Description Retrieves liquidations of the consolidated till, newest first, optionally bounded by a date range.
// @Tags liquidations
// @Produce  json
// @Param   fromDate query string false "Start date (YYYY-MM-DD)"
// @Param   toDate query string false "End date (YYYY-MM-DD)"
// @Param   limit query int false "Max results" default(50)
// @Param   branchID query string false "Branch scope"
// @Success 200 {array} dto.LiquidationRecordResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list liquidations"
// @Security BearerAuth
// @Router /liquidations [get]
func (h *liquidationHandler) history(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LiquidationHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for LiquidationHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	records, err := h.liquidationService.History(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Liquidation history failed validation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Liquidation history failed: consolidated till not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Consolidated till not found"})
		} else {
			logger.Error("Failed to list liquidation history", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list liquidations"})
		}
		return
	}

	logger.Info("Liquidation history listed", slog.Int("count", len(records)))
	c.JSON(http.StatusOK, dto.ToLiquidationHistoryResponse(records))
}
