package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/atelierops/shop_ledger_app/internal/core/ports/services"
	"github.com/atelierops/shop_ledger_app/internal/dto"
	"github.com/atelierops/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/reconciliation", h.reconciliationReport)
		reports.GET("/patrimony", h.patrimonyReport)
	}
}

// reconciliationReport godoc
// @Summary Reconciliation report
// @Description Lists recorded transactions whose ledger posting never happened, oldest first, with the account each should have hit.
// @Tags reports
// @Produce  json
// @Param   limit query int false "Max items" default(50)
// @Success 200 {object} dto.ReconciliationReportResponse
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/reconciliation [get]
func (h *reportingHandler) reconciliationReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			logger.Warn("Invalid limit for reconciliation report", slog.String("limit", limitStr))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	items, err := h.reportingService.ReconciliationReport(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to build reconciliation report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build reconciliation report"})
		return
	}

	if len(items) > 0 {
		logger.Warn("Reconciliation report has unposted transactions", slog.Int("count", len(items)))
	}
	c.JSON(http.StatusOK, dto.ToReconciliationReportResponse(items))
}

// patrimonyReport godoc
// @Summary Patrimony report
// @Description Aggregates liquid balances, fixed asset net values and liability balances into a net-position snapshot.
// @Tags reports
// @Produce  json
// @Param   branchID query string false "Branch scope (omit for the whole business)"
// @Success 200 {object} dto.PatrimonyResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/patrimony [get]
func (h *reportingHandler) patrimonyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var branchID *string
	if branch := c.Query("branchID"); branch != "" {
		branchID = &branch
	}

	report, err := h.reportingService.PatrimonyReport(c.Request.Context(), branchID)
	if err != nil {
		logger.Error("Failed to build patrimony report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build patrimony report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPatrimonyResponse(report))
}
