package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/galvital/YogaMoves/domain"
)

// ReportHandlers handles the admin-only aggregation endpoints
type ReportHandlers struct {
	reportSvc  domain.ReportService
	logger     *zap.Logger
	production bool
}

// NewReportHandlers creates new report handlers
func NewReportHandlers(reportSvc domain.ReportService, logger *zap.Logger, production bool) *ReportHandlers {
	return &ReportHandlers{
		reportSvc:  reportSvc,
		logger:     logger,
		production: production,
	}
}

// Monthly returns the full report for one calendar month
func (h *ReportHandlers) Monthly(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	report, err := h.reportSvc.MonthlyReport(c.Request.Context(), year, month)
	if err != nil {
		internalError(c, h.logger, h.production, "Failed to build report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// AvailableMonths lists months with at least one active session
func (h *ReportHandlers) AvailableMonths(c *gin.Context) {
	months, err := h.reportSvc.AvailableMonths(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, h.production, "Failed to list months", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": months})
}

// Stats returns the all-time statistics rollup
func (h *ReportHandlers) Stats(c *gin.Context) {
	stats, err := h.reportSvc.OverallStats(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, h.production, "Failed to compute stats", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
