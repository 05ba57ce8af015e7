package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cmcs-dev/claim-workflow/internal/export"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler serves finance exports of paid claims
type ReportHandler struct {
	report *export.PaymentReport
	logger *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(report *export.PaymentReport, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		report: report,
		logger: logger,
	}
}

// PaymentsCSV streams the paid-claims report as CSV
func (h *ReportHandler) PaymentsCSV(c *gin.Context) {
	fileName := fmt.Sprintf("payment-report-%s.csv", time.Now().Format("20060102150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)

	if err := h.report.WriteCSV(c.Writer); err != nil {
		h.logger.Error("Failed to export payment report", zap.Error(err))
	}
}

// PaymentsXLSX streams the paid-claims report as a spreadsheet
func (h *ReportHandler) PaymentsXLSX(c *gin.Context) {
	fileName := fmt.Sprintf("payment-report-%s.xlsx", time.Now().Format("20060102150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := h.report.WriteXLSX(c.Writer); err != nil {
		h.logger.Error("Failed to export payment report", zap.Error(err))
	}
}
