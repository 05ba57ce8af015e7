package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	"github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
	"github.com/cmcs-dev/claim-workflow/internal/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var reportHeader = []string{"Claim Reference", "Lecturer", "Month/Year", "Hours", "Amount", "Paid Date"}

// PaymentReport exports paid claims for finance, one row per claim
type PaymentReport struct {
	claims *repository.ClaimRepository
	logger *zap.Logger
}

// NewPaymentReport creates a new payment report exporter
func NewPaymentReport(claims *repository.ClaimRepository, logger *zap.Logger) *PaymentReport {
	return &PaymentReport{
		claims: claims,
		logger: logger,
	}
}

func (r *PaymentReport) paidClaims() ([]*entity.Claim, error) {
	claims, err := r.claims.List(repository.ListFilter{Status: workflow.StatePaid})
	if err != nil {
		return nil, fmt.Errorf("failed to load paid claims: %w", err)
	}
	return claims, nil
}

func reportRow(c *entity.Claim) []string {
	return []string{
		c.ClaimReference,
		fmt.Sprintf("%d", c.LecturerID),
		c.Period(),
		fmt.Sprintf("%v", c.HoursWorked),
		fmt.Sprintf("%.2f", c.TotalAmount),
		c.LastModified.Format("2006-01-02"),
	}
}

// WriteCSV writes the payment report as CSV
func (r *PaymentReport) WriteCSV(w io.Writer) error {
	claims, err := r.paidClaims()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, c := range claims {
		if err := cw.Write(reportRow(c)); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	cw.Flush()

	r.logger.Info("Payment report exported", zap.String("format", "csv"), zap.Int("claims", len(claims)))
	return cw.Error()
}

// WriteXLSX writes the payment report as a spreadsheet
func (r *PaymentReport) WriteXLSX(w io.Writer) error {
	claims, err := r.paidClaims()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for i, c := range claims {
		values := []any{
			c.ClaimReference,
			c.LecturerID,
			c.Period(),
			c.HoursWorked,
			c.TotalAmount,
			c.LastModified.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	r.logger.Info("Payment report exported", zap.String("format", "xlsx"), zap.Int("claims", len(claims)))
	return nil
}
