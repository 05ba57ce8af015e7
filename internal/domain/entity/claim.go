package entity

import (
	"time"

	"github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
)

// Claim is a lecturer's request for payment for hours worked in a period.
// TotalAmount is frozen at submission time and never recomputed afterwards
// except as a defensive backfill when found zero.
type Claim struct {
	ID              int64          `json:"id"`
	ClaimReference  string         `json:"claim_reference"`
	LecturerID      int64          `json:"lecturer_id"`
	MonthWorked     int            `json:"month_worked"`
	YearWorked      int            `json:"year_worked"`
	HoursWorked     float64        `json:"hours_worked"`
	HourlyRate      float64        `json:"hourly_rate"`
	TotalAmount     float64        `json:"total_amount"`
	ModuleTaught    string         `json:"module_taught"`
	AdditionalNotes string         `json:"additional_notes,omitempty"`
	Status          workflow.State `json:"status"`
	SubmissionDate  time.Time      `json:"submission_date"`
	LastModified    time.Time      `json:"last_modified_date"`
	IsActive        bool           `json:"is_active"`
}

// Period formats the work period as MM/YYYY for display and reports
func (c *Claim) Period() string {
	return time.Date(c.YearWorked, time.Month(c.MonthWorked), 1, 0, 0, 0, 0, time.UTC).Format("01/2006")
}
