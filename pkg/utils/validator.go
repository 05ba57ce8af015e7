package utils

import "fmt"

// Bounds mirror the claims schema: they exist to reject nonsense input
// before it reaches the database, not to encode payroll policy.
const (
	MinHoursWorked = 0.1
	MaxHoursWorked = 500
	MaxHourlyRate  = 10000
	MinClaimYear   = 2020
	MaxClaimYear   = 2030
	MaxModuleLen   = 100
	MaxNotesLen    = 500
)

// ValidateHours validates the number of hours claimed
func ValidateHours(hours float64) error {
	if hours < MinHoursWorked || hours > MaxHoursWorked {
		return fmt.Errorf("hours worked must be between %v and %v: %v", MinHoursWorked, MaxHoursWorked, hours)
	}
	return nil
}

// ValidateRate validates the hourly pay rate
func ValidateRate(rate float64) error {
	if rate < 0 || rate > MaxHourlyRate {
		return fmt.Errorf("hourly rate must be between 0 and %v: %v", MaxHourlyRate, rate)
	}
	return nil
}

// ValidatePeriod validates the work period
func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12: %d", month)
	}
	if year < MinClaimYear || year > MaxClaimYear {
		return fmt.Errorf("year must be between %d and %d: %d", MinClaimYear, MaxClaimYear, year)
	}
	return nil
}

// ValidateModule validates the taught module code or name
func ValidateModule(module string) error {
	if module == "" {
		return fmt.Errorf("module taught is required")
	}
	if len(module) > MaxModuleLen {
		return fmt.Errorf("module taught exceeds %d characters", MaxModuleLen)
	}
	return nil
}

// ValidateNotes validates optional free-text notes
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLen {
		return fmt.Errorf("additional notes exceed %d characters", MaxNotesLen)
	}
	return nil
}
