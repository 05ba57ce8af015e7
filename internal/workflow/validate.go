package workflow

import (
	"fmt"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	domainwf "github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
	"github.com/cmcs-dev/claim-workflow/pkg/utils"
)

// ValidateSubmission checks a new claim's fields before it is handed to
// the persistence gateway
func ValidateSubmission(c *entity.Claim) error {
	if err := utils.ValidatePeriod(c.MonthWorked, c.YearWorked); err != nil {
		return fmt.Errorf("%w: %v", domainwf.ErrValidation, err)
	}
	if err := utils.ValidateHours(c.HoursWorked); err != nil {
		return fmt.Errorf("%w: %v", domainwf.ErrValidation, err)
	}
	if err := utils.ValidateRate(c.HourlyRate); err != nil {
		return fmt.Errorf("%w: %v", domainwf.ErrValidation, err)
	}
	if err := utils.ValidateModule(c.ModuleTaught); err != nil {
		return fmt.Errorf("%w: %v", domainwf.ErrValidation, err)
	}
	if err := utils.ValidateNotes(c.AdditionalNotes); err != nil {
		return fmt.Errorf("%w: %v", domainwf.ErrValidation, err)
	}
	return nil
}
