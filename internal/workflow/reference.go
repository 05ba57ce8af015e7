package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	referencePrefix    = "CLM"
	referenceMaxLength = 20
)

// NewReference produces a short display-friendly claim reference such as
// CLM-2510201432-A7F1. Uniqueness is not probed before insert: the
// minute-resolution timestamp plus random suffix makes collisions unlikely,
// and the unique column turns the rare one into a constraint failure the
// gateway classifies.
func NewReference(now time.Time) string {
	timestamp := now.Format("0601021504")
	suffix := strings.ToUpper(uuid.NewString()[:4])

	ref := fmt.Sprintf("%s-%s-%s", referencePrefix, timestamp, suffix)
	if len(ref) > referenceMaxLength {
		ref = ref[:referenceMaxLength]
	}
	return ref
}
