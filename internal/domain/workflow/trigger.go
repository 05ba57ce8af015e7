package workflow

// Trigger represents a reviewer action that can move a claim through the
// workflow. RequestClarification is the one side-channel trigger: it
// appends a ledger entry without changing the claim state.
type Trigger string

const (
	TriggerApprove              Trigger = "APPROVE"
	TriggerReject               Trigger = "REJECT"
	TriggerRequestClarification Trigger = "REQUEST_CLARIFICATION"
	TriggerMarkPaid             Trigger = "MARK_PAID"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}

// Stage identifies the approval authority acting on a claim
type Stage string

const (
	StageProgrammeCoordinator Stage = "PROGRAMME_COORDINATOR"
	StageAcademicManager      Stage = "ACADEMIC_MANAGER"
	StageHR                   Stage = "HR"
)

// String returns the string representation of the stage
func (s Stage) String() string {
	return string(s)
}

// IsValid returns true if s is a declared approval stage
func (s Stage) IsValid() bool {
	switch s {
	case StageProgrammeCoordinator, StageAcademicManager, StageHR:
		return true
	}
	return false
}
