package workflow

// State represents a claim's position in the approval lifecycle
type State string

const (
	StatePending       State = "PENDING"
	StateUnderReview   State = "UNDER_REVIEW"
	StateApprovedPC    State = "APPROVED_PC"
	StateApprovedAM    State = "APPROVED_AM"
	StateApprovedFinal State = "APPROVED_FINAL"
	StateRejected      State = "REJECTED"
	StatePaid          State = "PAID"
	StateCancelled     State = "CANCELLED"
)

// UNDER_REVIEW and APPROVED_AM are declared for forward compatibility but
// no transition currently produces them. CANCELLED is terminal and likewise
// has no inbound edge; lecturer-side removal goes through soft deletion.
var validStates = map[State]bool{
	StatePending:       true,
	StateUnderReview:   true,
	StateApprovedPC:    true,
	StateApprovedAM:    true,
	StateApprovedFinal: true,
	StateRejected:      true,
	StatePaid:          true,
	StateCancelled:     true,
}

var terminalStates = map[State]bool{
	StateRejected:  true,
	StatePaid:      true,
	StateCancelled: true,
}

// IsTerminal returns true if no further transitions are allowed from s
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsValid returns true if s is a declared claim state
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}
