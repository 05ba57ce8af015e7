package workflow

import "testing"

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StatePending, false},
		{StateUnderReview, false},
		{StateApprovedPC, false},
		{StateApprovedAM, false},
		{StateApprovedFinal, false},
		{StateRejected, true},
		{StatePaid, true},
		{StateCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{"pending", StatePending, true},
		{"paid", StatePaid, true},
		{"declared but unreachable", StateUnderReview, true},
		{"unknown state", State("SHIPPED"), false},
		{"empty state", State(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStage_IsValid(t *testing.T) {
	for _, stage := range []Stage{StageProgrammeCoordinator, StageAcademicManager, StageHR} {
		if !stage.IsValid() {
			t.Errorf("Stage.IsValid() = false for %s", stage)
		}
	}
	if Stage("LECTURER").IsValid() {
		t.Error("Stage.IsValid() = true for LECTURER")
	}
}
