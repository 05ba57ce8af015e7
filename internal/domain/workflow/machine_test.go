package workflow

import "testing"

func TestNext_LegalEdges(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		trigger Trigger
		stage   Stage
		want    State
	}{
		{"PC approves pending", StatePending, TriggerApprove, StageProgrammeCoordinator, StateApprovedPC},
		{"PC rejects pending", StatePending, TriggerReject, StageProgrammeCoordinator, StateRejected},
		{"AM approves after PC", StateApprovedPC, TriggerApprove, StageAcademicManager, StateApprovedFinal},
		{"AM rejects after PC", StateApprovedPC, TriggerReject, StageAcademicManager, StateRejected},
		{"HR pays final approval", StateApprovedFinal, TriggerMarkPaid, StageHR, StatePaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Next(tt.from, tt.trigger, tt.stage)
			if !ok {
				t.Fatalf("Next(%s, %s, %s) not permitted, want %s", tt.from, tt.trigger, tt.stage, tt.want)
			}
			if got != tt.want {
				t.Errorf("Next(%s, %s, %s) = %s, want %s", tt.from, tt.trigger, tt.stage, got, tt.want)
			}
		})
	}
}

func TestNext_IllegalEdges(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		trigger Trigger
		stage   Stage
	}{
		{"AM cannot approve pending", StatePending, TriggerApprove, StageAcademicManager},
		{"HR cannot approve pending", StatePending, TriggerApprove, StageHR},
		{"PC cannot approve twice", StateApprovedPC, TriggerApprove, StageProgrammeCoordinator},
		{"HR cannot reject", StateApprovedFinal, TriggerReject, StageHR},
		{"cannot pay before final approval", StatePending, TriggerMarkPaid, StageHR},
		{"cannot pay PC approval", StateApprovedPC, TriggerMarkPaid, StageHR},
		{"PC cannot mark paid", StateApprovedFinal, TriggerMarkPaid, StageProgrammeCoordinator},
		{"rejected is terminal", StateRejected, TriggerApprove, StageProgrammeCoordinator},
		{"paid is terminal", StatePaid, TriggerMarkPaid, StageHR},
		{"cancelled is terminal", StateCancelled, TriggerApprove, StageProgrammeCoordinator},
		{"no edge into under review", StateUnderReview, TriggerApprove, StageProgrammeCoordinator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Next(tt.from, tt.trigger, tt.stage); ok {
				t.Errorf("Next(%s, %s, %s) permitted, want rejected", tt.from, tt.trigger, tt.stage)
			}
		})
	}
}

func TestNext_Clarification(t *testing.T) {
	for _, from := range []State{StatePending, StateApprovedPC, StateApprovedFinal} {
		for _, stage := range []Stage{StageProgrammeCoordinator, StageAcademicManager, StageHR} {
			got, ok := Next(from, TriggerRequestClarification, stage)
			if !ok {
				t.Errorf("clarification from %s as %s not permitted", from, stage)
				continue
			}
			if got != from {
				t.Errorf("clarification from %s moved state to %s", from, got)
			}
		}
	}

	for _, from := range []State{StateRejected, StatePaid, StateCancelled} {
		if _, ok := Next(from, TriggerRequestClarification, StageHR); ok {
			t.Errorf("clarification permitted on terminal state %s", from)
		}
	}
}

func TestCanFire(t *testing.T) {
	if !CanFire(StatePending, TriggerApprove, StageProgrammeCoordinator) {
		t.Error("CanFire(PENDING, APPROVE, PC) = false, want true")
	}
	if CanFire(StatePending, TriggerApprove, StageHR) {
		t.Error("CanFire(PENDING, APPROVE, HR) = true, want false")
	}
}

func TestPermitted(t *testing.T) {
	triggers := Permitted(StatePending, StageProgrammeCoordinator)
	want := map[Trigger]bool{
		TriggerApprove:              true,
		TriggerReject:               true,
		TriggerRequestClarification: true,
	}
	if len(triggers) != len(want) {
		t.Fatalf("Permitted(PENDING, PC) = %v, want %d triggers", triggers, len(want))
	}
	for _, trig := range triggers {
		if !want[trig] {
			t.Errorf("unexpected permitted trigger %s", trig)
		}
	}

	if got := Permitted(StateRejected, StageProgrammeCoordinator); len(got) != 0 {
		t.Errorf("Permitted(REJECTED, PC) = %v, want none", got)
	}

	hr := Permitted(StateApprovedFinal, StageHR)
	foundPay := false
	for _, trig := range hr {
		if trig == TriggerMarkPaid {
			foundPay = true
		}
	}
	if !foundPay {
		t.Errorf("Permitted(APPROVED_FINAL, HR) = %v, missing MARK_PAID", hr)
	}
}
