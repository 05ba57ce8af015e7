package workflow

// rule is one stage-gated edge of the claim state machine
type rule struct {
	from    State
	trigger Trigger
	stage   Stage
	to      State
}

// The complete transition set. The claim workflow is fixed, so the machine
// is a static table rather than a per-instance configuration: every edge
// names the single stage allowed to fire it.
var rules = []rule{
	{StatePending, TriggerApprove, StageProgrammeCoordinator, StateApprovedPC},
	{StatePending, TriggerReject, StageProgrammeCoordinator, StateRejected},
	{StateApprovedPC, TriggerApprove, StageAcademicManager, StateApprovedFinal},
	{StateApprovedPC, TriggerReject, StageAcademicManager, StateRejected},
	{StateApprovedFinal, TriggerMarkPaid, StageHR, StatePaid},
}

// Next returns the state reached by firing trigger from state as stage.
// The second return is false when the edge does not exist.
//
// RequestClarification is handled here as a self-transition: any stage may
// fire it from any non-terminal state and the claim state is unchanged.
func Next(from State, trigger Trigger, stage Stage) (State, bool) {
	if trigger == TriggerRequestClarification {
		if from.IsValid() && !from.IsTerminal() && stage.IsValid() {
			return from, true
		}
		return "", false
	}

	for _, r := range rules {
		if r.from == from && r.trigger == trigger && r.stage == stage {
			return r.to, true
		}
	}
	return "", false
}

// CanFire returns true if stage may fire trigger from state
func CanFire(from State, trigger Trigger, stage Stage) bool {
	_, ok := Next(from, trigger, stage)
	return ok
}

// Permitted returns the triggers stage may fire from state
func Permitted(from State, stage Stage) []Trigger {
	var triggers []Trigger
	for _, r := range rules {
		if r.from == from && r.stage == stage {
			triggers = append(triggers, r.trigger)
		}
	}
	if from.IsValid() && !from.IsTerminal() && stage.IsValid() {
		triggers = append(triggers, TriggerRequestClarification)
	}
	return triggers
}
