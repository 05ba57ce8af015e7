package workflow

import (
	"testing"
	"time"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	domainwf "github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testEngine() *Engine {
	e := NewEngine(zap.NewNop())
	e.now = func() time.Time {
		return time.Date(2025, 10, 20, 14, 30, 0, 0, time.UTC)
	}
	return e
}

func pendingClaim() *entity.Claim {
	return &entity.Claim{
		ID:             1,
		ClaimReference: "CLM-2510201430-A1B2",
		LecturerID:     7,
		MonthWorked:    10,
		YearWorked:     2024,
		HoursWorked:    40,
		HourlyRate:     250,
		TotalAmount:    10000,
		ModuleTaught:   "PROG6212",
		Status:         domainwf.StatePending,
		IsActive:       true,
	}
}

func TestEngine_ApprovePendingAsCoordinator(t *testing.T) {
	engine := testEngine()
	claim := pendingClaim()

	decision, err := engine.Approve(claim, Actor{ID: 20, Role: entity.RoleProgrammeCoordinator}, "Hours match the timesheet")
	require.NoError(t, err)

	assert.Equal(t, domainwf.StatePending, decision.From)
	assert.Equal(t, domainwf.StateApprovedPC, decision.To)
	assert.Equal(t, 10000.0, decision.TotalAmount)

	entry := decision.Entry
	assert.Equal(t, entity.OutcomeApproved, entry.Outcome)
	assert.Equal(t, domainwf.StageProgrammeCoordinator, entry.Stage)
	assert.Equal(t, int64(20), entry.ApproverID)
	assert.Equal(t, "Hours match the timesheet", entry.Comments)
	assert.Equal(t, "", entry.RejectionReason)
	require.NotNil(t, entry.DecisionDate)
}

func TestEngine_ApproveDefaultComment(t *testing.T) {
	engine := testEngine()

	decision, err := engine.Approve(pendingClaim(), Actor{ID: 20, Role: entity.RoleProgrammeCoordinator}, "   ")
	require.NoError(t, err)
	assert.Equal(t, "Claim approved by Programme Coordinator.", decision.Entry.Comments)

	claim := pendingClaim()
	claim.Status = domainwf.StateApprovedPC
	decision, err = engine.Approve(claim, Actor{ID: 21, Role: entity.RoleAcademicManager}, "")
	require.NoError(t, err)
	assert.Equal(t, "Claim approved by Academic Manager.", decision.Entry.Comments)
	assert.Equal(t, domainwf.StateApprovedFinal, decision.To)
}

func TestEngine_RejectRequiresReason(t *testing.T) {
	engine := testEngine()

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := engine.Reject(pendingClaim(), Actor{ID: 20, Role: entity.RoleProgrammeCoordinator}, reason)
		assert.ErrorIs(t, err, domainwf.ErrValidation)
	}
}

func TestEngine_RejectWritesEmptyCommentNeverNull(t *testing.T) {
	engine := testEngine()

	decision, err := engine.Reject(pendingClaim(), Actor{ID: 20, Role: entity.RoleProgrammeCoordinator}, "  hours not on the roster  ")
	require.NoError(t, err)

	assert.Equal(t, domainwf.StateRejected, decision.To)
	assert.Equal(t, entity.OutcomeRejected, decision.Entry.Outcome)
	assert.Equal(t, "hours not on the roster", decision.Entry.RejectionReason)
	assert.Equal(t, "", decision.Entry.Comments)
}

func TestEngine_InvalidTransitionCarriesCurrentStatus(t *testing.T) {
	engine := testEngine()
	claim := pendingClaim()
	claim.Status = domainwf.StateApprovedPC

	_, err := engine.MarkPaid(claim, Actor{ID: 30, Role: entity.RoleHR})
	require.ErrorIs(t, err, domainwf.ErrInvalidTransition)

	var transitionErr *domainwf.TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domainwf.StateApprovedPC, transitionErr.Current)
	assert.Equal(t, domainwf.StageHR, transitionErr.Stage)
}

func TestEngine_StageGating(t *testing.T) {
	engine := testEngine()

	tests := []struct {
		name string
		role entity.Role
	}{
		{"academic manager cannot act first", entity.RoleAcademicManager},
		{"hr cannot approve pending", entity.RoleHR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Approve(pendingClaim(), Actor{ID: 9, Role: tt.role}, "")
			assert.ErrorIs(t, err, domainwf.ErrInvalidTransition)
		})
	}

	_, err := engine.Approve(pendingClaim(), Actor{ID: 9, Role: entity.RoleLecturer}, "")
	assert.ErrorIs(t, err, domainwf.ErrInvalidTransition)
}

func TestEngine_InactiveClaimNotFound(t *testing.T) {
	engine := testEngine()

	claim := pendingClaim()
	claim.IsActive = false
	_, err := engine.Approve(claim, Actor{ID: 20, Role: entity.RoleProgrammeCoordinator}, "")
	assert.ErrorIs(t, err, domainwf.ErrNotFound)

	_, err = engine.Approve(nil, Actor{ID: 20, Role: entity.RoleProgrammeCoordinator}, "")
	assert.ErrorIs(t, err, domainwf.ErrNotFound)
}

func TestEngine_ZeroTotalBackfilled(t *testing.T) {
	engine := testEngine()
	claim := pendingClaim()
	claim.TotalAmount = 0

	decision, err := engine.Approve(claim, Actor{ID: 20, Role: entity.RoleProgrammeCoordinator}, "")
	require.NoError(t, err)
	assert.Equal(t, 10000.0, decision.TotalAmount)
}

func TestEngine_NonZeroTotalNeverRecomputed(t *testing.T) {
	engine := testEngine()
	claim := pendingClaim()
	claim.HourlyRate = 300 // rate changed after submission; total stays frozen

	decision, err := engine.Approve(claim, Actor{ID: 20, Role: entity.RoleProgrammeCoordinator}, "")
	require.NoError(t, err)
	assert.Equal(t, 10000.0, decision.TotalAmount)
}

func TestEngine_RequestClarification(t *testing.T) {
	engine := testEngine()

	decision, err := engine.RequestClarification(pendingClaim(), Actor{ID: 21, Role: entity.RoleAcademicManager}, "  which module sessions?  ")
	require.NoError(t, err)

	assert.Equal(t, decision.From, decision.To, "clarification must not move the state machine")
	assert.Equal(t, entity.OutcomePendingClarification, decision.Entry.Outcome)
	assert.Equal(t, "Clarification requested: which module sessions?", decision.Entry.Comments)
	assert.Equal(t, "", decision.Entry.RejectionReason)
	assert.Nil(t, decision.Entry.DecisionDate)

	_, err = engine.RequestClarification(pendingClaim(), Actor{ID: 21, Role: entity.RoleAcademicManager}, "")
	assert.ErrorIs(t, err, domainwf.ErrValidation)

	paid := pendingClaim()
	paid.Status = domainwf.StatePaid
	_, err = engine.RequestClarification(paid, Actor{ID: 21, Role: entity.RoleAcademicManager}, "too late")
	assert.ErrorIs(t, err, domainwf.ErrInvalidTransition)
}

func TestEngine_MarkPaid(t *testing.T) {
	engine := testEngine()
	claim := pendingClaim()
	claim.Status = domainwf.StateApprovedFinal

	decision, err := engine.MarkPaid(claim, Actor{ID: 30, Role: entity.RoleHR})
	require.NoError(t, err)

	assert.Equal(t, domainwf.StatePaid, decision.To)
	assert.Equal(t, entity.OutcomeApproved, decision.Entry.Outcome)
	assert.Equal(t, domainwf.StageHR, decision.Entry.Stage)
	assert.Equal(t, "Claim marked as paid by HR.", decision.Entry.Comments)
}
