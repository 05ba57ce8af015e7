package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	domainwf "github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
	"go.uber.org/zap"
)

// Actor is the role-identified principal requesting an action. Identity
// arrives from the session provider already authenticated; the engine only
// enforces per-action stage authorization.
type Actor struct {
	ID   int64
	Role entity.Role
}

// Decision is the engine's verdict on a requested action: the transition
// to apply and the ledger entry to append. The engine performs no I/O;
// the persistence gateway commits the decision atomically.
type Decision struct {
	ClaimID     int64
	From        domainwf.State
	To          domainwf.State
	TotalAmount float64
	Entry       *entity.ClaimApproval
}

// Engine holds the pure decision logic of the approval workflow
type Engine struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates a new workflow engine
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		logger: logger,
		now:    time.Now,
	}
}

// Approve decides an approval at the actor's stage
func (e *Engine) Approve(claim *entity.Claim, actor Actor, comment string) (*Decision, error) {
	return e.decide(claim, actor, domainwf.TriggerApprove, comment, "")
}

// Reject decides a rejection at the actor's stage. A non-empty reason is
// required.
func (e *Engine) Reject(claim *entity.Claim, actor Actor, reason string) (*Decision, error) {
	return e.decide(claim, actor, domainwf.TriggerReject, "", reason)
}

// RequestClarification appends a clarification request to the ledger
// without moving the claim. A non-empty request is required.
func (e *Engine) RequestClarification(claim *entity.Claim, actor Actor, request string) (*Decision, error) {
	return e.decide(claim, actor, domainwf.TriggerRequestClarification, request, "")
}

// MarkPaid decides the final payment transition
func (e *Engine) MarkPaid(claim *entity.Claim, actor Actor) (*Decision, error) {
	return e.decide(claim, actor, domainwf.TriggerMarkPaid, "", "")
}

func (e *Engine) decide(claim *entity.Claim, actor Actor, trigger domainwf.Trigger, comment, reason string) (*Decision, error) {
	if claim == nil || !claim.IsActive {
		return nil, fmt.Errorf("claim: %w", domainwf.ErrNotFound)
	}

	stage, ok := actor.Role.Stage()
	if !ok {
		return nil, fmt.Errorf("%w: role %s holds no approval stage", domainwf.ErrInvalidTransition, actor.Role)
	}

	next, ok := domainwf.Next(claim.Status, trigger, stage)
	if !ok {
		return nil, &domainwf.TransitionError{
			Trigger: trigger,
			Stage:   stage,
			Current: claim.Status,
		}
	}

	comment = strings.TrimSpace(comment)
	reason = strings.TrimSpace(reason)

	switch trigger {
	case domainwf.TriggerReject:
		if reason == "" {
			return nil, fmt.Errorf("%w: a rejection reason is required", domainwf.ErrValidation)
		}
	case domainwf.TriggerRequestClarification:
		if comment == "" {
			return nil, fmt.Errorf("%w: clarification details are required", domainwf.ErrValidation)
		}
	}

	// Legacy rows created before totals were computed at submission may
	// carry a zero total; backfill it from the frozen hours and rate.
	total := claim.TotalAmount
	if total == 0 {
		total = claim.HoursWorked * claim.HourlyRate
	}

	now := e.now()
	entry := &entity.ClaimApproval{
		ClaimID:         claim.ID,
		ApproverID:      actor.ID,
		Stage:           stage,
		ReviewDate:      now,
		RejectionReason: "",
		Comments:        "",
		IsActive:        true,
	}

	switch trigger {
	case domainwf.TriggerApprove:
		entry.Outcome = entity.OutcomeApproved
		entry.Comments = comment
		if entry.Comments == "" {
			entry.Comments = fmt.Sprintf("Claim approved by %s.", stageDisplayName(stage))
		}
		entry.DecisionDate = &now
	case domainwf.TriggerReject:
		entry.Outcome = entity.OutcomeRejected
		entry.RejectionReason = reason
		entry.DecisionDate = &now
	case domainwf.TriggerRequestClarification:
		entry.Outcome = entity.OutcomePendingClarification
		entry.Comments = fmt.Sprintf("Clarification requested: %s", comment)
	case domainwf.TriggerMarkPaid:
		entry.Outcome = entity.OutcomeApproved
		entry.Comments = "Claim marked as paid by HR."
		entry.DecisionDate = &now
	}

	e.logger.Info("Workflow decision",
		zap.Int64("claim_id", claim.ID),
		zap.String("reference", claim.ClaimReference),
		zap.String("trigger", trigger.String()),
		zap.String("stage", stage.String()),
		zap.String("from", claim.Status.String()),
		zap.String("to", next.String()))

	return &Decision{
		ClaimID:     claim.ID,
		From:        claim.Status,
		To:          next,
		TotalAmount: total,
		Entry:       entry,
	}, nil
}

func stageDisplayName(stage domainwf.Stage) string {
	switch stage {
	case domainwf.StageProgrammeCoordinator:
		return "Programme Coordinator"
	case domainwf.StageAcademicManager:
		return "Academic Manager"
	case domainwf.StageHR:
		return "HR"
	}
	return string(stage)
}
