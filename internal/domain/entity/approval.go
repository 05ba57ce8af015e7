package entity

import (
	"time"

	"github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
)

// Outcome is the result of one reviewer's action on a claim
type Outcome string

const (
	OutcomePending              Outcome = "PENDING"
	OutcomeApproved             Outcome = "APPROVED"
	OutcomeRejected             Outcome = "REJECTED"
	OutcomePendingClarification Outcome = "PENDING_CLARIFICATION"
)

// ClaimApproval is one immutable entry in a claim's approval ledger.
// Comments and RejectionReason are always written as empty strings rather
// than nulls: the schema disallows null in both columns.
type ClaimApproval struct {
	ID              int64          `json:"id"`
	ClaimID         int64          `json:"claim_id"`
	ApproverID      int64          `json:"approver_id"`
	Stage           workflow.Stage `json:"stage"`
	Outcome         Outcome        `json:"outcome"`
	Comments        string         `json:"comments"`
	RejectionReason string         `json:"rejection_reason"`
	ReviewDate      time.Time      `json:"review_date"`
	DecisionDate    *time.Time     `json:"decision_date,omitempty"`
	IsActive        bool           `json:"is_active"`
}
