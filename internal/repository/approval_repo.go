package repository

import (
	"database/sql"
	"fmt"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	"github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
	"go.uber.org/zap"
)

// ApprovalRepository handles approval ledger database operations. The
// ledger is append-only: entries are inserted once and never updated.
type ApprovalRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewApprovalRepository creates a new approval repository
func NewApprovalRepository(db *sql.DB, logger *zap.Logger) *ApprovalRepository {
	return &ApprovalRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTx appends a ledger entry inside tx and sets its generated ID.
// Comments and rejection reason are written as-is; the engine guarantees
// they are never empty-by-accident and the schema rejects nulls.
func (r *ApprovalRepository) CreateTx(tx *sql.Tx, entry *entity.ClaimApproval) error {
	query := `
		INSERT INTO claim_approvals (
			claim_id, approver_id, stage, outcome, comments,
			rejection_reason, review_date, decision_date, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.Exec(query,
		entry.ClaimID,
		entry.ApproverID,
		string(entry.Stage),
		string(entry.Outcome),
		entry.Comments,
		entry.RejectionReason,
		entry.ReviewDate,
		entry.DecisionDate,
		entry.IsActive,
	)
	if err != nil {
		r.logger.Error("Failed to create approval entry",
			zap.Int64("claim_id", entry.ClaimID), zap.Error(err))
		return fmt.Errorf("failed to create approval entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	entry.ID = id
	return nil
}

// ListByClaim returns all ledger entries for a claim ordered by review
// timestamp
func (r *ApprovalRepository) ListByClaim(claimID int64) ([]*entity.ClaimApproval, error) {
	query := `
		SELECT id, claim_id, approver_id, stage, outcome, comments,
			rejection_reason, review_date, decision_date, is_active
		FROM claim_approvals
		WHERE claim_id = ?
		ORDER BY review_date, id
	`

	rows, err := r.db.Query(query, claimID)
	if err != nil {
		r.logger.Error("Failed to list approvals", zap.Int64("claim_id", claimID), zap.Error(err))
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	defer rows.Close()

	var entries []*entity.ClaimApproval
	for rows.Next() {
		var e entity.ClaimApproval
		var stage, outcome string
		var decisionDate sql.NullTime

		err := rows.Scan(
			&e.ID,
			&e.ClaimID,
			&e.ApproverID,
			&stage,
			&outcome,
			&e.Comments,
			&e.RejectionReason,
			&e.ReviewDate,
			&decisionDate,
			&e.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval entry: %w", err)
		}

		e.Stage = workflow.Stage(stage)
		e.Outcome = entity.Outcome(outcome)
		if decisionDate.Valid {
			e.DecisionDate = &decisionDate.Time
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// CountByClaim returns the number of ledger entries for a claim
func (r *ApprovalRepository) CountByClaim(claimID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(1) FROM claim_approvals WHERE claim_id = ?", claimID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count approvals: %w", err)
	}
	return count, nil
}
