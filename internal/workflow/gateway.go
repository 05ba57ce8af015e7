package workflow

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	domainwf "github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
	"github.com/cmcs-dev/claim-workflow/internal/repository"
	"github.com/cmcs-dev/claim-workflow/pkg/database"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Gateway applies engine decisions atomically: the claim's status update
// and the new ledger entry become visible together or not at all.
type Gateway struct {
	db        *database.DB
	claims    *repository.ClaimRepository
	approvals *repository.ApprovalRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewGateway creates a new persistence gateway
func NewGateway(
	db *database.DB,
	claims *repository.ClaimRepository,
	approvals *repository.ApprovalRepository,
	logger *zap.Logger,
) *Gateway {
	return &Gateway{
		db:        db,
		claims:    claims,
		approvals: approvals,
		logger:    logger,
		now:       time.Now,
	}
}

// Commit applies a decision inside one transaction. The claim is re-read
// under the transaction and its status compared to the decision's starting
// status; a mismatch means a concurrent transition won and the commit
// aborts with ConflictError, writing nothing. This optimistic status check
// is the sole concurrency guard: no row locks are taken.
func (g *Gateway) Commit(ctx context.Context, d *Decision) error {
	err := g.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		current, err := g.claims.GetByIDTx(tx, d.ClaimID)
		if err != nil {
			return err
		}
		if current == nil || !current.IsActive {
			return fmt.Errorf("claim %d: %w", d.ClaimID, domainwf.ErrNotFound)
		}
		if current.Status != d.From {
			return &domainwf.ConflictError{
				ClaimID:  d.ClaimID,
				Expected: d.From,
				Actual:   current.Status,
			}
		}

		// Clarification decisions keep from == to; the claim row is left
		// untouched so its last-modified timestamp still reflects the last
		// real transition.
		if d.To != d.From {
			if err := g.claims.UpdateStatusTx(tx, d.ClaimID, d.To, d.TotalAmount, g.now()); err != nil {
				return err
			}
		}

		entry := *d.Entry
		entry.ClaimID = d.ClaimID
		return g.approvals.CreateTx(tx, &entry)
	})
	if err != nil {
		return g.classify("commit transition", err)
	}

	g.logger.Info("Transition committed",
		zap.Int64("claim_id", d.ClaimID),
		zap.String("from", d.From.String()),
		zap.String("to", d.To.String()),
		zap.String("outcome", string(d.Entry.Outcome)))
	return nil
}

// CreateClaim inserts a brand-new claim at PENDING. The duplicate guard
// and the insert share one transaction: at most one active claim may exist
// per (lecturer, period, module), module compared case-insensitively.
// The claim reference is assigned here.
func (g *Gateway) CreateClaim(ctx context.Context, claim *entity.Claim) error {
	now := g.now()
	claim.ClaimReference = NewReference(now)
	claim.Status = domainwf.StatePending
	claim.TotalAmount = claim.HoursWorked * claim.HourlyRate
	claim.SubmissionDate = now
	claim.LastModified = now
	claim.IsActive = true

	err := g.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		dup, err := g.claims.HasActiveDuplicateTx(tx,
			claim.LecturerID, claim.MonthWorked, claim.YearWorked, claim.ModuleTaught)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%w: an active claim for %s in %02d/%d already exists",
				domainwf.ErrDuplicateClaim, claim.ModuleTaught, claim.MonthWorked, claim.YearWorked)
		}
		return g.claims.CreateTx(tx, claim)
	})
	if err != nil {
		return g.classify("create claim", err)
	}

	g.logger.Info("Claim created",
		zap.Int64("claim_id", claim.ID),
		zap.String("reference", claim.ClaimReference),
		zap.Int64("lecturer_id", claim.LecturerID),
		zap.Float64("total", claim.TotalAmount))
	return nil
}

// Deactivate soft-deletes a lecturer's own PENDING claim. The record
// survives for audit but disappears from all workflow queries.
func (g *Gateway) Deactivate(ctx context.Context, claimID, lecturerID int64) error {
	err := g.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		claim, err := g.claims.GetByIDTx(tx, claimID)
		if err != nil {
			return err
		}
		if claim == nil || !claim.IsActive || claim.LecturerID != lecturerID {
			return fmt.Errorf("claim %d: %w", claimID, domainwf.ErrNotFound)
		}
		if claim.Status != domainwf.StatePending {
			return &domainwf.TransitionError{
				Trigger: "WITHDRAW",
				Stage:   "",
				Current: claim.Status,
			}
		}
		return g.claims.DeactivateTx(tx, claimID, g.now())
	})
	if err != nil {
		return g.classify("deactivate claim", err)
	}

	g.logger.Info("Claim deactivated", zap.Int64("claim_id", claimID))
	return nil
}

// classify passes domain errors through untouched and wraps storage
// failures into PersistenceError with a category, so operators can tell a
// schema defect (constraint) from a transient outage (connectivity).
func (g *Gateway) classify(op string, err error) error {
	switch {
	case errors.Is(err, domainwf.ErrNotFound),
		errors.Is(err, domainwf.ErrInvalidTransition),
		errors.Is(err, domainwf.ErrValidation),
		errors.Is(err, domainwf.ErrDuplicateClaim),
		errors.Is(err, domainwf.ErrConflict):
		return err
	}

	category := domainwf.CategoryUnknown

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrConstraint:
			category = domainwf.CategoryConstraint
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr:
			category = domainwf.CategoryConnectivity
		}
	} else if errors.Is(err, driver.ErrBadConn) {
		category = domainwf.CategoryConnectivity
	}

	g.logger.Error("Persistence failure",
		zap.String("op", op),
		zap.String("category", string(category)),
		zap.Error(err))

	return &domainwf.PersistenceError{
		Category: category,
		Op:       op,
		Err:      err,
	}
}
