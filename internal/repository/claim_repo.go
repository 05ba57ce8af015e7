package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	"github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
	"go.uber.org/zap"
)

// ClaimRepository handles claim database operations
type ClaimRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *sql.DB, logger *zap.Logger) *ClaimRepository {
	return &ClaimRepository{
		db:     db,
		logger: logger,
	}
}

const claimColumns = `
	id, claim_reference, lecturer_id, month_worked, year_worked,
	hours_worked, hourly_rate, total_amount, module_taught,
	additional_notes, status, submission_date, last_modified_date, is_active
`

func scanClaim(row interface{ Scan(...any) error }) (*entity.Claim, error) {
	var c entity.Claim
	var status string
	err := row.Scan(
		&c.ID,
		&c.ClaimReference,
		&c.LecturerID,
		&c.MonthWorked,
		&c.YearWorked,
		&c.HoursWorked,
		&c.HourlyRate,
		&c.TotalAmount,
		&c.ModuleTaught,
		&c.AdditionalNotes,
		&status,
		&c.SubmissionDate,
		&c.LastModified,
		&c.IsActive,
	)
	if err != nil {
		return nil, err
	}
	c.Status = workflow.State(status)
	return &c, nil
}

// CreateTx inserts a new claim inside tx and sets its generated ID
func (r *ClaimRepository) CreateTx(tx *sql.Tx, claim *entity.Claim) error {
	query := `
		INSERT INTO claims (
			claim_reference, lecturer_id, month_worked, year_worked,
			hours_worked, hourly_rate, total_amount, module_taught,
			additional_notes, status, submission_date, last_modified_date, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.Exec(query,
		claim.ClaimReference,
		claim.LecturerID,
		claim.MonthWorked,
		claim.YearWorked,
		claim.HoursWorked,
		claim.HourlyRate,
		claim.TotalAmount,
		claim.ModuleTaught,
		claim.AdditionalNotes,
		string(claim.Status),
		claim.SubmissionDate,
		claim.LastModified,
		claim.IsActive,
	)
	if err != nil {
		r.logger.Error("Failed to create claim", zap.Error(err))
		return fmt.Errorf("failed to create claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	claim.ID = id
	return nil
}

// GetByID retrieves a claim by ID, including inactive ones. Returns nil
// when no row exists.
func (r *ClaimRepository) GetByID(id int64) (*entity.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = ?`

	claim, err := scanClaim(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get claim", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return claim, nil
}

// GetByIDTx retrieves a claim by ID inside tx. Used by the persistence
// gateway to re-read the claim under the transaction before committing a
// transition.
func (r *ClaimRepository) GetByIDTx(tx *sql.Tx, id int64) (*entity.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = ?`

	claim, err := scanClaim(tx.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return claim, nil
}

// ListFilter narrows List results. Zero values mean no filtering.
type ListFilter struct {
	Status     workflow.State
	LecturerID int64
}

// List returns active claims matching the filter, newest submissions first
func (r *ClaimRepository) List(filter ListFilter) ([]*entity.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE is_active = 1`
	var args []any

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.LecturerID != 0 {
		query += ` AND lecturer_id = ?`
		args = append(args, filter.LecturerID)
	}
	query += ` ORDER BY submission_date DESC, id DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Failed to list claims", zap.Error(err))
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	var claims []*entity.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, claim)
	}
	return claims, rows.Err()
}

// UpdateStatusTx writes the claim's new status, total and last-modified
// timestamp inside tx
func (r *ClaimRepository) UpdateStatusTx(tx *sql.Tx, id int64, status workflow.State, total float64, modified time.Time) error {
	query := `
		UPDATE claims
		SET status = ?, total_amount = ?, last_modified_date = ?
		WHERE id = ?
	`

	result, err := tx.Exec(query, string(status), total, modified, id)
	if err != nil {
		return fmt.Errorf("failed to update claim status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeactivateTx soft-deletes a claim inside tx. The row is retained for
// audit and excluded from all workflow queries.
func (r *ClaimRepository) DeactivateTx(tx *sql.Tx, id int64, modified time.Time) error {
	query := `UPDATE claims SET is_active = 0, last_modified_date = ? WHERE id = ?`

	if _, err := tx.Exec(query, modified, id); err != nil {
		return fmt.Errorf("failed to deactivate claim: %w", err)
	}
	return nil
}

// HasActiveDuplicateTx reports whether an active claim already exists for
// the same lecturer, period and module. Module comparison is
// case-insensitive.
func (r *ClaimRepository) HasActiveDuplicateTx(tx *sql.Tx, lecturerID int64, month, year int, module string) (bool, error) {
	query := `
		SELECT COUNT(1) FROM claims
		WHERE lecturer_id = ?
		  AND month_worked = ?
		  AND year_worked = ?
		  AND LOWER(module_taught) = LOWER(?)
		  AND is_active = 1
	`

	var count int
	if err := tx.QueryRow(query, lecturerID, month, year, module).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check duplicate claim: %w", err)
	}
	return count > 0, nil
}
