package repository

import (
	"database/sql"
	"fmt"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	"go.uber.org/zap"
)

// DocumentRepository handles supporting-document database operations
type DocumentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sql.DB, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a document record and sets its generated ID
func (r *DocumentRepository) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (
			claim_id, file_name, file_path, file_type, file_size,
			content_type, description, is_verified, upload_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		doc.ClaimID,
		doc.FileName,
		doc.FilePath,
		doc.FileType,
		doc.FileSize,
		doc.ContentType,
		doc.Description,
		doc.IsVerified,
		doc.UploadDate,
	)
	if err != nil {
		r.logger.Error("Failed to create document", zap.Int64("claim_id", doc.ClaimID), zap.Error(err))
		return fmt.Errorf("failed to create document: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	doc.ID = id
	return nil
}

// GetByID retrieves a document by ID. Returns nil when no row exists.
func (r *DocumentRepository) GetByID(id int64) (*entity.Document, error) {
	query := `
		SELECT id, claim_id, file_name, file_path, file_type, file_size,
			content_type, description, is_verified, upload_date
		FROM documents
		WHERE id = ?
	`

	var d entity.Document
	err := r.db.QueryRow(query, id).Scan(
		&d.ID,
		&d.ClaimID,
		&d.FileName,
		&d.FilePath,
		&d.FileType,
		&d.FileSize,
		&d.ContentType,
		&d.Description,
		&d.IsVerified,
		&d.UploadDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get document", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &d, nil
}

// ListByClaim returns all documents attached to a claim
func (r *DocumentRepository) ListByClaim(claimID int64) ([]*entity.Document, error) {
	query := `
		SELECT id, claim_id, file_name, file_path, file_type, file_size,
			content_type, description, is_verified, upload_date
		FROM documents
		WHERE claim_id = ?
		ORDER BY upload_date, id
	`

	rows, err := r.db.Query(query, claimID)
	if err != nil {
		r.logger.Error("Failed to list documents", zap.Int64("claim_id", claimID), zap.Error(err))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*entity.Document
	for rows.Next() {
		var d entity.Document
		err := rows.Scan(
			&d.ID,
			&d.ClaimID,
			&d.FileName,
			&d.FilePath,
			&d.FileType,
			&d.FileSize,
			&d.ContentType,
			&d.Description,
			&d.IsVerified,
			&d.UploadDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

// Delete removes a document record
func (r *DocumentRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
