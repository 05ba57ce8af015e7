package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LocalFileStorage keeps supporting documents on disk, one folder per
// claim reference. Paths stored in the database are relative to the root
// so the storage location can move without a data migration.
type LocalFileStorage struct {
	root   string
	logger *zap.Logger
}

// NewLocalFileStorage creates the storage root if needed
func NewLocalFileStorage(root string, logger *zap.Logger) (*LocalFileStorage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalFileStorage{
		root:   root,
		logger: logger,
	}, nil
}

// Save writes the file under the claim's folder and returns its relative
// path and size. The file name is stripped to its base to keep uploads
// inside the storage tree.
func (s *LocalFileStorage) Save(claimRef, fileName string, r io.Reader) (string, int64, error) {
	safeName := filepath.Base(strings.TrimSpace(fileName))
	if safeName == "" || safeName == "." || safeName == string(filepath.Separator) {
		return "", 0, fmt.Errorf("invalid file name: %q", fileName)
	}

	dir := filepath.Join(s.root, claimRef)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create claim folder: %w", err)
	}

	fullPath := filepath.Join(dir, safeName)
	f, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		_ = os.Remove(fullPath)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	relPath := filepath.Join(claimRef, safeName)
	s.logger.Debug("Stored document",
		zap.String("path", relPath),
		zap.Int64("size", size))
	return relPath, size, nil
}

// Path resolves a stored relative path to its absolute location
func (s *LocalFileStorage) Path(relPath string) string {
	return filepath.Join(s.root, relPath)
}

// Remove deletes a stored file. A missing file is not an error: the
// database record is authoritative.
func (s *LocalFileStorage) Remove(relPath string) error {
	err := os.Remove(s.Path(relPath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
