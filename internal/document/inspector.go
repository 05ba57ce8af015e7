package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// Inspection summarizes what was found inside an uploaded document
type Inspection struct {
	PageCount int
	HasText   bool
}

// Inspector opens uploaded PDFs with mupdf to confirm they are readable.
// A document that passes gets its verified flag set; the workflow itself
// never blocks on documents.
type Inspector struct {
	logger *zap.Logger
}

// NewInspector creates a new document inspector
func NewInspector(logger *zap.Logger) *Inspector {
	return &Inspector{logger: logger}
}

// Inspect opens the file and reports page count and text presence.
// Non-PDF files are not inspected and return an error.
func (i *Inspector) Inspect(path string) (*Inspection, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("document not found: %s", path)
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".pdf" {
		return nil, fmt.Errorf("unsupported file type for inspection: %s", ext)
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	result := &Inspection{PageCount: doc.NumPage()}
	for page := 0; page < result.PageCount; page++ {
		text, err := doc.Text(page)
		if err != nil {
			i.logger.Warn("Failed to read PDF page text",
				zap.String("path", path),
				zap.Int("page", page),
				zap.Error(err))
			continue
		}
		if strings.TrimSpace(text) != "" {
			result.HasText = true
			break
		}
	}

	i.logger.Debug("Inspected document",
		zap.String("path", path),
		zap.Int("pages", result.PageCount),
		zap.Bool("has_text", result.HasText))
	return result, nil
}
