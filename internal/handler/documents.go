package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cmcs-dev/claim-workflow/internal/document"
	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	"github.com/cmcs-dev/claim-workflow/internal/repository"
	"github.com/cmcs-dev/claim-workflow/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler manages supporting documents attached to claims
type DocumentHandler struct {
	documents   *repository.DocumentRepository
	claims      *repository.ClaimRepository
	store       *storage.LocalFileStorage
	inspector   *document.Inspector
	maxFileSize int64
	logger      *zap.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	documents *repository.DocumentRepository,
	claims *repository.ClaimRepository,
	store *storage.LocalFileStorage,
	inspector *document.Inspector,
	maxFileSize int64,
	logger *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		documents:   documents,
		claims:      claims,
		store:       store,
		inspector:   inspector,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Upload attaches a file to a claim. PDFs are inspected and marked
// verified when readable; the workflow itself never requires a document.
func (h *DocumentHandler) Upload(c *gin.Context) {
	claimIDValue, ok := claimID(c)
	if !ok {
		return
	}

	claim, err := h.claims.GetByID(claimIDValue)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if claim == nil || !claim.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "claim not found", "code": "NOT_FOUND"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "code": "VALIDATION_ERROR"})
		return
	}
	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the maximum allowed size", "code": "VALIDATION_ERROR"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer src.Close()

	relPath, size, err := h.store.Save(claim.ClaimReference, fileHeader.Filename, src)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	doc := &entity.Document{
		ClaimID:     claim.ID,
		FileName:    filepath.Base(fileHeader.Filename),
		FilePath:    relPath,
		FileType:    strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), "."),
		FileSize:    size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Description: strings.TrimSpace(c.PostForm("description")),
		UploadDate:  time.Now(),
	}

	if doc.FileType == "pdf" {
		inspection, err := h.inspector.Inspect(h.store.Path(relPath))
		if err != nil {
			h.logger.Warn("Document inspection failed",
				zap.String("path", relPath), zap.Error(err))
		} else {
			doc.IsVerified = inspection.PageCount > 0
		}
	}

	if err := h.documents.Create(doc); err != nil {
		_ = h.store.Remove(relPath)
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// List returns all documents attached to a claim
func (h *DocumentHandler) List(c *gin.Context) {
	claimIDValue, ok := claimID(c)
	if !ok {
		return
	}

	docs, err := h.documents.ListByClaim(claimIDValue)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "count": len(docs)})
}

// Download streams a stored document back to the caller
func (h *DocumentHandler) Download(c *gin.Context) {
	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	c.FileAttachment(h.store.Path(doc.FilePath), doc.FileName)
}

// Remove deletes a document record and its stored file
func (h *DocumentHandler) Remove(c *gin.Context) {
	doc, ok := h.loadDocument(c)
	if !ok {
		return
	}

	if err := h.documents.Delete(doc.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.store.Remove(doc.FilePath); err != nil {
		h.logger.Warn("Failed to remove stored file",
			zap.String("path", doc.FilePath), zap.Error(err))
	}

	c.Status(http.StatusNoContent)
}

func (h *DocumentHandler) loadDocument(c *gin.Context) (*entity.Document, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id", "code": "VALIDATION_ERROR"})
		return nil, false
	}

	doc, err := h.documents.GetByID(id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found", "code": "NOT_FOUND"})
		return nil, false
	}
	return doc, true
}
