package handler

import (
	"errors"
	"net/http"

	domainwf "github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the workflow error taxonomy onto HTTP statuses. Every
// error is surfaced here; nothing is swallowed below the request boundary.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var transitionErr *domainwf.TransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":          transitionErr.Error(),
			"code":           "INVALID_TRANSITION",
			"current_status": transitionErr.Current.String(),
		})
		return
	}

	var conflictErr *domainwf.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":          "claim was modified concurrently, re-fetch and retry",
			"code":           "CONFLICT",
			"current_status": conflictErr.Actual.String(),
		})
		return
	}

	switch {
	case errors.Is(err, domainwf.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_ERROR"})
	case errors.Is(err, domainwf.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "claim not found", "code": "NOT_FOUND"})
	case errors.Is(err, domainwf.ErrDuplicateClaim):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "DUPLICATE_CLAIM"})
	case errors.Is(err, domainwf.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "INVALID_TRANSITION"})
	case errors.Is(err, domainwf.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "CONFLICT"})
	default:
		logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "PERSISTENCE_ERROR"})
	}
}
