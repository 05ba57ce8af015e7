package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	domainwf "github.com/cmcs-dev/claim-workflow/internal/domain/workflow"
	"github.com/cmcs-dev/claim-workflow/internal/repository"
	"github.com/cmcs-dev/claim-workflow/internal/workflow"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClaimHandler exposes the claim workflow over HTTP
type ClaimHandler struct {
	engine    *workflow.Engine
	gateway   *workflow.Gateway
	claims    *repository.ClaimRepository
	approvals *repository.ApprovalRepository
	logger    *zap.Logger
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(
	engine *workflow.Engine,
	gateway *workflow.Gateway,
	claims *repository.ClaimRepository,
	approvals *repository.ApprovalRepository,
	logger *zap.Logger,
) *ClaimHandler {
	return &ClaimHandler{
		engine:    engine,
		gateway:   gateway,
		claims:    claims,
		approvals: approvals,
		logger:    logger,
	}
}

// SubmitRequest is the payload for creating a claim
type SubmitRequest struct {
	MonthWorked     int     `json:"month_worked"`
	YearWorked      int     `json:"year_worked"`
	HoursWorked     float64 `json:"hours_worked"`
	HourlyRate      float64 `json:"hourly_rate"`
	ModuleTaught    string  `json:"module_taught"`
	AdditionalNotes string  `json:"additional_notes"`
}

// Submit creates a new claim at PENDING for the acting lecturer
func (h *ClaimHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": "VALIDATION_ERROR"})
		return
	}

	actor := actorFrom(c)
	claim := &entity.Claim{
		LecturerID:      actor.ID,
		MonthWorked:     req.MonthWorked,
		YearWorked:      req.YearWorked,
		HoursWorked:     req.HoursWorked,
		HourlyRate:      req.HourlyRate,
		ModuleTaught:    strings.TrimSpace(req.ModuleTaught),
		AdditionalNotes: strings.TrimSpace(req.AdditionalNotes),
	}

	if err := workflow.ValidateSubmission(claim); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.gateway.CreateClaim(c.Request.Context(), claim); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, claim)
}

// Get returns a claim with its approval ledger
func (h *ClaimHandler) Get(c *gin.Context) {
	claim, ok := h.loadClaim(c)
	if !ok {
		return
	}

	entries, err := h.approvals.ListByClaim(claim.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": claim, "approvals": entries})
}

// List returns active claims, optionally filtered by status and lecturer
func (h *ClaimHandler) List(c *gin.Context) {
	var filter repository.ListFilter

	if status := c.Query("status"); status != "" {
		state := domainwf.State(status)
		if !state.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter", "code": "VALIDATION_ERROR"})
			return
		}
		filter.Status = state
	}
	if lecturer := c.Query("lecturer_id"); lecturer != "" {
		id, err := strconv.ParseInt(lecturer, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lecturer_id filter", "code": "VALIDATION_ERROR"})
			return
		}
		filter.LecturerID = id
	}

	claims, err := h.claims.List(filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": claims, "count": len(claims)})
}

// Withdraw soft-deletes the acting lecturer's own pending claim
func (h *ClaimHandler) Withdraw(c *gin.Context) {
	id, ok := claimID(c)
	if !ok {
		return
	}

	actor := actorFrom(c)
	if err := h.gateway.Deactivate(c.Request.Context(), id, actor.ID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReviewRequest carries the optional free text of a review action
type ReviewRequest struct {
	Comment string `json:"comment"`
	Reason  string `json:"reason"`
	Request string `json:"request"`
}

// Approve runs the approve transition at the actor's stage
func (h *ClaimHandler) Approve(c *gin.Context) {
	h.review(c, func(claim *entity.Claim, actor workflow.Actor, req ReviewRequest) (*workflow.Decision, error) {
		return h.engine.Approve(claim, actor, req.Comment)
	})
}

// Reject runs the reject transition; a reason is mandatory
func (h *ClaimHandler) Reject(c *gin.Context) {
	h.review(c, func(claim *entity.Claim, actor workflow.Actor, req ReviewRequest) (*workflow.Decision, error) {
		return h.engine.Reject(claim, actor, req.Reason)
	})
}

// RequestClarification appends a clarification entry without moving the claim
func (h *ClaimHandler) RequestClarification(c *gin.Context) {
	h.review(c, func(claim *entity.Claim, actor workflow.Actor, req ReviewRequest) (*workflow.Decision, error) {
		return h.engine.RequestClarification(claim, actor, req.Request)
	})
}

// MarkPaid runs the final payment transition
func (h *ClaimHandler) MarkPaid(c *gin.Context) {
	h.review(c, func(claim *entity.Claim, actor workflow.Actor, _ ReviewRequest) (*workflow.Decision, error) {
		return h.engine.MarkPaid(claim, actor)
	})
}

// BatchPayRequest names the claims HR wants to settle together
type BatchPayRequest struct {
	ClaimIDs []int64 `json:"claim_ids"`
}

// BatchPayResult reports the outcome per claim
type BatchPayResult struct {
	Paid    []string `json:"paid"`
	Skipped []int64  `json:"skipped"`
}

// MarkPaidBatch settles several claims; claims not in a payable state are
// skipped rather than failing the batch
func (h *ClaimHandler) MarkPaidBatch(c *gin.Context) {
	var req BatchPayRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ClaimIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "claim_ids is required", "code": "VALIDATION_ERROR"})
		return
	}

	actor := actorFrom(c)
	result := BatchPayResult{Paid: []string{}, Skipped: []int64{}}

	for _, id := range req.ClaimIDs {
		claim, err := h.claims.GetByID(id)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}

		decision, err := h.engine.MarkPaid(claim, actor)
		if err == nil {
			err = h.gateway.Commit(c.Request.Context(), decision)
		}
		switch {
		case err == nil:
			result.Paid = append(result.Paid, claim.ClaimReference)
		case errors.Is(err, domainwf.ErrNotFound),
			errors.Is(err, domainwf.ErrInvalidTransition),
			errors.Is(err, domainwf.ErrConflict):
			result.Skipped = append(result.Skipped, id)
		default:
			respondError(c, h.logger, err)
			return
		}
	}

	c.JSON(http.StatusOK, result)
}

type reviewFunc func(*entity.Claim, workflow.Actor, ReviewRequest) (*workflow.Decision, error)

// review is the shared path of all transition endpoints: load the claim
// snapshot, let the engine decide, commit the decision, return the
// refreshed claim.
func (h *ClaimHandler) review(c *gin.Context, decide reviewFunc) {
	id, ok := claimID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": "VALIDATION_ERROR"})
			return
		}
	}

	claim, err := h.claims.GetByID(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	decision, err := decide(claim, actorFrom(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.gateway.Commit(c.Request.Context(), decision); err != nil {
		respondError(c, h.logger, err)
		return
	}

	updated, err := h.claims.GetByID(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"claim": updated, "approval": decision.Entry})
}

func (h *ClaimHandler) loadClaim(c *gin.Context) (*entity.Claim, bool) {
	id, ok := claimID(c)
	if !ok {
		return nil, false
	}

	claim, err := h.claims.GetByID(id)
	if err != nil {
		respondError(c, h.logger, err)
		return nil, false
	}
	if claim == nil || !claim.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "claim not found", "code": "NOT_FOUND"})
		return nil, false
	}
	return claim, true
}

func claimID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid claim id", "code": "VALIDATION_ERROR"})
		return 0, false
	}
	return id, true
}
