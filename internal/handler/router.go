package handler

import (
	"net/http"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter assembles the API. Route-level role gates are coarse; the
// engine still rejects actions whose stage does not match the claim state.
func NewRouter(
	claims *ClaimHandler,
	documents *DocumentHandler,
	reports *ReportHandler,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1", ActorAuth())

	reviewers := []entity.Role{
		entity.RoleProgrammeCoordinator,
		entity.RoleAcademicManager,
		entity.RoleHR,
	}

	api.POST("/claims", RequireRole(entity.RoleLecturer), claims.Submit)
	api.GET("/claims", claims.List)
	api.GET("/claims/:id", claims.Get)
	api.DELETE("/claims/:id", RequireRole(entity.RoleLecturer), claims.Withdraw)

	api.POST("/claims/:id/approve", RequireRole(reviewers...), claims.Approve)
	api.POST("/claims/:id/reject", RequireRole(reviewers...), claims.Reject)
	api.POST("/claims/:id/clarify", RequireRole(reviewers...), claims.RequestClarification)
	api.POST("/claims/:id/pay", RequireRole(entity.RoleHR), claims.MarkPaid)
	api.POST("/claims/pay", RequireRole(entity.RoleHR), claims.MarkPaidBatch)

	api.POST("/claims/:id/documents", documents.Upload)
	api.GET("/claims/:id/documents", documents.List)
	api.GET("/documents/:id/file", documents.Download)
	api.DELETE("/documents/:id", documents.Remove)

	api.GET("/reports/payments.csv", RequireRole(entity.RoleHR), reports.PaymentsCSV)
	api.GET("/reports/payments.xlsx", RequireRole(entity.RoleHR), reports.PaymentsXLSX)

	return r
}
