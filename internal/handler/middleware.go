package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmcs-dev/claim-workflow/internal/domain/entity"
	"github.com/cmcs-dev/claim-workflow/internal/workflow"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const actorKey = "actor"

// ActorAuth extracts the acting principal from the headers set by the
// identity provider in front of this service. The principal is trusted as
// already authenticated; per-action stage authorization happens in the
// workflow engine.
func ActorAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader("X-Actor-ID"), 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid actor identity"})
			return
		}

		role := entity.Role(c.GetHeader("X-Actor-Role"))
		if !role.IsValid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid actor role"})
			return
		}

		c.Set(actorKey, workflow.Actor{ID: id, Role: role})
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. This is the coarse
// check; the engine still validates the exact stage per action.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[entity.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		actor := actorFrom(c)
		if !allowed[actor.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role not permitted for this operation"})
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) workflow.Actor {
	v, _ := c.Get(actorKey)
	actor, _ := v.(workflow.Actor)
	return actor
}

// RequestLogger logs each request with method, path, status and latency
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
