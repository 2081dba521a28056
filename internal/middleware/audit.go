package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rite-edu-api/internal/models"
)

// AuditRecorder accepts audit entries for asynchronous persistence.
type AuditRecorder interface {
	Record(entry models.AuditLog)
}

// Audit records an audit entry after a successful request. Path parameters
// become the resource id; several are joined with "/".
func Audit(recorder AuditRecorder, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if recorder == nil || c.Writer.Status() >= 400 {
			return
		}

		entry := models.AuditLog{
			Action:    action,
			Resource:  resource,
			IPAddress: c.ClientIP(),
			CreatedAt: start,
		}
		if claims, ok := CurrentClaims(c); ok {
			entry.ActorID = claims.UserID
			entry.ActorRole = claims.Role
		}
		if len(c.Params) > 0 {
			values := make([]string, 0, len(c.Params))
			for _, p := range c.Params {
				values = append(values, p.Value)
			}
			resourceID := strings.Join(values, "/")
			entry.ResourceID = &resourceID
		}

		entry.Payload, _ = json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		recorder.Record(entry)
	}
}
