package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/pkg/middleware/requestid"
)

// Audit logs moderation actions once the handler has run. Handlers redirect
// after every attempt, so the outcome is read from the errors they attach.
func Audit(logger *zap.Logger, action, resource string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		fields := []zap.Field{
			zap.String("action", action),
			zap.String("resource", resource),
			zap.String("resource_id", c.Param("id")),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.GetHeader("User-Agent")),
			zap.String("request_id", requestid.Value(c)),
		}
		if state := SessionFrom(c); state.SignedIn() {
			fields = append(fields, zap.String("user_id", state.Data.User.ID))
		}
		if len(c.Errors) > 0 {
			logger.Warn("admin action failed", append(fields, zap.String("error", c.Errors.Last().Error()))...)
			return
		}
		logger.Info("admin action", fields...)
	}
}
