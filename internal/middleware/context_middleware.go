package middleware

import (
	"go-timeclock/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a logger carrying request_id, user_id and
// company_id to the request context. Mount it after AuthMiddleware.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := ensureRequestID(c)
		ctx := c.Request.Context()

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("user_id", c.GetString(ContextUserID)),
			zap.String("company_id", c.GetString(ContextCompanyID)),
		)

		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
