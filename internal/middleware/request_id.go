package middleware

import (
	"go-timeclock/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader  = "X-Request-ID"
	ContextRequestID = "request_id"

	maxRequestIDLen = 128
)

// RequestID adopts the caller's X-Request-ID when it is printable ASCII of
// sane length and mints a UUID otherwise. The id is echoed on the response
// and travels on the request context into loggers and outbox events.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextRequestID, ensureRequestID(c))
		c.Next()
	}
}

// ensureRequestID returns the id already on the request context, or assigns one.
func ensureRequestID(c *gin.Context) string {
	if rid := contextutil.GetRequestID(c.Request.Context()); rid != "" {
		return rid
	}

	rid := c.GetHeader(RequestIDHeader)
	if !validRequestID(rid) {
		rid = uuid.NewString()
	}
	c.Header(RequestIDHeader, rid)
	c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))
	return rid
}

func validRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(rid); i++ {
		if rid[i] < '!' || rid[i] > '~' {
			return false
		}
	}
	return true
}
