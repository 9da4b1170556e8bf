package middleware

import (
	autherrors "go-timeclock/internal/auth/errors"
	"go-timeclock/internal/tenant"

	"github.com/gin-gonic/gin"
)

// CurrentPrincipal returns the principal stored by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (tenant.Principal, error) {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(tenant.Principal); ok && p != nil {
			return p, nil
		}
	}
	if p, ok := tenant.FromContext(c.Request.Context()); ok {
		return p, nil
	}
	return nil, autherrors.ErrTokenMissing
}
