package middleware

import (
	"context"
	"strings"

	autherrors "go-timeclock/internal/auth/errors"
	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/shared/response"
	"go-timeclock/internal/tenant"

	"github.com/gin-gonic/gin"
)

const (
	ContextPrincipal = "principal"
	ContextUserID    = "user_id"
	ContextCompanyID = "company_id"
	ContextRole      = "role"

	AccessTokenCookie = "access_token"
)

type PrincipalResolver interface {
	Resolve(ctx context.Context, token string) (tenant.Principal, error)
}

// AuthMiddleware resolves the bearer token (or access_token cookie) into a
// Principal and stores it on both the gin and the request context.
func AuthMiddleware(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		tokenString = strings.TrimSpace(tokenString)

		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.AbortWithError(c, autherrors.ErrTokenMissing)
			return
		}

		p, err := resolver.Resolve(c.Request.Context(), tokenString)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		ctx := tenant.WithPrincipal(c.Request.Context(), p)
		ctx = contextutil.WithUserID(ctx, p.PrincipalID())

		c.Set(ContextPrincipal, p)
		c.Set(ContextUserID, p.PrincipalID())
		c.Set(ContextRole, tenant.SubjectOf(p))
		if sp, ok := p.(tenant.ScopedPrincipal); ok {
			c.Set(ContextCompanyID, sp.CompanyID)
			ctx = contextutil.WithCompanyID(ctx, sp.CompanyID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func RequireOwner() gin.HandlerFunc {
	return requirePrincipal(func(p tenant.Principal) error {
		_, err := tenant.RequireOwner(p)
		return err
	})
}

func RequireScoped() gin.HandlerFunc {
	return requirePrincipal(func(p tenant.Principal) error {
		_, err := tenant.RequireScoped(p)
		return err
	})
}

func RequireAdmin() gin.HandlerFunc {
	return requirePrincipal(func(p tenant.Principal) error {
		_, err := tenant.RequireAdmin(p)
		return err
	})
}

func requirePrincipal(gate func(tenant.Principal) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := CurrentPrincipal(c)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}
		if err := gate(p); err != nil {
			response.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
