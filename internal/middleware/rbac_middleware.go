package middleware

import (
	"go-timeclock/internal/domain"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/response"
	"go-timeclock/internal/tenant"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := CurrentPrincipal(c)
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Subject:  tenant.SubjectOf(p),
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.AbortWithError(c, apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, apperror.ErrInternal.HTTPStatus))
			return
		}

		if !allowed {
			response.AbortWithError(c, apperror.ErrForbidden.WithDetails(gin.H{"required": resource + ":" + action}))
			return
		}
		c.Next()
	}
}
