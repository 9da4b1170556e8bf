package user

import (
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	auth gin.HandlerFunc,
	logger *zap.Logger,
) {
	users := r.Group("/company/users")
	users.Use(auth)
	users.Use(middleware.ContextLogger(logger))
	users.Use(middleware.RequireAdmin())
	{
		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompanyUser, rbac.ActionList),
			handler.GetAll,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompanyUser, rbac.ActionCreate),
			handler.Create,
		)

		users.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompanyUser, rbac.ActionDelete),
			handler.Delete,
		)
	}
}
