package company

import (
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	auth gin.HandlerFunc,
	rdb redis.UniversalClient,
	logger *zap.Logger,
) {
	owner := r.Group("/owner/companies")
	owner.Use(auth, middleware.ContextLogger(logger), middleware.RequireOwner())
	{
		owner.GET("",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionList),
			handler.List,
		)

		owner.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		owner.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionDelete),
			handler.Delete,
		)
	}

	company := r.Group("/company")
	company.Use(auth, middleware.ContextLogger(logger), middleware.RequireScoped())
	{
		company.GET("/info",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompany, rbac.ActionRead),
			handler.Info,
		)

		company.PUT("/settings",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, rbac.ResourceCompanySetting, rbac.ActionUpdate),
			handler.UpdateSettings,
		)
	}
}
