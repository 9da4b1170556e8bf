package attendance

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
	timeGroup := r.Group("/time")
	timeGroup.Use(auth, middleware.ContextLogger(logger))
	{
		timeGroup.POST("/scan",
			middleware.RequireScoped(),
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceScan, rbac.ActionCreate),
			handler.Scan,
		)
	}

	entries := timeGroup.Group("/entries")
	entries.Use(middleware.RequireAdmin())
	{
		entries.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceTimeEntry, rbac.ActionList),
			handler.ListEntries,
		)

		entries.GET("/report.pdf",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceTimeEntry, rbac.ActionExport),
			handler.Report,
		)

		entries.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceTimeEntry, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.CreateEntry,
		)

		entries.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceTimeEntry, rbac.ActionDelete),
			handler.DeleteEntry,
		)
	}
}
