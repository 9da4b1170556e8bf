package auth

import (
	"go-timeclock/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	rdb redis.UniversalClient,
	logger *zap.Logger,
) {
	group := r.Group("/auth")
	{
		group.POST("/login",
			middleware.ContextLogger(logger),
			middleware.RateLimitByIP(0.08, 5),
			handler.Login,
		)

		group.POST("/register-company",
			middleware.ContextLogger(logger),
			middleware.RateLimitByIP(0.08, 5),
			middleware.Idempotency(rdb),
			handler.RegisterCompany,
		)

		group.GET("/me",
			auth,
			middleware.ContextLogger(logger),
			middleware.RateLimitByUser(2, 5),
			handler.Me,
		)
	}
}
