package app

import (
	"net/http"

	"go-timeclock/internal/attendance"
	"go-timeclock/internal/auth"
	"go-timeclock/internal/company"
	"go-timeclock/internal/employee"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/qrcode"
	"go-timeclock/internal/rbac"
	"go-timeclock/internal/rbac/infra"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/counter"
	"go-timeclock/internal/shared/keylock"
	"go-timeclock/internal/shared/response"
	"go-timeclock/internal/tenant"
	"go-timeclock/internal/user"

	"github.com/gin-gonic/gin"
)

const (
	qrBoxSize = 10
	qrBorder  = 4
)

func registerModules(router *gin.Engine, deps *Dependencies) (auth.Service, error) {
	db, rdb, logger := deps.DB, deps.Redis, deps.Logger

	// --- Repositories ---
	authRepo := auth.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	companyRepo := company.NewRepository(db)
	counterRepo := counter.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	userRepo := user.NewRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	if err := rbac.LoadDefaultPolicy(enforcer); err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Tenancy ---
	resolver := tenant.NewResolver(deps.Tokens, authRepo, logger)
	authMiddleware := middleware.AuthMiddleware(resolver)

	// --- Services ---
	companyService := company.NewService(db, companyRepo, userRepo, deps.Hasher, rdb, deps.Audit, logger)
	authService := auth.NewService(authRepo, companyService, deps.Tokens, deps.Hasher, deps.Config.Auth.TokenTTL, logger)
	userService := user.NewService(db, userRepo, deps.Hasher, logger)
	employeeLocks := keylock.New()
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo,
		qrcode.NewRenderer(qrBoxSize, qrBorder), rdb, employeeLocks, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, outboxRepo, employeeLocks, attendance.Config{
		Now:             deps.Now,
		DefaultLocation: deps.Config.Location(),
	}, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	companyHandler := company.NewHandler(companyService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	userHandler := user.NewHandler(userService, logger)

	// --- Routes Registration ---
	api := router.Group("/api")
	api.Use(middleware.RequestID())
	{
		api.GET("/healthz", healthz(deps))

		auth.RegisterRoutes(api, authHandler, authMiddleware, rdb, logger)
		company.RegisterRoutes(api, companyHandler, rbacService, authMiddleware, rdb, logger)
		user.RegisterRoutes(api, userHandler, rbacService, authMiddleware, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, authMiddleware, rdb, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, authMiddleware, rdb, logger)
		rbac.RegisterRoutes(api, rbacHandler, authMiddleware)
	}

	router.NoRoute(func(c *gin.Context) {
		response.AbortWithError(c, apperror.ErrNotFound)
	})

	return authService, nil
}

func healthz(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	}
}
