package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-timeclock/internal/auth"
	"go-timeclock/internal/bootstrap"
	"go-timeclock/internal/config"
	"go-timeclock/internal/credential"
	"go-timeclock/internal/database"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenIssuer = "timeclock"

// Dependencies are the process-wide handles shared by every module.
// Redis is nil when REDIS_ADDR is unset.
type Dependencies struct {
	Config config.Config
	DB     *gorm.DB
	Redis  redis.UniversalClient
	Tokens credential.TokenService
	Hasher credential.PasswordHasher
	Audit  bootstrap.AuditLogger
	Logger *zap.Logger
	Now    func() time.Time

	closers []func() error
}

// Close releases every connection opened by NewDependencies.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	return errors.Join(errs...)
}

// NewDependencies connects the store (migrating it when AUTO_MIGRATE is set)
// and the optional redis cache.
func NewDependencies(cfg config.Config, logger *zap.Logger) (*Dependencies, error) {
	if logger == nil {
		logger = zap.L()
	}

	db, err := connection.ConnectDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Config:  cfg,
		DB:      db,
		Hasher:  credential.NewPasswordHasher(bcrypt.DefaultCost),
		Audit:   bootstrap.NewStdoutAuditLogger(logger),
		Logger:  logger,
		Now:     time.Now,
		closers: []func() error{sqlDB.Close},
	}

	if cfg.AutoMigrate {
		if err := database.Up(sqlDB, cfg.Database.Driver); err != nil {
			_ = deps.Close()
			return nil, err
		}
		logger.Info("database migrated", zap.String("driver", cfg.Database.Driver))
	}

	if cfg.Redis.Addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, max(cfg.Database.Retries, 1))
		if err != nil {
			_ = deps.Close()
			return nil, err
		}
		deps.Redis = rdb
		deps.closers = append(deps.closers, rdb.Close)
	} else {
		logger.Warn("REDIS_ADDR not set; caching and idempotency disabled")
	}

	tokens, err := credential.NewTokenService(cfg.SigningSecret(), tokenIssuer,
		credential.WithTokenClock(func() time.Time { return deps.Now() }))
	if err != nil {
		_ = deps.Close()
		return nil, err
	}
	deps.Tokens = tokens

	return deps, nil
}

type App struct {
	Router *gin.Engine
	Auth   auth.Service
}

// BuildApp mounts every module under /api and seeds the bootstrap owner.
func BuildApp(ctx context.Context, deps *Dependencies) (*App, error) {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	apperror.Init()

	router := gin.New()
	router.Use(gin.Recovery())

	authService, err := registerModules(router, deps)
	if err != nil {
		return nil, err
	}

	owner := deps.Config.Owner
	if owner.Username != "" && owner.Password != "" {
		created, err := authService.EnsureOwner(ctx, owner.Username, owner.Email, owner.Password)
		if err != nil {
			return nil, fmt.Errorf("bootstrap owner: %w", err)
		}
		if created {
			deps.Audit.Log(ctx, bootstrap.AuditLog{
				Action:  "OWNER_BOOTSTRAPPED",
				Message: "Default owner account created",
				Meta:    map[string]any{"username": owner.Username},
			})
		}
	}

	return &App{Router: router, Auth: authService}, nil
}
