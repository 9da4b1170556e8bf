package user

import (
	"context"
	"errors"
	"strings"

	"go-timeclock/internal/credential"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/shared/dbutil"
	"go-timeclock/internal/tenant"
	usererrors "go-timeclock/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock

type Service interface {
	List(ctx context.Context, p tenant.Principal) ([]UserResponse, error)
	Create(ctx context.Context, p tenant.Principal, req CreateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, p tenant.Principal, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	hasher credential.PasswordHasher
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, hasher credential.PasswordHasher, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, hasher: hasher, logger: l}
}

func (s *service) List(ctx context.Context, p tenant.Principal) ([]UserResponse, error) {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.FindAllByCompany(ctx, admin.CompanyID)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = MapToResponse(u)
	}
	return resp, nil
}

func (s *service) Create(ctx context.Context, p tenant.Principal, req CreateUserRequest) (UserResponse, error) {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return UserResponse{}, err
	}

	l := contextutil.GetLogger(ctx, s.logger)

	role := tenant.Role(req.Role)
	if req.Role == "" {
		role = tenant.RoleUser
	}
	if !role.Valid() {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	var created *User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := Provision(ctx, s.repo.WithTx(tx), s.hasher, admin.CompanyID, req.Username, req.Email, req.Password, role)
		if err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			l.Error("failed to create user", zap.Error(err))
		}
		return UserResponse{}, err
	}

	l.Info("user created",
		zap.String("user_id", created.ID),
		zap.String("username", created.Username),
		zap.String("role", created.Role),
	)
	return MapToResponse(*created), nil
}

func (s *service) Delete(ctx context.Context, p tenant.Principal, id string) error {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return err
	}

	if id == admin.ID {
		return usererrors.ErrCannotDeleteSelf
	}

	if err := s.repo.Delete(ctx, admin.CompanyID, id); err != nil {
		return mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("user deleted", zap.String("user_id", id))
	return nil
}

// Provision checks the username and inserts a new account through repo.
// Pass a transaction-bound repo to make both steps atomic.
func Provision(
	ctx context.Context,
	repo Repository,
	hasher credential.PasswordHasher,
	companyID, username, email, password string,
	role tenant.Role,
) (*User, error) {
	username = strings.TrimSpace(username)

	exists, err := repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, usererrors.ErrDuplicateUsername
	}

	digest, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: digest,
		Role:         string(role),
		CompanyID:    companyID,
	}
	if err := repo.Create(ctx, u); err != nil {
		return nil, mapRepositoryError(err)
	}
	return u, nil
}

func MapToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	if dbutil.IsUniqueViolation(err, "uq_user_username", "users.username") {
		return usererrors.ErrDuplicateUsername
	}
	return err
}
