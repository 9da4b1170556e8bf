package tenant

import (
	"context"
	"errors"

	autherrors "go-timeclock/internal/auth/errors"
	"go-timeclock/internal/credential"
	"go-timeclock/internal/shared/apperror"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Identity is the stored row a token subject resolves to.
type Identity struct {
	ID        string
	Username  string
	Email     string
	CompanyID string
	Role      string
}

// Directory finds principals by username. Missing rows are reported as
// gorm.ErrRecordNotFound.
type Directory interface {
	FindOwnerByUsername(ctx context.Context, username string) (Identity, error)
	FindUserByUsername(ctx context.Context, username, companyID string) (Identity, error)
}

type Resolver struct {
	tokens    credential.TokenService
	directory Directory
	logger    *zap.Logger
}

func NewResolver(tokens credential.TokenService, directory Directory, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("tenant.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tenant.resolver")
	}
	return &Resolver{tokens: tokens, directory: directory, logger: l}
}

// Resolve verifies token and loads the principal it names. The role of a
// scoped principal comes from the stored row, not from the token.
func (r *Resolver) Resolve(ctx context.Context, token string) (Principal, error) {
	claims, err := r.tokens.Verify(token)
	if err != nil {
		r.logger.Debug("token rejected", zap.Error(err))
		return nil, autherrors.ErrInvalidToken
	}

	switch claims.Kind {
	case credential.KindOwner:
		id, err := r.directory.FindOwnerByUsername(ctx, claims.Subject)
		if err != nil {
			return nil, r.lookupError(err, claims)
		}
		return OwnerPrincipal{ID: id.ID, Username: id.Username, Email: id.Email}, nil

	case credential.KindScoped:
		if claims.CompanyID == "" {
			return nil, autherrors.ErrInvalidToken
		}
		id, err := r.directory.FindUserByUsername(ctx, claims.Subject, claims.CompanyID)
		if err != nil {
			return nil, r.lookupError(err, claims)
		}
		role := Role(id.Role)
		if !role.Valid() {
			r.logger.Warn("stored user has unknown role",
				zap.String("username", id.Username),
				zap.String("role", id.Role),
			)
			return nil, autherrors.ErrUnknownPrincipal
		}
		return ScopedPrincipal{
			ID:        id.ID,
			Username:  id.Username,
			Email:     id.Email,
			CompanyID: id.CompanyID,
			Role:      role,
		}, nil

	default:
		return nil, autherrors.ErrInvalidToken
	}
}

func (r *Resolver) lookupError(err error, claims credential.Claims) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Info("token subject no longer exists",
			zap.String("subject", claims.Subject),
			zap.String("kind", string(claims.Kind)),
			zap.String("company_id", claims.CompanyID),
		)
		return autherrors.ErrUnknownPrincipal
	}
	r.logger.Error("principal lookup failed", zap.Error(err))
	return apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, apperror.ErrInternal.HTTPStatus)
}
