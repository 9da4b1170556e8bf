package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-timeclock/internal/auth/errors"
	"go-timeclock/internal/company"
	"go-timeclock/internal/credential"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Me(ctx context.Context, p tenant.Principal) (PrincipalInfo, error)
	RegisterCompany(ctx context.Context, req company.RegisterCompanyRequest) (RegisterCompanyResponse, error)
	EnsureOwner(ctx context.Context, username, email, password string) (bool, error)
}

type service struct {
	repo      Repository
	companies company.Service
	tokens    credential.TokenService
	hasher    credential.PasswordHasher
	ttl       time.Duration
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	companies company.Service,
	tokens credential.TokenService,
	hasher credential.PasswordHasher,
	ttl time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, companies: companies, tokens: tokens, hasher: hasher, ttl: ttl, logger: l}
}

// Login checks owners first and falls back to company users.
func (s *service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	username := strings.TrimSpace(req.Username)

	owner, err := s.repo.OwnerByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("owner lookup failed", zap.Error(err))
		return TokenResponse{}, internalError(err)
	}
	if owner != nil && s.hasher.Verify(req.Password, owner.PasswordHash) {
		return s.issue(credential.Claims{Subject: owner.Username, Kind: credential.KindOwner}, PrincipalInfo{
			ID:       owner.ID,
			Username: owner.Username,
			Email:    owner.Email,
			Type:     TypeOwner,
		})
	}

	u, err := s.repo.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, autherrors.ErrInvalidCredentials
		}
		l.Error("user lookup failed", zap.Error(err))
		return TokenResponse{}, internalError(err)
	}
	if !s.hasher.Verify(req.Password, u.PasswordHash) {
		l.Info("login rejected", zap.String("username", username))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issue(credential.Claims{
		Subject:   u.Username,
		Kind:      credential.KindScoped,
		CompanyID: u.CompanyID,
		Role:      u.Role,
	}, PrincipalInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Type:      TypeUser,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	})
}

func (s *service) Me(ctx context.Context, p tenant.Principal) (PrincipalInfo, error) {
	switch v := p.(type) {
	case tenant.OwnerPrincipal:
		return PrincipalInfo{ID: v.ID, Username: v.Username, Email: v.Email, Type: TypeOwner}, nil
	case tenant.ScopedPrincipal:
		return PrincipalInfo{
			ID:        v.ID,
			Username:  v.Username,
			Email:     v.Email,
			Type:      TypeUser,
			Role:      string(v.Role),
			CompanyID: v.CompanyID,
		}, nil
	default:
		return PrincipalInfo{}, autherrors.ErrTokenMissing
	}
}

// RegisterCompany provisions a company with its admin and signs the admin in.
func (s *service) RegisterCompany(ctx context.Context, req company.RegisterCompanyRequest) (RegisterCompanyResponse, error) {
	created, err := s.companies.Register(ctx, req)
	if err != nil {
		return RegisterCompanyResponse{}, err
	}

	admin := created.Admin
	token, err := s.issue(credential.Claims{
		Subject:   admin.Username,
		Kind:      credential.KindScoped,
		CompanyID: admin.CompanyID,
		Role:      admin.Role,
	}, PrincipalInfo{
		ID:        admin.ID,
		Username:  admin.Username,
		Email:     admin.Email,
		Type:      TypeUser,
		Role:      admin.Role,
		CompanyID: admin.CompanyID,
	})
	if err != nil {
		return RegisterCompanyResponse{}, err
	}

	return RegisterCompanyResponse{TokenResponse: token, Company: created.Company}, nil
}

// EnsureOwner creates the owner account unless one with that username
// already exists. It reports whether a row was inserted.
func (s *service) EnsureOwner(ctx context.Context, username, email, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, apperror.RequiredField("Username")
	}
	if password == "" {
		return false, apperror.RequiredField("Password")
	}

	exists, err := s.repo.ExistsOwner(ctx, username)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}

	o := &Owner{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: digest,
	}
	if err := s.repo.CreateOwner(ctx, o); err != nil {
		return false, err
	}

	s.logger.Info("owner account created", zap.String("username", username))
	return true, nil
}

func (s *service) issue(claims credential.Claims, info PrincipalInfo) (TokenResponse, error) {
	token, err := s.tokens.Sign(claims, s.ttl)
	if err != nil {
		s.logger.Error("failed to sign token", zap.String("subject", claims.Subject), zap.Error(err))
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}
	return TokenResponse{
		AccessToken: token,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   int64(s.ttl / time.Second),
		User:        info,
	}, nil
}

func internalError(err error) error {
	return apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, apperror.ErrInternal.HTTPStatus)
}
