package tenant_test

import (
	"context"
	"errors"
	"testing"
	"time"

	autherrors "go-timeclock/internal/auth/errors"
	"go-timeclock/internal/credential"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/tenant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDirectory struct {
	findOwnerFn func(ctx context.Context, username string) (tenant.Identity, error)
	findUserFn  func(ctx context.Context, username, companyID string) (tenant.Identity, error)
}

func (f *fakeDirectory) FindOwnerByUsername(ctx context.Context, username string) (tenant.Identity, error) {
	return f.findOwnerFn(ctx, username)
}

func (f *fakeDirectory) FindUserByUsername(ctx context.Context, username, companyID string) (tenant.Identity, error) {
	return f.findUserFn(ctx, username, companyID)
}

func newTokens(t *testing.T) credential.TokenService {
	t.Helper()
	svc, err := credential.NewTokenService([]byte("secret"), "test")
	require.NoError(t, err)
	return svc
}

func sign(t *testing.T, svc credential.TokenService, c credential.Claims) string {
	t.Helper()
	token, err := svc.Sign(c, time.Hour)
	require.NoError(t, err)
	return token
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	tokens := newTokens(t)

	dir := &fakeDirectory{
		findOwnerFn: func(ctx context.Context, username string) (tenant.Identity, error) {
			if username == "owner" {
				return tenant.Identity{ID: "o1", Username: "owner", Email: "owner@system.com"}, nil
			}
			return tenant.Identity{}, gorm.ErrRecordNotFound
		},
		findUserFn: func(ctx context.Context, username, companyID string) (tenant.Identity, error) {
			if username == "alice" && companyID == "c1" {
				return tenant.Identity{ID: "u1", Username: "alice", CompanyID: "c1", Role: "admin"}, nil
			}
			if username == "broken" {
				return tenant.Identity{}, errors.New("connection reset")
			}
			return tenant.Identity{}, gorm.ErrRecordNotFound
		},
	}
	resolver := tenant.NewResolver(tokens, dir)

	t.Run("owner", func(t *testing.T) {
		p, err := resolver.Resolve(ctx, sign(t, tokens, credential.Claims{Subject: "owner", Kind: credential.KindOwner}))
		require.NoError(t, err)

		owner, err := tenant.RequireOwner(p)
		require.NoError(t, err)
		assert.Equal(t, "o1", owner.ID)
	})

	t.Run("scoped role comes from the store", func(t *testing.T) {
		token := sign(t, tokens, credential.Claims{Subject: "alice", Kind: credential.KindScoped, CompanyID: "c1", Role: "user"})

		p, err := resolver.Resolve(ctx, token)
		require.NoError(t, err)

		sp, err := tenant.RequireAdmin(p)
		require.NoError(t, err)
		assert.Equal(t, "c1", sp.CompanyID)
	})

	t.Run("deleted owner", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, sign(t, tokens, credential.Claims{Subject: "ghost", Kind: credential.KindOwner}))
		assert.ErrorIs(t, err, autherrors.ErrUnknownPrincipal)
	})

	t.Run("user moved to another company", func(t *testing.T) {
		token := sign(t, tokens, credential.Claims{Subject: "alice", Kind: credential.KindScoped, CompanyID: "c2", Role: "admin"})

		_, err := resolver.Resolve(ctx, token)
		assert.ErrorIs(t, err, autherrors.ErrUnknownPrincipal)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "garbage")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		token := sign(t, tokens, credential.Claims{Subject: "broken", Kind: credential.KindScoped, CompanyID: "c1"})

		_, err := resolver.Resolve(ctx, token)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeInternalError, apperror.ToHTTP(err).Code)
	})
}

func TestPrincipalContext(t *testing.T) {
	_, ok := tenant.FromContext(context.Background())
	assert.False(t, ok)

	ctx := tenant.WithPrincipal(context.Background(), tenant.OwnerPrincipal{ID: "o1"})
	p, ok := tenant.FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "o1", p.PrincipalID())
}
