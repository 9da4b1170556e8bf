package tenant

import (
	"context"

	autherrors "go-timeclock/internal/auth/errors"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Subject names used by the RBAC policy.
const (
	SubjectOwner = "owner"
	SubjectAdmin = string(RoleAdmin)
	SubjectUser  = string(RoleUser)
)

// Principal is either an OwnerPrincipal or a ScopedPrincipal.
type Principal interface {
	principal()
	PrincipalID() string
	PrincipalUsername() string
}

type OwnerPrincipal struct {
	ID       string
	Username string
	Email    string
}

type ScopedPrincipal struct {
	ID        string
	Username  string
	Email     string
	CompanyID string
	Role      Role
}

func (OwnerPrincipal) principal()  {}
func (ScopedPrincipal) principal() {}

func (p OwnerPrincipal) PrincipalID() string        { return p.ID }
func (p OwnerPrincipal) PrincipalUsername() string  { return p.Username }
func (p ScopedPrincipal) PrincipalID() string       { return p.ID }
func (p ScopedPrincipal) PrincipalUsername() string { return p.Username }

func RequireOwner(p Principal) (OwnerPrincipal, error) {
	switch v := p.(type) {
	case OwnerPrincipal:
		return v, nil
	case ScopedPrincipal:
		return OwnerPrincipal{}, autherrors.ErrOwnerRequired
	default:
		return OwnerPrincipal{}, autherrors.ErrForbidden
	}
}

// RequireScoped accepts any company-bound principal.
func RequireScoped(p Principal) (ScopedPrincipal, error) {
	switch v := p.(type) {
	case ScopedPrincipal:
		if v.CompanyID == "" {
			return ScopedPrincipal{}, autherrors.ErrForbidden
		}
		return v, nil
	case OwnerPrincipal:
		return ScopedPrincipal{}, autherrors.ErrCompanyUserRequired
	default:
		return ScopedPrincipal{}, autherrors.ErrForbidden
	}
}

func RequireAdmin(p Principal) (ScopedPrincipal, error) {
	sp, err := RequireScoped(p)
	if err != nil {
		if p != nil {
			if _, isOwner := p.(OwnerPrincipal); isOwner {
				return ScopedPrincipal{}, autherrors.ErrAdminRequired
			}
		}
		return ScopedPrincipal{}, err
	}
	if sp.Role != RoleAdmin {
		return ScopedPrincipal{}, autherrors.ErrAdminRequired
	}
	return sp, nil
}

// SubjectOf returns the RBAC subject of p, or "" for nil.
func SubjectOf(p Principal) string {
	switch v := p.(type) {
	case OwnerPrincipal:
		return SubjectOwner
	case ScopedPrincipal:
		return string(v.Role)
	default:
		return ""
	}
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p != nil
}
