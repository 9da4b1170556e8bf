package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Kind string

const (
	KindOwner  Kind = "owner"
	KindScoped Kind = "scoped"
)

var (
	ErrInvalidToken = errors.New("credential: invalid token")
	ErrEmptySecret  = errors.New("credential: empty signing secret")
)

// Claims is the identity carried by a bearer token. CompanyID and Role are
// only set for scoped principals.
type Claims struct {
	Subject   string
	Kind      Kind
	CompanyID string
	Role      string
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Kind      Kind   `json:"type"`
	CompanyID string `json:"company_id,omitempty"`
	Role      string `json:"role,omitempty"`
}

type TokenService interface {
	Sign(claims Claims, ttl time.Duration) (string, error)
	Verify(token string) (Claims, error)
}

type jwtService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

type TokenOption func(*jwtService)

// WithTokenClock overrides the time source used for iat/exp.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(s *jwtService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewTokenService(secret []byte, issuer string, opts ...TokenOption) (TokenService, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	s := &jwtService{secret: secret, issuer: issuer, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *jwtService) Sign(claims Claims, ttl time.Duration) (string, error) {
	if claims.Subject == "" {
		return "", fmt.Errorf("credential: subject is required")
	}
	switch claims.Kind {
	case KindOwner:
		claims.CompanyID, claims.Role = "", ""
	case KindScoped:
		if claims.CompanyID == "" {
			return "", fmt.Errorf("credential: scoped token needs a company id")
		}
	default:
		return "", fmt.Errorf("credential: unknown principal kind %q", claims.Kind)
	}

	now := s.now()
	tc := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Kind:      claims.Kind,
		CompanyID: claims.CompanyID,
		Role:      claims.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	return token.SignedString(s.secret)
}

// Verify checks signature, algorithm and expiry. Every failure is reported as
// ErrInvalidToken wrapping the parser error.
func (s *jwtService) Verify(tokenString string) (Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	tc, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || tc.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	switch tc.Kind {
	case KindOwner, KindScoped:
	default:
		return Claims{}, fmt.Errorf("%w: unknown principal kind", ErrInvalidToken)
	}

	return Claims{
		Subject:   tc.Subject,
		Kind:      tc.Kind,
		CompanyID: tc.CompanyID,
		Role:      tc.Role,
	}, nil
}
