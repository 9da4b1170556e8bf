package auth

import "go-timeclock/internal/company"

const TokenTypeBearer = "bearer"

// Principal types reported to clients.
const (
	TypeOwner = "owner"
	TypeUser  = "user"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PrincipalInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Type      string `json:"type"`
	Role      string `json:"role,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
}

type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	User        PrincipalInfo `json:"user"`
}

type RegisterCompanyResponse struct {
	TokenResponse
	Company company.CompanyResponse `json:"company"`
}
