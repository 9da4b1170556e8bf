package company

import "go-timeclock/internal/user"

type CreateCompanyRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	AdminUsername string `json:"admin_username" binding:"required,min=3,max=100"`
	AdminEmail    string `json:"admin_email" binding:"required,email"`
	AdminPassword string `json:"admin_password" binding:"required"`
	Timezone      string `json:"timezone"`
}

// RegisterCompanyRequest is the self-service payload.
type RegisterCompanyRequest struct {
	CompanyName   string `json:"company_name" binding:"required,max=200"`
	AdminUsername string `json:"admin_username" binding:"required,min=3,max=100"`
	AdminEmail    string `json:"admin_email" binding:"required,email"`
	AdminPassword string `json:"admin_password" binding:"required"`
	Timezone      string `json:"timezone"`
}

type UpdateSettingsRequest struct {
	Timezone string `json:"timezone"`
}

type CompanyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"owner_id"`
	Timezone  string `json:"timezone,omitempty"`
	CreatedAt string `json:"created_at"`
}

type CompanySummaryResponse struct {
	CompanyResponse
	AdminCount    int64 `json:"admin_count"`
	UserCount     int64 `json:"user_count"`
	EmployeeCount int64 `json:"employee_count"`
}

type CreateCompanyResponse struct {
	Message string            `json:"message"`
	Company CompanyResponse   `json:"company"`
	Admin   user.UserResponse `json:"admin_user"`
}
