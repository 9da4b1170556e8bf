package employee

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Surname  string `json:"surname" binding:"required,max=100"`
	Position string `json:"position" binding:"max=100"`
	Number   string `json:"number" binding:"max=50"`
}

// UpdateEmployeeRequest is a partial update; nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Surname  *string `json:"surname" binding:"omitempty,min=1,max=100"`
	Position *string `json:"position" binding:"omitempty,max=100"`
	Number   *string `json:"number" binding:"omitempty,min=1,max=50"`
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Position  string `json:"position"`
	Number    string `json:"number"`
	QRPayload string `json:"qr_payload"`
	QRCode    string `json:"qr_code"`
	CompanyID string `json:"company_id"`
	CreatedAt string `json:"created_at"`
}
