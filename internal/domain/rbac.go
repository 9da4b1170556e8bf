package domain

// EnforceRequest asks whether Subject (owner, admin or user) may perform
// Action on Resource.
type EnforceRequest struct {
	Subject  string `json:"subject"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type PermissionsResponse struct {
	Subject     string       `json:"subject"`
	Permissions []Permission `json:"permissions"`
}
