package attendance

type ScanRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

type ScanResponse struct {
	Action          string   `json:"action"`
	Employee        string   `json:"employee"`
	Time            string   `json:"time"`
	Message         string   `json:"message"`
	CooldownSeconds int      `json:"cooldown_seconds"`
	EntryID         string   `json:"entry_id"`
	Status          string   `json:"status"`
	Date            string   `json:"date"`
	HoursWorked     *float64 `json:"hours_worked,omitempty"`
}

type ListEntriesRequest struct {
	DateFrom   string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	EmployeeID string `form:"employee_id"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

type ManualEntryRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required"`
	Date       string  `json:"date" binding:"required,datetime=2006-01-02"`
	CheckIn    string  `json:"check_in" binding:"required,datetime=15:04"`
	CheckOut   *string `json:"check_out" binding:"omitempty,datetime=15:04"`
}

type TimeEntryResponse struct {
	ID               string   `json:"id"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     string   `json:"employee_name"`
	EmployeeNumber   string   `json:"employee_number"`
	EmployeePosition string   `json:"employee_position"`
	Date             string   `json:"date"`
	CheckIn          string   `json:"check_in"`
	CheckOut         *string  `json:"check_out"`
	Status           string   `json:"status"`
	HoursWorked      *float64 `json:"hours_worked"`
	AutoClosed       bool     `json:"auto_closed"`
	Source           string   `json:"source"`
}

type ListEntriesResult struct {
	Items    []TimeEntryResponse
	Total    int64
	Page     int
	PageSize int
}
