package events

import "time"

const EmployeeTopic = "timeclock.employee.v1"

const (
	EmployeeCreated = "employee.created"
	EmployeeUpdated = "employee.updated"
	EmployeeDeleted = "employee.deleted"
)

type EmployeeEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	Number     string    `json:"number"`
	OccurredAt time.Time `json:"occurred_at"`
}
