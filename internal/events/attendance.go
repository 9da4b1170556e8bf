package events

import "time"

const AttendanceTopic = "timeclock.attendance.v1"

const (
	AttendanceCheckIn      = "attendance.check_in"
	AttendanceCheckOut     = "attendance.check_out"
	AttendanceAutoClosed   = "attendance.auto_closed"
	AttendanceManualEntry  = "attendance.manual_entry"
	AttendanceEntryDeleted = "attendance.entry_deleted"
)

type AttendanceRecordedEvent struct {
	EventType      string     `json:"event_type"`
	TimeEntryID    string     `json:"time_entry_id"`
	EmployeeID     string     `json:"employee_id"`
	EmployeeNumber string     `json:"employee_number"`
	CompanyID      string     `json:"company_id"`
	Date           string     `json:"date"`
	CheckIn        time.Time  `json:"check_in"`
	CheckOut       *time.Time `json:"check_out,omitempty"`
	Source         string     `json:"source"`
	RecordedBy     string     `json:"recorded_by"`
	OccurredAt     time.Time  `json:"occurred_at"`
}
