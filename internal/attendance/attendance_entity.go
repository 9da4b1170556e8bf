package attendance

import (
	"time"
)

const (
	StatusWorking   = "working"
	StatusCompleted = "completed"

	SourceScan   = "scan"
	SourceManual = "manual"

	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"

	dateLayout = "2006-01-02"
)

type TimeEntry struct {
	ID           string     `gorm:"column:id;type:varchar(36);primaryKey"`
	EmployeeID   string     `gorm:"column:employee_id;type:varchar(36);not null;index"`
	CompanyID    string     `gorm:"column:company_id;type:varchar(36);not null;index"`
	CheckIn      time.Time  `gorm:"column:check_in"`
	CheckOut     *time.Time `gorm:"column:check_out"`
	Date         string     `gorm:"column:date;type:varchar(10);not null"`
	Status       string     `gorm:"column:status;type:varchar(16);not null"`
	LastScanTime time.Time  `gorm:"column:last_scan_time;not null"`
	AutoClosed   bool       `gorm:"column:auto_closed;not null;default:false"`
	Source       string     `gorm:"column:source;type:varchar(16);not null;default:scan"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// EntryRow is a time entry joined with the employee columns used by reports.
type EntryRow struct {
	TimeEntry
	EmployeeName     string `gorm:"column:employee_name"`
	EmployeeSurname  string `gorm:"column:employee_surname"`
	EmployeeNumber   string `gorm:"column:employee_number"`
	EmployeePosition string `gorm:"column:employee_position"`
}

type EmployeeRef struct {
	ID        string `gorm:"column:id;primaryKey"`
	Name      string `gorm:"column:name"`
	Surname   string `gorm:"column:surname"`
	Number    string `gorm:"column:number"`
	Position  string `gorm:"column:position"`
	CompanyID string `gorm:"column:company_id"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

func (e EmployeeRef) FullName() string {
	return e.Name + " " + e.Surname
}

type CompanyRef struct {
	ID       string  `gorm:"column:id;primaryKey"`
	Name     string  `gorm:"column:name"`
	Timezone *string `gorm:"column:timezone"`
}

func (CompanyRef) TableName() string {
	return "companies"
}
