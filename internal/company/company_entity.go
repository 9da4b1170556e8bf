package company

import (
	"time"
)

// SystemOwnerID marks companies created through self-registration.
const SystemOwnerID = "system"

type Company struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(200);not null"`
	OwnerID   string    `gorm:"column:owner_id;type:varchar(36);not null"`
	Timezone  *string   `gorm:"column:timezone;type:varchar(64)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Company) TableName() string {
	return "companies"
}

// CompanyWithCounts is a listing row for the owner console.
type CompanyWithCounts struct {
	Company
	AdminCount    int64 `gorm:"column:admin_count"`
	UserCount     int64 `gorm:"column:user_count"`
	EmployeeCount int64 `gorm:"column:employee_count"`
}
