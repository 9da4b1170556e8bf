package employee

import (
	"time"
)

type Employee struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	Surname   string    `gorm:"column:surname;type:varchar(100);not null"`
	Position  string    `gorm:"column:position;type:varchar(100)"`
	Number    string    `gorm:"column:number;type:varchar(50);not null"`
	QRPayload string    `gorm:"column:qr_payload;type:varchar(255);not null"`
	QRImage   string    `gorm:"column:qr_image;type:text"`
	CompanyID string    `gorm:"column:company_id;type:varchar(36);not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

// FullName is the display name used on scan responses and reports.
func (e Employee) FullName() string {
	return e.Name + " " + e.Surname
}
