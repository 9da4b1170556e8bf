package user

import (
	"time"
)

type User struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Username     string    `gorm:"column:username;type:varchar(100);not null"`
	Email        string    `gorm:"column:email;type:varchar(255);not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         string    `gorm:"column:role;type:varchar(16);not null"`
	CompanyID    string    `gorm:"column:company_id;type:varchar(36);not null;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
