package auth

import "time"

// Owner is a platform operator. Owners are not bound to a company.
type Owner struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Username     string    `gorm:"column:username;type:varchar(100);not null"`
	Email        string    `gorm:"column:email;type:varchar(255);not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Owner) TableName() string {
	return "owners"
}
