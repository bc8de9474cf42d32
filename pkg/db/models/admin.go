package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is a back-office account allowed to mutate the catalog and settings.
type Admin struct {
	ID           uuid.UUID  `gorm:"column:id;primaryKey" json:"id"`
	Username     string     `gorm:"column:username;not null;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Admin) TableName() string { return "admins" }
