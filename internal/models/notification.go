package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is an in-app message delivered to a user.
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Type      string         `gorm:"index;not null" json:"type"`
	Title     string         `gorm:"not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	ReturnID  *uint          `gorm:"index" json:"return_id,omitempty"`
	OrderID   *uint          `gorm:"index" json:"order_id,omitempty"`
	ReadAt    *time.Time     `gorm:"index" json:"read_at"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Notification) TableName() string {
	return "notifications"
}
