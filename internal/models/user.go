package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a marketplace account; every user can act as buyer and seller.
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	DisplayName        string         `gorm:"default:''" json:"display_name"`
	Status             string         `gorm:"default:'active'" json:"status"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"` // bump to invalidate all tokens
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// SellerProfile carries the seller's return shipping address. Read-only for
// buyers; shown only while their return is approved.
type SellerProfile struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name         string         `gorm:"not null" json:"name"`
	AddressLine1 string         `gorm:"not null" json:"address_line1"`
	AddressLine2 string         `gorm:"default:''" json:"address_line2,omitempty"`
	City         string         `gorm:"not null" json:"city"`
	PostalCode   string         `gorm:"not null" json:"postal_code"`
	Phone        string         `gorm:"default:''" json:"phone,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (SellerProfile) TableName() string {
	return "seller_profiles"
}
