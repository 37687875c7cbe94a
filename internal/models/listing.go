package models

import (
	"time"

	"gorm.io/gorm"
)

// Listing is an item offered for sale by a user.
type Listing struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	SellerID     uint           `gorm:"index;not null" json:"seller_id"`
	Title        string         `gorm:"not null" json:"title"`
	PrimaryImage string         `gorm:"type:text" json:"primary_image"`
	PriceAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`
	Currency     string         `gorm:"not null;default:'RON'" json:"currency"`
	Status       string         `gorm:"index;not null;default:'active'" json:"status"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Listing) TableName() string {
	return "listings"
}
