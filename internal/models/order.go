package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a single-listing purchase between a buyer and a seller.
type Order struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	OrderNo      string         `gorm:"uniqueIndex;not null" json:"order_no"`
	BuyerID      uint           `gorm:"index;not null" json:"buyer_id"`
	SellerID     uint           `gorm:"index;not null" json:"seller_id"`
	ListingID    uint           `gorm:"index;not null" json:"listing_id"`
	Status       string         `gorm:"index;not null" json:"status"`
	Currency     string         `gorm:"not null" json:"currency"`
	TotalAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	RefundAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"refund_amount"`
	PaidAt       *time.Time     `gorm:"index" json:"paid_at"`
	RefundedAt   *time.Time     `gorm:"index" json:"refunded_at"`
	CompletedAt  *time.Time     `gorm:"index" json:"completed_at"`
	CanceledAt   *time.Time     `gorm:"index" json:"canceled_at"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
