package models

import (
	"time"

	"gorm.io/gorm"
)

// Refund is the money movement produced by a resolved return.
// Rows are written once with a terminal status and never updated.
type Refund struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderID     uint           `gorm:"index;not null" json:"order_id"`
	ReturnID    uint           `gorm:"index;not null" json:"return_id"`
	BuyerID     uint           `gorm:"index;not null" json:"buyer_id"`
	SellerID    uint           `gorm:"index;not null" json:"seller_id"`
	RequesterID uint           `gorm:"index;not null" json:"requester_id"`
	Amount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`
	Currency    string         `gorm:"not null" json:"currency"`
	Reason      string         `gorm:"type:text" json:"reason,omitempty"`
	Status      string         `gorm:"index;not null" json:"status"`
	CompletedAt *time.Time     `gorm:"index" json:"completed_at"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Refund) TableName() string {
	return "refunds"
}
