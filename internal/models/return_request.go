package models

import (
	"time"

	"gorm.io/gorm"
)

// ReturnRequest is a buyer-initiated return against a paid order.
// At most one non-cancelled request exists per order.
type ReturnRequest struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	OrderID        uint           `gorm:"index;not null" json:"order_id"`
	BuyerID        uint           `gorm:"index;not null" json:"buyer_id"`
	SellerID       uint           `gorm:"index;not null" json:"seller_id"`
	Reason         string         `gorm:"type:text;not null" json:"reason"`
	Status         string         `gorm:"index;not null;default:'pending'" json:"status"`
	TrackingNumber string         `gorm:"type:varchar(128)" json:"tracking_number,omitempty"`
	RefundAmount   *Money         `gorm:"type:decimal(20,2)" json:"refund_amount,omitempty"`
	SellerNote     string         `gorm:"type:text" json:"seller_note,omitempty"`
	AdminNote      string         `gorm:"type:text" json:"admin_note,omitempty"`
	ResolvedAt     *time.Time     `gorm:"index" json:"resolved_at"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// TableName sets the table name.
func (ReturnRequest) TableName() string {
	return "return_requests"
}
