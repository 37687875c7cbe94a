package repository

import "time"

// OrderListFilter filters order list queries.
type OrderListFilter struct {
	Page        int
	PageSize    int
	BuyerID     uint
	SellerID    uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ReturnListFilter filters return request list queries.
type ReturnListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Role        string
	OrderID     uint
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	WithOrder   bool
}

// RefundListFilter filters refund list queries.
type RefundListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Role        string
	OrderID     uint
	ReturnID    uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// NotificationListFilter filters notification list queries.
type NotificationListFilter struct {
	Page       int
	PageSize   int
	UserID     uint
	Type       string
	OnlyUnread bool
}
