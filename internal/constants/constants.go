package constants

// Order statuses.
const (
	OrderStatusPendingPayment    = "pending_payment"
	OrderStatusPaid              = "paid"
	OrderStatusShipped           = "shipped"
	OrderStatusCompleted         = "completed"
	OrderStatusCanceled          = "canceled"
	OrderStatusRefunded          = "refunded"
	OrderStatusPartiallyRefunded = "partially_refunded"
)

// Return request statuses.
const (
	ReturnStatusPending          = "pending"
	ReturnStatusApproved         = "approved"
	ReturnStatusRejected         = "rejected"
	ReturnStatusCompleted        = "completed"
	ReturnStatusRefundedNoReturn = "refunded_no_return"
	ReturnStatusCancelled        = "cancelled"
)

// Seller decisions on a pending return.
const (
	ReturnDecisionApprove       = "approve"
	ReturnDecisionReject        = "reject"
	ReturnDecisionFullRefund    = "full_refund"
	ReturnDecisionPartialRefund = "partial_refund"
)

// Refund statuses. Refunds created by the return workflow are written as
// completed; no pending refund state is modeled.
const (
	RefundStatusCompleted = "completed"
)

// Return roles for list queries.
const (
	ReturnRoleBuyer  = "buyer"
	ReturnRoleSeller = "seller"
)

// User account statuses.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Listing statuses.
const (
	ListingStatusActive = "active"
	ListingStatusSold   = "sold"
	ListingStatusHidden = "hidden"
)

// Notification types.
const (
	NotificationTypeReturnStatus = "return_status"
	NotificationTypeRefund       = "refund"
)

// Queue names.
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// Background task types.
const (
	TaskReturnStatusNotify = "return:status_notify"
	TaskReturnStaleSweep   = "return:stale_sweep"
)
