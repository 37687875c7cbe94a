package service

import "errors"

// Return workflow errors.
var (
	ErrReturnNotFound         = errors.New("return request not found")
	ErrReturnNotPending       = errors.New("return request is not pending")
	ErrReturnNotApproved      = errors.New("return request is not approved")
	ErrReturnAlreadyResolved  = errors.New("return request already resolved by another actor")
	ErrReturnNotAllowed       = errors.New("return request not allowed for this order")
	ErrReturnWindowClosed     = errors.New("return filing window closed")
	ErrReturnAlreadyOpen      = errors.New("order already has an open return request")
	ErrReturnCancelNotAllowed = errors.New("return request can no longer be cancelled")
	ErrReturnForbidden        = errors.New("no permission to act on this return request")
	ErrReasonRequired         = errors.New("return reason required")
	ErrDecisionInvalid        = errors.New("unknown resolution decision")
)

// Refund errors.
var (
	ErrRefundNotFound       = errors.New("refund not found")
	ErrRefundAmountRequired = errors.New("refund amount required for partial refund")
	ErrRefundAmountInvalid  = errors.New("refund amount must be positive and at most the order total")
)

// Tracking errors.
var (
	ErrTrackingNotAllowed = errors.New("tracking can only be added to an approved return")
	ErrTrackingInvalid    = errors.New("tracking number required")
	ErrCarrierUnknown     = errors.New("unknown carrier code")
)

// Order errors.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotReturnable = errors.New("order status does not allow returns")
)

// Account errors.
var (
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrPasswordTooWeak     = errors.New("password does not meet requirements")
	ErrCaptchaInvalid      = errors.New("captcha verification failed")
	ErrSellerProfileNotSet = errors.New("seller has not configured a return address")
)
