package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/cache"
	"github.com/1983adrian/adimarketplace-sub002/internal/constants"
	"github.com/1983adrian/adimarketplace-sub002/internal/logger"
	"github.com/1983adrian/adimarketplace-sub002/internal/models"
	"github.com/1983adrian/adimarketplace-sub002/internal/queue"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReturnService owns the return and refund resolution workflow.
type ReturnService struct {
	returnRepo       repository.ReturnRepository
	refundRepo       repository.RefundRepository
	orderRepo        repository.OrderRepository
	userRepo         repository.UserRepository
	queueClient      *queue.Client
	filingWindowDays int
	listCacheTTL     time.Duration
}

// NewReturnService creates a return service.
func NewReturnService(returnRepo repository.ReturnRepository, refundRepo repository.RefundRepository, orderRepo repository.OrderRepository, userRepo repository.UserRepository, queueClient *queue.Client, filingWindowDays int, listCacheTTL time.Duration) *ReturnService {
	if filingWindowDays <= 0 {
		filingWindowDays = 14
	}
	return &ReturnService{
		returnRepo:       returnRepo,
		refundRepo:       refundRepo,
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		queueClient:      queueClient,
		filingWindowDays: filingWindowDays,
		listCacheTTL:     listCacheTTL,
	}
}

// FileReturnInput is the buyer's return filing request.
type FileReturnInput struct {
	OrderID uint
	BuyerID uint
	Reason  string
}

// ResolveInput is the seller's resolution request for a pending return.
type ResolveInput struct {
	ReturnID uint
	SellerID uint
	Decision string
	Note     string
	Amount   string
}

// ListReturnsInput filters a user's return list.
type ListReturnsInput struct {
	UserID   uint
	Role     string
	Status   string
	Page     int
	PageSize int
}

// ReturnListResult is one page of return requests.
type ReturnListResult struct {
	Items []models.ReturnRequest `json:"items"`
	Total int64                  `json:"total"`
}

// SellerReturnAddress is the address the buyer ships the item back to.
type SellerReturnAddress struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Phone        string `json:"phone,omitempty"`
}

// Narrow write interfaces for the resolution sequence. The tx-bound gorm
// repositories satisfy them, and tests substitute recorders.
type refundInserter interface {
	Create(refund *models.Refund) error
}

type returnConditionalUpdater interface {
	UpdateStatusIf(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error)
}

type orderStatusUpdater interface {
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
}

// ListReturns lists returns visible to a user, serving repeat reads from
// cache until a mutation bumps the list generation.
func (s *ReturnService) ListReturns(ctx context.Context, input ListReturnsInput) (*ReturnListResult, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize <= 0 || input.PageSize > 100 {
		input.PageSize = 20
	}

	gen := cache.ReturnListGen(ctx, input.UserID, input.Role)
	key := cache.ReturnListKey(input.UserID, input.Role, input.Status, input.Page, input.PageSize, gen)
	var cached ReturnListResult
	if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	items, total, err := s.returnRepo.ListByUser(repository.ReturnListFilter{
		Page:      input.Page,
		PageSize:  input.PageSize,
		UserID:    input.UserID,
		Role:      input.Role,
		Status:    input.Status,
		WithOrder: true,
	})
	if err != nil {
		return nil, err
	}
	result := &ReturnListResult{Items: items, Total: total}

	if s.listCacheTTL > 0 {
		if err := cache.SetJSON(ctx, key, result, s.listCacheTTL); err != nil {
			logger.Warnw("return_list_cache_set_failed", "error", err)
		}
	}
	return result, nil
}

// GetReturn fetches one return visible to the acting user.
func (s *ReturnService) GetReturn(id uint, actorID uint) (*models.ReturnRequest, error) {
	ret, err := s.returnRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, ErrReturnNotFound
	}
	if actorID != 0 && ret.BuyerID != actorID && ret.SellerID != actorID {
		return nil, ErrReturnForbidden
	}
	return ret, nil
}

// FileReturn creates a pending return for a paid order within the filing
// window. One open return per order.
func (s *ReturnService) FileReturn(input FileReturnInput) (*models.ReturnRequest, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	order, err := s.orderRepo.GetByIDAndBuyer(input.OrderID, input.BuyerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	switch order.Status {
	case constants.OrderStatusPaid, constants.OrderStatusShipped, constants.OrderStatusCompleted:
	default:
		return nil, ErrOrderNotReturnable
	}

	anchor := order.CreatedAt
	if order.PaidAt != nil {
		anchor = *order.PaidAt
	}
	if time.Since(anchor) > time.Duration(s.filingWindowDays)*24*time.Hour {
		return nil, ErrReturnWindowClosed
	}

	existing, err := s.returnRepo.GetOpenByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReturnAlreadyOpen
	}

	ret := &models.ReturnRequest{
		OrderID:  order.ID,
		BuyerID:  order.BuyerID,
		SellerID: order.SellerID,
		Reason:   reason,
		Status:   constants.ReturnStatusPending,
	}
	if err := s.returnRepo.Create(ret); err != nil {
		return nil, err
	}

	logger.Infow("return_filed", "return_id", ret.ID, "order_id", order.ID, "buyer_id", order.BuyerID)
	s.afterMutation(ret, constants.ReturnStatusPending)
	return ret, nil
}

// Resolve applies one of the four seller decisions to a pending return.
func (s *ReturnService) Resolve(input ResolveInput) (*models.ReturnRequest, error) {
	ret, err := s.returnRepo.GetByID(input.ReturnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, ErrReturnNotFound
	}
	if ret.SellerID != input.SellerID {
		return nil, ErrReturnForbidden
	}
	if ret.Status != constants.ReturnStatusPending {
		return nil, ErrReturnNotPending
	}
	if ret.Order == nil {
		return nil, ErrOrderNotFound
	}

	note := strings.TrimSpace(input.Note)
	now := time.Now()

	switch input.Decision {
	case constants.ReturnDecisionApprove:
		err = s.transitionReturn(ret, constants.ReturnStatusApproved, map[string]interface{}{
			"seller_note": note,
			"updated_at":  now,
		})
	case constants.ReturnDecisionReject:
		err = s.transitionReturn(ret, constants.ReturnStatusRejected, map[string]interface{}{
			"seller_note": note,
			"resolved_at": now,
			"updated_at":  now,
		})
	case constants.ReturnDecisionFullRefund:
		err = s.refundDecision(ret, ret.Order.TotalAmount.Decimal, constants.OrderStatusRefunded, note, now)
	case constants.ReturnDecisionPartialRefund:
		amount, parseErr := parseRefundAmount(input.Amount, ret.Order.TotalAmount.Decimal)
		if parseErr != nil {
			return nil, parseErr
		}
		err = s.refundDecision(ret, amount, constants.OrderStatusPartiallyRefunded, note, now)
	default:
		return nil, ErrDecisionInvalid
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.returnRepo.GetByID(ret.ID)
	if err != nil {
		return nil, err
	}
	logger.Infow("return_resolved", "return_id", ret.ID, "decision", input.Decision, "status", updated.Status)
	s.afterMutation(updated, updated.Status)
	return updated, nil
}

// transitionReturn performs a single conditional status update out of pending.
func (s *ReturnService) transitionReturn(ret *models.ReturnRequest, toStatus string, updates map[string]interface{}) error {
	if !CanTransitionReturn(ret.Status, toStatus) {
		return ErrReturnNotPending
	}
	ok, err := s.returnRepo.UpdateStatusIf(ret.ID, ret.Status, toStatus, updates)
	if err != nil {
		return err
	}
	if !ok {
		return ErrReturnAlreadyResolved
	}
	return nil
}

// refundDecision runs the three dependent writes of a full or partial refund
// inside one transaction: refund insert, return update, order update.
func (s *ReturnService) refundDecision(ret *models.ReturnRequest, amount decimal.Decimal, orderStatus, note string, now time.Time) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		return executeRefundDecision(
			s.refundRepo.WithTx(tx),
			s.returnRepo.WithTx(tx),
			s.orderRepo.WithTx(tx),
			ret, amount, orderStatus, note, now,
		)
	})
}

// executeRefundDecision issues the refund sequence in strict order against
// the given writers. The conditional return update is the concurrency gate:
// losing it aborts the transaction before the order is touched.
func executeRefundDecision(refunds refundInserter, returns returnConditionalUpdater, orders orderStatusUpdater, ret *models.ReturnRequest, amount decimal.Decimal, orderStatus, note string, now time.Time) error {
	refund := &models.Refund{
		OrderID:     ret.OrderID,
		ReturnID:    ret.ID,
		BuyerID:     ret.BuyerID,
		SellerID:    ret.SellerID,
		RequesterID: ret.SellerID,
		Amount:      models.NewMoneyFromDecimal(amount),
		Currency:    ret.Order.Currency,
		Reason:      buildRefundReason(ret),
		Status:      constants.RefundStatusCompleted,
		CompletedAt: &now,
	}
	if err := refunds.Create(refund); err != nil {
		return err
	}

	refundAmount := models.NewMoneyFromDecimal(amount)
	ok, err := returns.UpdateStatusIf(ret.ID, constants.ReturnStatusPending, constants.ReturnStatusRefundedNoReturn, map[string]interface{}{
		"refund_amount": refundAmount,
		"seller_note":   note,
		"resolved_at":   now,
		"updated_at":    now,
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrReturnAlreadyResolved
	}

	return orders.UpdateStatus(ret.OrderID, orderStatus, map[string]interface{}{
		"refund_amount": refundAmount,
		"refunded_at":   now,
		"updated_at":    now,
	})
}

// AddTracking stores the buyer's carrier and tracking number on an approved
// return. Resubmitting overwrites.
func (s *ReturnService) AddTracking(returnID, buyerID uint, carrierCode, number string) (*models.ReturnRequest, error) {
	ret, err := s.returnRepo.GetByID(returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, ErrReturnNotFound
	}
	if ret.BuyerID != buyerID {
		return nil, ErrReturnForbidden
	}
	if ret.Status != constants.ReturnStatusApproved {
		return nil, ErrTrackingNotAllowed
	}
	if strings.TrimSpace(number) == "" {
		return nil, ErrTrackingInvalid
	}
	carrierCode = strings.ToLower(strings.TrimSpace(carrierCode))
	if carrierCode != "" {
		if _, ok := CarrierByCode(carrierCode); !ok {
			return nil, ErrCarrierUnknown
		}
	}

	stored := EncodeTracking(carrierCode, number)
	ok, err := s.returnRepo.UpdateStatusIf(ret.ID, constants.ReturnStatusApproved, constants.ReturnStatusApproved, map[string]interface{}{
		"tracking_number": stored,
		"updated_at":      time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReturnAlreadyResolved
	}

	ret.TrackingNumber = stored
	logger.Infow("return_tracking_added", "return_id", ret.ID, "carrier", carrierCode)
	s.afterMutation(ret, ret.Status)
	return ret, nil
}

// ConfirmReceived lets the seller close an approved return after the item
// arrives. The full order amount is stamped as refunded.
func (s *ReturnService) ConfirmReceived(returnID, sellerID uint) (*models.ReturnRequest, error) {
	ret, err := s.returnRepo.GetByID(returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, ErrReturnNotFound
	}
	if ret.SellerID != sellerID {
		return nil, ErrReturnForbidden
	}
	if ret.Status != constants.ReturnStatusApproved {
		return nil, ErrReturnNotApproved
	}
	if ret.Order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now()
	fullAmount := models.NewMoneyFromDecimal(ret.Order.TotalAmount.Decimal)
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		returnRepo := s.returnRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		ok, err := returnRepo.UpdateStatusIf(ret.ID, constants.ReturnStatusApproved, constants.ReturnStatusCompleted, map[string]interface{}{
			"refund_amount": fullAmount,
			"resolved_at":   now,
			"updated_at":    now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return ErrReturnAlreadyResolved
		}

		return orderRepo.UpdateStatus(ret.OrderID, constants.OrderStatusRefunded, map[string]interface{}{
			"refund_amount": fullAmount,
			"refunded_at":   now,
			"updated_at":    now,
		})
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.returnRepo.GetByID(ret.ID)
	if err != nil {
		return nil, err
	}
	logger.Infow("return_completed", "return_id", ret.ID, "order_id", ret.OrderID)
	s.afterMutation(updated, constants.ReturnStatusCompleted)
	return updated, nil
}

// Cancel lets the buyer withdraw a return that has not reached a terminal
// state.
func (s *ReturnService) Cancel(returnID, buyerID uint) (*models.ReturnRequest, error) {
	ret, err := s.returnRepo.GetByID(returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, ErrReturnNotFound
	}
	if ret.BuyerID != buyerID {
		return nil, ErrReturnForbidden
	}
	return s.cancel(ret, "")
}

// ForceCancel cancels a return from the back office with an audit note.
func (s *ReturnService) ForceCancel(returnID uint, adminNote string) (*models.ReturnRequest, error) {
	ret, err := s.returnRepo.GetByID(returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, ErrReturnNotFound
	}
	return s.cancel(ret, strings.TrimSpace(adminNote))
}

func (s *ReturnService) cancel(ret *models.ReturnRequest, adminNote string) (*models.ReturnRequest, error) {
	if !CanTransitionReturn(ret.Status, constants.ReturnStatusCancelled) {
		return nil, ErrReturnCancelNotAllowed
	}
	now := time.Now()
	updates := map[string]interface{}{
		"resolved_at": now,
		"updated_at":  now,
	}
	if adminNote != "" {
		updates["admin_note"] = adminNote
	}
	ok, err := s.returnRepo.UpdateStatusIf(ret.ID, ret.Status, constants.ReturnStatusCancelled, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReturnAlreadyResolved
	}

	ret.Status = constants.ReturnStatusCancelled
	logger.Infow("return_cancelled", "return_id", ret.ID)
	s.afterMutation(ret, constants.ReturnStatusCancelled)
	return ret, nil
}

// GetSellerReturnAddress exposes the seller's address to the buyer of an
// approved return.
func (s *ReturnService) GetSellerReturnAddress(returnID, buyerID uint) (*SellerReturnAddress, error) {
	ret, err := s.returnRepo.GetByID(returnID)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, ErrReturnNotFound
	}
	if ret.BuyerID != buyerID {
		return nil, ErrReturnForbidden
	}
	if ret.Status != constants.ReturnStatusApproved {
		return nil, ErrReturnNotApproved
	}

	profile, err := s.userRepo.GetSellerProfile(ret.SellerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrSellerProfileNotSet
	}
	return &SellerReturnAddress{
		Name:         profile.Name,
		AddressLine1: profile.AddressLine1,
		AddressLine2: profile.AddressLine2,
		City:         profile.City,
		PostalCode:   profile.PostalCode,
		Phone:        profile.Phone,
	}, nil
}

// CancelStalePending cancels pending returns older than the cutoff. Used by
// the sweep worker. Returns the number of cancelled rows.
func (s *ReturnService) CancelStalePending(before time.Time, limit int) (int, error) {
	stale, err := s.returnRepo.ListStalePending(before, limit)
	if err != nil {
		return 0, err
	}
	cancelled := 0
	for i := range stale {
		ret := &stale[i]
		if _, err := s.ForceCancel(ret.ID, "auto-cancelled: no seller decision"); err != nil {
			if errors.Is(err, ErrReturnAlreadyResolved) || errors.Is(err, ErrReturnCancelNotAllowed) {
				continue
			}
			logger.Warnw("return_stale_cancel_failed", "return_id", ret.ID, "error", err)
			continue
		}
		cancelled++
	}
	return cancelled, nil
}

// afterMutation invalidates list caches and notifies both parties.
func (s *ReturnService) afterMutation(ret *models.ReturnRequest, status string) {
	if ret == nil {
		return
	}
	cache.BumpReturnListGen(context.Background(), ret.BuyerID, ret.SellerID)

	if err := s.queueClient.EnqueueReturnStatusNotify(queue.ReturnStatusNotifyPayload{
		ReturnID: ret.ID,
		OrderID:  ret.OrderID,
		BuyerID:  ret.BuyerID,
		SellerID: ret.SellerID,
		Status:   status,
	}); err != nil {
		logger.Warnw("return_status_notify_enqueue_failed", "return_id", ret.ID, "error", err)
	}
}

func parseRefundAmount(raw string, orderAmount decimal.Decimal) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrRefundAmountRequired
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrRefundAmountInvalid
	}
	if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(orderAmount) {
		return decimal.Zero, ErrRefundAmountInvalid
	}
	return amount, nil
}

func buildRefundReason(ret *models.ReturnRequest) string {
	reason := strings.TrimSpace(ret.Reason)
	if reason == "" {
		return "Refund for return request"
	}
	return "Refund for return request: " + reason
}
