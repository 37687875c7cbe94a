package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/constants"
	"github.com/1983adrian/adimarketplace-sub002/internal/models"
	"github.com/1983adrian/adimarketplace-sub002/internal/queue"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupReturnServiceTest(t *testing.T) (*ReturnService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:return_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.SellerProfile{},
		&models.Listing{},
		&models.Order{},
		&models.ReturnRequest{},
		&models.Refund{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}

	svc := NewReturnService(
		repository.NewReturnRepository(db),
		repository.NewRefundRepository(db),
		repository.NewOrderRepository(db),
		repository.NewUserRepository(db),
		queueClient,
		14,
		0,
	)
	return svc, db
}

func seedPaidOrder(t *testing.T, db *gorm.DB, amount int64) models.Order {
	t.Helper()
	listing := models.Listing{
		SellerID:    2,
		Title:       "Mountain bike",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(amount)),
		Currency:    "RON",
		Status:      constants.ListingStatusSold,
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("create listing failed: %v", err)
	}
	now := time.Now()
	order := models.Order{
		OrderNo:     fmt.Sprintf("ORD%d", time.Now().UnixNano()),
		BuyerID:     1,
		SellerID:    2,
		ListingID:   listing.ID,
		Status:      constants.OrderStatusShipped,
		Currency:    "RON",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(amount)),
		PaidAt:      &now,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func seedPendingReturn(t *testing.T, svc *ReturnService, db *gorm.DB, amount int64) (*models.ReturnRequest, models.Order) {
	t.Helper()
	order := seedPaidOrder(t, db, amount)
	ret, err := svc.FileReturn(FileReturnInput{OrderID: order.ID, BuyerID: 1, Reason: "item damaged in transit"})
	if err != nil {
		t.Fatalf("file return failed: %v", err)
	}
	return ret, order
}

func TestApproveThenTrackingThenComplete(t *testing.T) {
	svc, db := setupReturnServiceTest(t)
	ret, order := seedPendingReturn(t, svc, db, 100)

	updated, err := svc.Resolve(ResolveInput{ReturnID: ret.ID, SellerID: 2, Decision: constants.ReturnDecisionApprove, Note: "send it back"})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if updated.Status != constants.ReturnStatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
	if updated.SellerNote != "send it back" {
		t.Fatalf("seller note mismatch: %q", updated.SellerNote)
	}

	tracked, err := svc.AddTracking(ret.ID, 1, "fan_courier", "AWB123456")
	if err != nil {
		t.Fatalf("add tracking failed: %v", err)
	}
	if tracked.TrackingNumber != "fan_courier:AWB123456" {
		t.Fatalf("tracking mismatch: %q", tracked.TrackingNumber)
	}

	completed, err := svc.ConfirmReceived(ret.ID, 2)
	if err != nil {
		t.Fatalf("confirm received failed: %v", err)
	}
	if completed.Status != constants.ReturnStatusCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	if completed.RefundAmount == nil || !completed.RefundAmount.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("refund amount mismatch: %+v", completed.RefundAmount)
	}

	var gotOrder models.Order
	if err := db.First(&gotOrder, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if gotOrder.Status != constants.OrderStatusRefunded {
		t.Fatalf("expected order refunded, got %s", gotOrder.Status)
	}
	if gotOrder.RefundedAt == nil {
		t.Fatalf("order refunded_at not stamped")
	}
}

func TestFullRefundWritesRefundReturnOrder(t *testing.T) {
	svc, db := setupReturnServiceTest(t)
	ret, order := seedPendingReturn(t, svc, db, 120)

	updated, err := svc.Resolve(ResolveInput{ReturnID: ret.ID, SellerID: 2, Decision: constants.ReturnDecisionFullRefund, Note: "keep the item"})
	if err != nil {
		t.Fatalf("full refund failed: %v", err)
	}
	if updated.Status != constants.ReturnStatusRefundedNoReturn {
		t.Fatalf("expected refunded_no_return, got %s", updated.Status)
	}
	if updated.RefundAmount == nil || !updated.RefundAmount.Decimal.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("return refund amount mismatch: %+v", updated.RefundAmount)
	}

	var refund models.Refund
	if err := db.Where("return_id = ?", ret.ID).First(&refund).Error; err != nil {
		t.Fatalf("refund row missing: %v", err)
	}
	if !refund.Amount.Decimal.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("refund amount mismatch: %s", refund.Amount.Decimal)
	}
	if refund.Status != constants.RefundStatusCompleted {
		t.Fatalf("refund status mismatch: %s", refund.Status)
	}
	if refund.RequesterID != 2 {
		t.Fatalf("requester should be the seller, got %d", refund.RequesterID)
	}
	if refund.CompletedAt == nil {
		t.Fatalf("refund completed_at not stamped")
	}

	var gotOrder models.Order
	if err := db.First(&gotOrder, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if gotOrder.Status != constants.OrderStatusRefunded {
		t.Fatalf("expected order refunded, got %s", gotOrder.Status)
	}
}

func TestPartialRefundBound(t *testing.T) {
	svc, db := setupReturnServiceTest(t)
	ret, order := seedPendingReturn(t, svc, db, 50)

	for _, amount := range []string{"75", "0", "-3", "abc", ""} {
		_, err := svc.Resolve(ResolveInput{ReturnID: ret.ID, SellerID: 2, Decision: constants.ReturnDecisionPartialRefund, Amount: amount})
		if err == nil {
			t.Fatalf("amount %q should be rejected", amount)
		}

		var refundCount int64
		if err := db.Model(&models.Refund{}).Count(&refundCount).Error; err != nil {
			t.Fatalf("count refunds failed: %v", err)
		}
		if refundCount != 0 {
			t.Fatalf("amount %q produced a refund row", amount)
		}
	}

	// State must be untouched after rejected validation.
	got, err := svc.GetReturn(ret.ID, 1)
	if err != nil {
		t.Fatalf("get return failed: %v", err)
	}
	if got.Status != constants.ReturnStatusPending {
		t.Fatalf("return mutated by rejected input: %s", got.Status)
	}
	var gotOrder models.Order
	if err := db.First(&gotOrder, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if gotOrder.Status != constants.OrderStatusShipped {
		t.Fatalf("order mutated by rejected input: %s", gotOrder.Status)
	}

	updated, err := svc.Resolve(ResolveInput{ReturnID: ret.ID, SellerID: 2, Decision: constants.ReturnDecisionPartialRefund, Amount: "19.99"})
	if err != nil {
		t.Fatalf("valid partial refund failed: %v", err)
	}
	if updated.Status != constants.ReturnStatusRefundedNoReturn {
		t.Fatalf("expected refunded_no_return, got %s", updated.Status)
	}
	if err := db.First(&gotOrder, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if gotOrder.Status != constants.OrderStatusPartiallyRefunded {
		t.Fatalf("expected partially_refunded, got %s", gotOrder.Status)
	}
}

func TestTerminalReturnsRejectFurtherActions(t *testing.T) {
	svc, db := setupReturnServiceTest(t)
	ret, _ := seedPendingReturn(t, svc, db, 80)

	if _, err := svc.Resolve(ResolveInput{ReturnID: ret.ID, SellerID: 2, Decision: constants.ReturnDecisionReject, Note: "wear visible"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	if _, err := svc.Resolve(ResolveInput{ReturnID: ret.ID, SellerID: 2, Decision: constants.ReturnDecisionApprove}); !errors.Is(err, ErrReturnNotPending) {
		t.Fatalf("expected ErrReturnNotPending, got %v", err)
	}
	if _, err := svc.AddTracking(ret.ID, 1, "dpd", "X1"); !errors.Is(err, ErrTrackingNotAllowed) {
		t.Fatalf("expected ErrTrackingNotAllowed, got %v", err)
	}
	if _, err := svc.ConfirmReceived(ret.ID, 2); !errors.Is(err, ErrReturnNotApproved) {
		t.Fatalf("expected ErrReturnNotApproved, got %v", err)
	}
	if _, err := svc.Cancel(ret.ID, 1); !errors.Is(err, ErrReturnCancelNotAllowed) {
		t.Fatalf("expected ErrReturnCancelNotAllowed, got %v", err)
	}
}

func TestResolveConflictLosesRace(t *testing.T) {
	svc, db := setupReturnServiceTest(t)
	ret, _ := seedPendingReturn(t, svc, db, 60)

	// Another actor resolves the return between the read and the write.
	if err := db.Model(&models.ReturnRequest{}).Where("id = ?", ret.ID).
		Update("status", constants.ReturnStatusRejected).Error; err != nil {
		t.Fatalf("simulate race failed: %v", err)
	}

	stale := &models.ReturnRequest{}
	*stale = *ret
	stale.Status = constants.ReturnStatusPending
	err := svc.transitionReturn(stale, constants.ReturnStatusApproved, map[string]interface{}{})
	if !errors.Is(err, ErrReturnAlreadyResolved) {
		t.Fatalf("expected ErrReturnAlreadyResolved, got %v", err)
	}
}

func TestSellerReturnAddressVisibility(t *testing.T) {
	svc, db := setupReturnServiceTest(t)
	ret, _ := seedPendingReturn(t, svc, db, 40)

	profile := models.SellerProfile{
		UserID:       2,
		Name:         "Ana Popescu",
		AddressLine1: "Str. Lunga 10",
		City:         "Brasov",
		PostalCode:   "500035",
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile failed: %v", err)
	}

	if _, err := svc.GetSellerReturnAddress(ret.ID, 1); err == nil {
		t.Fatalf("address must be hidden while pending")
	}

	if _, err := svc.Resolve(ResolveInput{ReturnID: ret.ID, SellerID: 2, Decision: constants.ReturnDecisionApprove}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	addr, err := svc.GetSellerReturnAddress(ret.ID, 1)
	if err != nil {
		t.Fatalf("get address failed: %v", err)
	}
	if addr.City != "Brasov" || addr.Name != "Ana Popescu" {
		t.Fatalf("address mismatch: %+v", addr)
	}

	if _, err := svc.GetSellerReturnAddress(ret.ID, 2); !errors.Is(err, ErrReturnForbidden) {
		t.Fatalf("seller should not use the buyer endpoint, got %v", err)
	}
}

func TestFileReturnGuards(t *testing.T) {
	svc, db := setupReturnServiceTest(t)
	order := seedPaidOrder(t, db, 30)

	if _, err := svc.FileReturn(FileReturnInput{OrderID: order.ID, BuyerID: 1, Reason: "  "}); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
	if _, err := svc.FileReturn(FileReturnInput{OrderID: order.ID, BuyerID: 9, Reason: "damaged"}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign buyer, got %v", err)
	}

	if _, err := svc.FileReturn(FileReturnInput{OrderID: order.ID, BuyerID: 1, Reason: "damaged"}); err != nil {
		t.Fatalf("file return failed: %v", err)
	}
	if _, err := svc.FileReturn(FileReturnInput{OrderID: order.ID, BuyerID: 1, Reason: "damaged again"}); !errors.Is(err, ErrReturnAlreadyOpen) {
		t.Fatalf("expected ErrReturnAlreadyOpen, got %v", err)
	}

	old := seedPaidOrder(t, db, 30)
	past := time.Now().Add(-20 * 24 * time.Hour)
	if err := db.Model(&models.Order{}).Where("id = ?", old.ID).Update("paid_at", past).Error; err != nil {
		t.Fatalf("age order failed: %v", err)
	}
	if _, err := svc.FileReturn(FileReturnInput{OrderID: old.ID, BuyerID: 1, Reason: "late"}); !errors.Is(err, ErrReturnWindowClosed) {
		t.Fatalf("expected ErrReturnWindowClosed, got %v", err)
	}
}

func TestListReturnsIdempotentReads(t *testing.T) {
	svc, db := setupReturnServiceTest(t)
	seedPendingReturn(t, svc, db, 20)
	seedPendingReturn(t, svc, db, 25)

	ctx := context.Background()
	first, err := svc.ListReturns(ctx, ListReturnsInput{UserID: 1, Role: constants.ReturnRoleBuyer, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("first list failed: %v", err)
	}
	second, err := svc.ListReturns(ctx, ListReturnsInput{UserID: 1, Role: constants.ReturnRoleBuyer, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if first.Total != second.Total || len(first.Items) != len(second.Items) {
		t.Fatalf("repeat read diverged: %d/%d vs %d/%d", first.Total, len(first.Items), second.Total, len(second.Items))
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID || first.Items[i].Status != second.Items[i].Status {
			t.Fatalf("row %d diverged", i)
		}
	}
}

// Call-order recorders for the refund write sequence.

type sequenceRecorder struct {
	calls   []string
	failAt  string
	noMatch bool
}

func (r *sequenceRecorder) Create(refund *models.Refund) error {
	r.calls = append(r.calls, "refund_insert")
	if r.failAt == "refund_insert" {
		return errors.New("insert failed")
	}
	return nil
}

func (r *sequenceRecorder) UpdateStatusIf(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error) {
	r.calls = append(r.calls, "return_update")
	if r.failAt == "return_update" {
		return false, errors.New("update failed")
	}
	return !r.noMatch, nil
}

func (r *sequenceRecorder) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	r.calls = append(r.calls, "order_update")
	if r.failAt == "order_update" {
		return errors.New("order failed")
	}
	return nil
}

func refundSequenceFixture() *models.ReturnRequest {
	return &models.ReturnRequest{
		ID:       7,
		OrderID:  3,
		BuyerID:  1,
		SellerID: 2,
		Reason:   "damaged",
		Status:   constants.ReturnStatusPending,
		Order: &models.Order{
			ID:          3,
			Currency:    "RON",
			TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		},
	}
}

func TestRefundSequenceOrdering(t *testing.T) {
	rec := &sequenceRecorder{}
	ret := refundSequenceFixture()
	err := executeRefundDecision(rec, rec, rec, ret, decimal.NewFromInt(100), constants.OrderStatusRefunded, "", time.Now())
	if err != nil {
		t.Fatalf("sequence failed: %v", err)
	}
	want := []string{"refund_insert", "return_update", "order_update"}
	if len(rec.calls) != len(want) {
		t.Fatalf("call count mismatch: %v", rec.calls)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Fatalf("call %d: got %s, want %s", i, rec.calls[i], want[i])
		}
	}
}

func TestRefundSequenceStopsOnInsertFailure(t *testing.T) {
	rec := &sequenceRecorder{failAt: "refund_insert"}
	ret := refundSequenceFixture()
	err := executeRefundDecision(rec, rec, rec, ret, decimal.NewFromInt(100), constants.OrderStatusRefunded, "", time.Now())
	if err == nil {
		t.Fatalf("expected insert failure")
	}
	if len(rec.calls) != 1 || rec.calls[0] != "refund_insert" {
		t.Fatalf("writes after failed insert: %v", rec.calls)
	}
}

func TestRefundSequenceStopsOnLostRace(t *testing.T) {
	rec := &sequenceRecorder{noMatch: true}
	ret := refundSequenceFixture()
	err := executeRefundDecision(rec, rec, rec, ret, decimal.NewFromInt(100), constants.OrderStatusRefunded, "", time.Now())
	if !errors.Is(err, ErrReturnAlreadyResolved) {
		t.Fatalf("expected ErrReturnAlreadyResolved, got %v", err)
	}
	for _, call := range rec.calls {
		if call == "order_update" {
			t.Fatalf("order touched after lost race: %v", rec.calls)
		}
	}
}
