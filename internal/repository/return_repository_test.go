package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/constants"
	"github.com/1983adrian/adimarketplace-sub002/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupReturnRepositoryTest(t *testing.T) (*GormReturnRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:return_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Order{},
		&models.ReturnRequest{},
		&models.Refund{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewReturnRepository(db), db
}

func createReturnTestOrder(t *testing.T, db *gorm.DB, buyerID, sellerID uint) models.Order {
	t.Helper()
	listing := models.Listing{
		SellerID:    sellerID,
		Title:       "Vintage camera",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
		Currency:    "RON",
		Status:      constants.ListingStatusSold,
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("create listing failed: %v", err)
	}
	order := models.Order{
		OrderNo:     fmt.Sprintf("ORD%d", time.Now().UnixNano()),
		BuyerID:     buyerID,
		SellerID:    sellerID,
		ListingID:   listing.ID,
		Status:      constants.OrderStatusShipped,
		Currency:    "RON",
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(120)),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestReturnRepositoryListByUserRoles(t *testing.T) {
	repo, db := setupReturnRepositoryTest(t)

	orderA := createReturnTestOrder(t, db, 1, 2)
	orderB := createReturnTestOrder(t, db, 3, 1)

	retA := models.ReturnRequest{OrderID: orderA.ID, BuyerID: 1, SellerID: 2, Reason: "damaged", Status: constants.ReturnStatusPending}
	retB := models.ReturnRequest{OrderID: orderB.ID, BuyerID: 3, SellerID: 1, Reason: "not as described", Status: constants.ReturnStatusPending}
	if err := repo.Create(&retA); err != nil {
		t.Fatalf("create retA failed: %v", err)
	}
	if err := repo.Create(&retB); err != nil {
		t.Fatalf("create retB failed: %v", err)
	}

	buyerRows, total, err := repo.ListByUser(ReturnListFilter{UserID: 1, Role: constants.ReturnRoleBuyer, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list buyer failed: %v", err)
	}
	if total != 1 || len(buyerRows) != 1 || buyerRows[0].ID != retA.ID {
		t.Fatalf("buyer list mismatch: total=%d rows=%d", total, len(buyerRows))
	}

	sellerRows, total, err := repo.ListByUser(ReturnListFilter{UserID: 1, Role: constants.ReturnRoleSeller, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list seller failed: %v", err)
	}
	if total != 1 || len(sellerRows) != 1 || sellerRows[0].ID != retB.ID {
		t.Fatalf("seller list mismatch: total=%d rows=%d", total, len(sellerRows))
	}
}

func TestReturnRepositoryUpdateStatusIf(t *testing.T) {
	repo, db := setupReturnRepositoryTest(t)

	order := createReturnTestOrder(t, db, 1, 2)
	ret := models.ReturnRequest{OrderID: order.ID, BuyerID: 1, SellerID: 2, Reason: "damaged", Status: constants.ReturnStatusPending}
	if err := repo.Create(&ret); err != nil {
		t.Fatalf("create return failed: %v", err)
	}

	now := time.Now()
	ok, err := repo.UpdateStatusIf(ret.ID, constants.ReturnStatusPending, constants.ReturnStatusRejected, map[string]interface{}{
		"seller_note": "wear visible in photos",
		"resolved_at": now,
	})
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected first update to win")
	}

	// A second resolution attempt must find zero rows in pending.
	ok, err = repo.UpdateStatusIf(ret.ID, constants.ReturnStatusPending, constants.ReturnStatusApproved, nil)
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if ok {
		t.Fatalf("expected second update to lose the race")
	}

	got, err := repo.GetByID(ret.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.Status != constants.ReturnStatusRejected {
		t.Fatalf("status mismatch: %+v", got)
	}
	if got.SellerNote != "wear visible in photos" {
		t.Fatalf("seller note mismatch: %q", got.SellerNote)
	}
	if got.ResolvedAt == nil {
		t.Fatalf("resolved_at not set")
	}
}

func TestReturnRepositoryGetOpenByOrderIDIgnoresCancelled(t *testing.T) {
	repo, db := setupReturnRepositoryTest(t)

	order := createReturnTestOrder(t, db, 1, 2)
	cancelled := models.ReturnRequest{OrderID: order.ID, BuyerID: 1, SellerID: 2, Reason: "changed mind", Status: constants.ReturnStatusCancelled}
	if err := repo.Create(&cancelled); err != nil {
		t.Fatalf("create cancelled failed: %v", err)
	}

	got, err := repo.GetOpenByOrderID(order.ID)
	if err != nil {
		t.Fatalf("get open failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no open return, got %+v", got)
	}

	open := models.ReturnRequest{OrderID: order.ID, BuyerID: 1, SellerID: 2, Reason: "damaged", Status: constants.ReturnStatusPending}
	if err := repo.Create(&open); err != nil {
		t.Fatalf("create open failed: %v", err)
	}

	got, err = repo.GetOpenByOrderID(order.ID)
	if err != nil {
		t.Fatalf("get open failed: %v", err)
	}
	if got == nil || got.ID != open.ID {
		t.Fatalf("open return mismatch: %+v", got)
	}
}
