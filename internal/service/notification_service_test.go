package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/constants"
	"github.com/1983adrian/adimarketplace-sub002/internal/models"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupNotificationServiceTest(t *testing.T) (*NotificationService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:notification_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewNotificationService(repository.NewNotificationRepository(db)), db
}

func TestNotifyReturnStatusWritesBothParties(t *testing.T) {
	svc, db := setupNotificationServiceTest(t)

	if err := svc.NotifyReturnStatus(7, 3, 1, 2, constants.ReturnStatusApproved); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	var notifications []models.Notification
	if err := db.Order("user_id").Find(&notifications).Error; err != nil {
		t.Fatalf("load notifications failed: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("want 2 notifications got %d", len(notifications))
	}
	if notifications[0].UserID != 1 || notifications[1].UserID != 2 {
		t.Fatalf("notifications should target buyer and seller, got %d and %d", notifications[0].UserID, notifications[1].UserID)
	}
	for _, n := range notifications {
		if n.Title != "Return request approved" {
			t.Fatalf("title want approved text got %q", n.Title)
		}
		if n.ReturnID == nil || *n.ReturnID != 7 {
			t.Fatalf("return id should be 7, got %v", n.ReturnID)
		}
		if n.Type != constants.NotificationTypeReturnStatus {
			t.Fatalf("type want %s got %s", constants.NotificationTypeReturnStatus, n.Type)
		}
	}
}

func TestNotifyReturnStatusUnknownStatusFallsBack(t *testing.T) {
	svc, db := setupNotificationServiceTest(t)

	if err := svc.NotifyReturnStatus(9, 5, 1, 0, "mystery"); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	var notifications []models.Notification
	if err := db.Find(&notifications).Error; err != nil {
		t.Fatalf("load notifications failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("zero seller id should be skipped, want 1 notification got %d", len(notifications))
	}
	if notifications[0].Title != "Return request updated" {
		t.Fatalf("unknown status should use fallback title, got %q", notifications[0].Title)
	}
}

func TestNotificationListAndMarkRead(t *testing.T) {
	svc, _ := setupNotificationServiceTest(t)

	for i := 0; i < 3; i++ {
		if err := svc.NotifyReturnStatus(uint(10+i), 4, 1, 0, constants.ReturnStatusPending); err != nil {
			t.Fatalf("notify failed: %v", err)
		}
	}

	result, err := svc.List(repository.NotificationListFilter{UserID: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 3 || result.Unread != 3 {
		t.Fatalf("want total 3 unread 3 got total %d unread %d", result.Total, result.Unread)
	}

	if err := svc.MarkRead(result.Items[0].ID, 1); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	result, err = svc.List(repository.NotificationListFilter{UserID: 1, OnlyUnread: true})
	if err != nil {
		t.Fatalf("list unread failed: %v", err)
	}
	if result.Total != 2 || result.Unread != 2 {
		t.Fatalf("after mark read want 2 unread got total %d unread %d", result.Total, result.Unread)
	}

	if err := svc.MarkAllRead(1); err != nil {
		t.Fatalf("mark all read failed: %v", err)
	}
	result, err = svc.List(repository.NotificationListFilter{UserID: 1})
	if err != nil {
		t.Fatalf("list after mark all failed: %v", err)
	}
	if result.Unread != 0 {
		t.Fatalf("after mark all read want unread 0 got %d", result.Unread)
	}
}
