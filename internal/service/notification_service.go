package service

import (
	"fmt"

	"github.com/1983adrian/adimarketplace-sub002/internal/constants"
	"github.com/1983adrian/adimarketplace-sub002/internal/models"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"
)

// NotificationService manages in-app notifications.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a notification service.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// NotificationListResult is one page of notifications.
type NotificationListResult struct {
	Items  []models.Notification `json:"items"`
	Total  int64                 `json:"total"`
	Unread int64                 `json:"unread"`
}

// List lists a user's notifications.
func (s *NotificationService) List(filter repository.NotificationListFilter) (*NotificationListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	items, total, err := s.notificationRepo.List(filter)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(filter.UserID)
	if err != nil {
		return nil, err
	}
	return &NotificationListResult{Items: items, Total: total, Unread: unread}, nil
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(id uint, userID uint) error {
	return s.notificationRepo.MarkRead(id, userID)
}

// MarkAllRead marks all of a user's notifications as read.
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}

// returnStatusTitles maps a return status to the notification title shown to
// both parties.
var returnStatusTitles = map[string]string{
	constants.ReturnStatusPending:          "Return request filed",
	constants.ReturnStatusApproved:         "Return request approved",
	constants.ReturnStatusRejected:         "Return request rejected",
	constants.ReturnStatusCompleted:        "Return completed, refund issued",
	constants.ReturnStatusRefundedNoReturn: "Refund issued without return",
	constants.ReturnStatusCancelled:        "Return request cancelled",
}

// NotifyReturnStatus writes one notification per party for a return status
// change. Used by the queue worker.
func (s *NotificationService) NotifyReturnStatus(returnID, orderID, buyerID, sellerID uint, status string) error {
	title, ok := returnStatusTitles[status]
	if !ok {
		title = "Return request updated"
	}
	body := fmt.Sprintf("Return request #%d on order #%d is now %s.", returnID, orderID, status)

	for _, userID := range []uint{buyerID, sellerID} {
		if userID == 0 {
			continue
		}
		notification := &models.Notification{
			UserID:   userID,
			Type:     constants.NotificationTypeReturnStatus,
			Title:    title,
			Body:     body,
			ReturnID: &returnID,
			OrderID:  &orderID,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			return err
		}
	}
	return nil
}
