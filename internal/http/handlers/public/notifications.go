package public

import (
	"strconv"
	"strings"

	"github.com/1983adrian/adimarketplace-sub002/internal/http/response"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListNotifications lists the caller's notifications.
func (h *Handler) ListNotifications(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	result, err := h.NotificationService.List(repository.NotificationListFilter{
		Page:       page,
		PageSize:   pageSize,
		UserID:     uid,
		Type:       strings.TrimSpace(c.Query("type")),
		OnlyUnread: c.Query("unread") == "1",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list notifications", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, result.Total)
	response.SuccessWithPage(c, gin.H{
		"items":  result.Items,
		"unread": result.Unread,
	}, pagination)
}

// MarkNotificationRead marks one of the caller's notifications as read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || notificationID == 0 {
		respondError(c, response.CodeBadRequest, "notification id is invalid", nil)
		return
	}

	if err := h.NotificationService.MarkRead(uint(notificationID), uid); err != nil {
		respondError(c, response.CodeInternal, "failed to mark notification read", err)
		return
	}

	response.Success(c, gin.H{"marked": true})
}

// MarkAllNotificationsRead marks all of the caller's notifications as read.
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.NotificationService.MarkAllRead(uid); err != nil {
		respondError(c, response.CodeInternal, "failed to mark notifications read", err)
		return
	}

	response.Success(c, gin.H{"marked": true})
}
