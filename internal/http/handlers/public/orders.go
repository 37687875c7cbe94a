package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/1983adrian/adimarketplace-sub002/internal/http/response"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"
	"github.com/1983adrian/adimarketplace-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders lists the caller's orders on either side of the trade.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}
	switch strings.TrimSpace(c.Query("role")) {
	case "seller":
		filter.SellerID = uid
	default:
		filter.BuyerID = uid
	}

	result, err := h.OrderService.ListOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list orders", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, result.Total)
	response.SuccessWithPage(c, result.Items, pagination)
}

// GetOrder fetches one order visible to the caller.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "order id is invalid", nil)
		return
	}

	order, err := h.OrderService.GetOrder(uint(orderID), uid)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load order", err)
		return
	}

	response.Success(c, order)
}
