package admin

import (
	"strconv"
	"strings"

	"github.com/1983adrian/adimarketplace-sub002/internal/http/response"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminOrders lists orders across the marketplace.
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	result, err := h.OrderService.ListOrdersAdmin(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		CreatedFrom: parseAdminDateQuery(c, "created_from"),
		CreatedTo:   parseAdminDateQuery(c, "created_to"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list orders", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, result.Total)
	response.SuccessWithPage(c, result.Items, pagination)
}

// GetAdminOrder fetches one order.
func (h *Handler) GetAdminOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "order id is invalid", nil)
		return
	}

	order, err := h.OrderRepo.GetByID(uint(orderID))
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load order", err)
		return
	}
	if order == nil {
		respondError(c, response.CodeNotFound, "order not found", nil)
		return
	}

	response.Success(c, order)
}
