package admin

import (
	"strconv"

	"github.com/1983adrian/adimarketplace-sub002/internal/http/response"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminRefunds lists refunds across the marketplace.
func (h *Handler) GetAdminRefunds(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 64)
	returnID, _ := strconv.ParseUint(c.Query("return_id"), 10, 64)

	result, err := h.RefundService.ListRefundsAdmin(repository.RefundListFilter{
		Page:        page,
		PageSize:    pageSize,
		OrderID:     uint(orderID),
		ReturnID:    uint(returnID),
		CreatedFrom: parseAdminDateQuery(c, "created_from"),
		CreatedTo:   parseAdminDateQuery(c, "created_to"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list refunds", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, result.Total)
	response.SuccessWithPage(c, result.Items, pagination)
}

// GetAdminRefund fetches one refund.
func (h *Handler) GetAdminRefund(c *gin.Context) {
	refundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || refundID == 0 {
		respondError(c, response.CodeBadRequest, "refund id is invalid", nil)
		return
	}

	refund, err := h.RefundRepo.GetByID(uint(refundID))
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load refund", err)
		return
	}
	if refund == nil {
		respondError(c, response.CodeNotFound, "refund not found", nil)
		return
	}

	response.Success(c, refund)
}
