package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/1983adrian/adimarketplace-sub002/internal/http/response"
	"github.com/1983adrian/adimarketplace-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

// ListRefunds lists refunds visible to the caller.
func (h *Handler) ListRefunds(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	result, err := h.RefundService.ListRefunds(c.Request.Context(), service.ListRefundsInput{
		UserID:   uid,
		Role:     strings.TrimSpace(c.Query("role")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list refunds", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, result.Total)
	response.SuccessWithPage(c, result.Items, pagination)
}

// GetRefund fetches one refund visible to the caller.
func (h *Handler) GetRefund(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	refundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || refundID == 0 {
		respondError(c, response.CodeBadRequest, "refund id is invalid", nil)
		return
	}

	refund, err := h.RefundService.GetRefund(uint(refundID), uid)
	if err != nil {
		if errors.Is(err, service.ErrRefundNotFound) {
			respondError(c, response.CodeNotFound, "refund not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load refund", err)
		return
	}

	response.Success(c, refund)
}

// GetReturnRefund fetches the refund written for one return request.
func (h *Handler) GetReturnRefund(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	returnID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || returnID == 0 {
		respondError(c, response.CodeBadRequest, "return id is invalid", nil)
		return
	}

	refund, err := h.RefundService.GetRefundForReturn(uint(returnID), uid)
	if err != nil {
		if errors.Is(err, service.ErrRefundNotFound) {
			respondError(c, response.CodeNotFound, "refund not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load refund", err)
		return
	}

	response.Success(c, refund)
}
