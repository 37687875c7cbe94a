package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/http/response"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"
	"github.com/1983adrian/adimarketplace-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

func parseAdminDateQuery(c *gin.Context, name string) *time.Time {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &parsed
}

// GetAdminReturns lists return requests across the marketplace.
func (h *Handler) GetAdminReturns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 64)

	items, total, err := h.ReturnRepo.ListAdmin(repository.ReturnListFilter{
		Page:        page,
		PageSize:    pageSize,
		OrderID:     uint(orderID),
		Status:      strings.TrimSpace(c.Query("status")),
		CreatedFrom: parseAdminDateQuery(c, "created_from"),
		CreatedTo:   parseAdminDateQuery(c, "created_to"),
		WithOrder:   true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list return requests", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, items, pagination)
}

// GetAdminReturn fetches one return request.
func (h *Handler) GetAdminReturn(c *gin.Context) {
	returnID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || returnID == 0 {
		respondError(c, response.CodeBadRequest, "return id is invalid", nil)
		return
	}

	ret, err := h.ReturnRepo.GetByID(uint(returnID))
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load return request", err)
		return
	}
	if ret == nil {
		respondError(c, response.CodeNotFound, "return request not found", nil)
		return
	}

	response.Success(c, ret)
}

// ForceCancelReturnRequest is the admin cancellation payload.
type ForceCancelReturnRequest struct {
	Note string `json:"note" binding:"required"`
}

// ForceCancelAdminReturn cancels a non-terminal return request on behalf of
// the marketplace.
func (h *Handler) ForceCancelAdminReturn(c *gin.Context) {
	returnID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || returnID == 0 {
		respondError(c, response.CodeBadRequest, "return id is invalid", nil)
		return
	}

	var req ForceCancelReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	ret, err := h.ReturnService.ForceCancel(uint(returnID), strings.TrimSpace(req.Note))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReturnNotFound):
			respondError(c, response.CodeNotFound, "return request not found", nil)
		case errors.Is(err, service.ErrReturnCancelNotAllowed):
			respondError(c, response.CodeConflict, "return request cannot be cancelled in this state", nil)
		case errors.Is(err, service.ErrReturnAlreadyResolved):
			respondError(c, response.CodeConflict, "return request was already resolved", nil)
		default:
			respondError(c, response.CodeInternal, "failed to cancel return request", err)
		}
		return
	}

	requestLog(c).Infow("admin_return_force_cancelled",
		"return_id", ret.ID,
		"order_id", ret.OrderID,
	)
	response.Success(c, ret)
}
