package public

import (
	"strconv"
	"strings"

	"github.com/1983adrian/adimarketplace-sub002/internal/http/response"
	"github.com/1983adrian/adimarketplace-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

// FileReturnRequest is the buyer's return filing payload.
type FileReturnRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

// ResolveReturnRequest is the seller's decision payload.
type ResolveReturnRequest struct {
	Decision string `json:"decision" binding:"required"`
	Note     string `json:"note"`
	Amount   string `json:"amount"`
}

// AddTrackingRequest is the buyer's return shipment payload.
type AddTrackingRequest struct {
	Carrier        string `json:"carrier" binding:"required"`
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// ListReturns lists the caller's return requests.
func (h *Handler) ListReturns(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	result, err := h.ReturnService.ListReturns(c.Request.Context(), service.ListReturnsInput{
		UserID:   uid,
		Role:     strings.TrimSpace(c.Query("role")),
		Status:   strings.TrimSpace(c.Query("status")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list return requests", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, result.Total)
	response.SuccessWithPage(c, result.Items, pagination)
}

// GetReturn fetches one return request visible to the caller.
func (h *Handler) GetReturn(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	returnID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || returnID == 0 {
		respondError(c, response.CodeBadRequest, "return id is invalid", nil)
		return
	}

	ret, err := h.ReturnService.GetReturn(uint(returnID), uid)
	if err != nil {
		respondWithMappedError(c, err, returnCommonErrorRules, response.CodeInternal, "failed to load return request")
		return
	}

	response.Success(c, ret)
}

// FileReturn opens a return request for one of the caller's orders.
func (h *Handler) FileReturn(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req FileReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	ret, err := h.ReturnService.FileReturn(service.FileReturnInput{
		OrderID: req.OrderID,
		BuyerID: uid,
		Reason:  req.Reason,
	})
	if err != nil {
		respondReturnFileError(c, err)
		return
	}

	response.Success(c, ret)
}

// ResolveReturn records the seller's decision on a pending return.
func (h *Handler) ResolveReturn(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	returnID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || returnID == 0 {
		respondError(c, response.CodeBadRequest, "return id is invalid", nil)
		return
	}

	var req ResolveReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	ret, err := h.ReturnService.Resolve(service.ResolveInput{
		ReturnID: uint(returnID),
		SellerID: uid,
		Decision: strings.TrimSpace(req.Decision),
		Note:     strings.TrimSpace(req.Note),
		Amount:   strings.TrimSpace(req.Amount),
	})
	if err != nil {
		respondReturnResolveError(c, err)
		return
	}

	response.Success(c, ret)
}

// AddReturnTracking stores the buyer's return shipment tracking.
func (h *Handler) AddReturnTracking(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	returnID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || returnID == 0 {
		respondError(c, response.CodeBadRequest, "return id is invalid", nil)
		return
	}

	var req AddTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	ret, err := h.ReturnService.AddTracking(uint(returnID), uid, req.Carrier, req.TrackingNumber)
	if err != nil {
		respondReturnTrackingError(c, err)
		return
	}

	response.Success(c, ret)
}

// ConfirmReturnReceived lets the seller confirm the returned item arrived.
func (h *Handler) ConfirmReturnReceived(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	returnID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || returnID == 0 {
		respondError(c, response.CodeBadRequest, "return id is invalid", nil)
		return
	}

	ret, err := h.ReturnService.ConfirmReceived(uint(returnID), uid)
	if err != nil {
		respondReturnConfirmError(c, err)
		return
	}

	response.Success(c, ret)
}

// CancelReturn lets the buyer withdraw their own return request.
func (h *Handler) CancelReturn(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	returnID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || returnID == 0 {
		respondError(c, response.CodeBadRequest, "return id is invalid", nil)
		return
	}

	ret, err := h.ReturnService.Cancel(uint(returnID), uid)
	if err != nil {
		respondReturnCancelError(c, err)
		return
	}

	response.Success(c, ret)
}

// GetReturnAddress shows the seller's return address to the buyer of an
// approved return.
func (h *Handler) GetReturnAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	returnID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || returnID == 0 {
		respondError(c, response.CodeBadRequest, "return id is invalid", nil)
		return
	}

	address, err := h.ReturnService.GetSellerReturnAddress(uint(returnID), uid)
	if err != nil {
		respondReturnAddressError(c, err)
		return
	}

	response.Success(c, address)
}

// ListCarriers lists the supported return shipment carriers.
func (h *Handler) ListCarriers(c *gin.Context) {
	response.Success(c, service.Carriers())
}
