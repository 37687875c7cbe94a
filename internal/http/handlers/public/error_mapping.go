package public

import (
	"errors"

	"github.com/1983adrian/adimarketplace-sub002/internal/http/response"
	"github.com/1983adrian/adimarketplace-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a service error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var returnCommonErrorRules = []mappedHandlerError{
	{target: service.ErrReturnNotFound, code: response.CodeNotFound, msg: "return request not found"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrReturnForbidden, code: response.CodeForbidden, msg: "not your return request"},
	{target: service.ErrReturnNotAllowed, code: response.CodeForbidden, msg: "action not allowed for this party"},
	{target: service.ErrReturnAlreadyResolved, code: response.CodeConflict, msg: "return request was already resolved"},
}

var returnFileErrorRules = []mappedHandlerError{
	{target: service.ErrReasonRequired, code: response.CodeBadRequest, msg: "return reason is required"},
	{target: service.ErrOrderNotReturnable, code: response.CodeBadRequest, msg: "order is not eligible for return"},
	{target: service.ErrReturnWindowClosed, code: response.CodeBadRequest, msg: "return window has closed"},
	{target: service.ErrReturnAlreadyOpen, code: response.CodeConflict, msg: "order already has an open return request"},
}

var returnResolveErrorRules = []mappedHandlerError{
	{target: service.ErrReturnNotPending, code: response.CodeConflict, msg: "return request is no longer pending"},
	{target: service.ErrDecisionInvalid, code: response.CodeBadRequest, msg: "unknown resolution decision"},
	{target: service.ErrRefundAmountRequired, code: response.CodeBadRequest, msg: "refund amount is required"},
	{target: service.ErrRefundAmountInvalid, code: response.CodeBadRequest, msg: "refund amount is invalid"},
}

var returnTrackingErrorRules = []mappedHandlerError{
	{target: service.ErrReturnNotApproved, code: response.CodeConflict, msg: "return request is not approved"},
	{target: service.ErrTrackingNotAllowed, code: response.CodeConflict, msg: "tracking cannot be added in this state"},
	{target: service.ErrTrackingInvalid, code: response.CodeBadRequest, msg: "tracking number is invalid"},
	{target: service.ErrCarrierUnknown, code: response.CodeBadRequest, msg: "unknown carrier"},
}

var returnCancelErrorRules = []mappedHandlerError{
	{target: service.ErrReturnCancelNotAllowed, code: response.CodeConflict, msg: "return request cannot be cancelled in this state"},
}

var returnConfirmErrorRules = []mappedHandlerError{
	{target: service.ErrReturnNotApproved, code: response.CodeConflict, msg: "return request is not approved"},
}

var returnAddressErrorRules = []mappedHandlerError{
	{target: service.ErrReturnNotApproved, code: response.CodeConflict, msg: "return request is not approved"},
	{target: service.ErrSellerProfileNotSet, code: response.CodeNotFound, msg: "seller has not set a return address"},
}

func respondReturnFileError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(returnCommonErrorRules, returnFileErrorRules), response.CodeInternal, "failed to file return request")
}

func respondReturnResolveError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(returnCommonErrorRules, returnResolveErrorRules), response.CodeInternal, "failed to resolve return request")
}

func respondReturnTrackingError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(returnCommonErrorRules, returnTrackingErrorRules), response.CodeInternal, "failed to add tracking")
}

func respondReturnConfirmError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(returnCommonErrorRules, returnConfirmErrorRules), response.CodeInternal, "failed to confirm return received")
}

func respondReturnCancelError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(returnCommonErrorRules, returnCancelErrorRules), response.CodeInternal, "failed to cancel return request")
}

func respondReturnAddressError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(returnCommonErrorRules, returnAddressErrorRules), response.CodeInternal, "failed to load return address")
}
