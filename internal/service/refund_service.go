package service

import (
	"context"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/cache"
	"github.com/1983adrian/adimarketplace-sub002/internal/logger"
	"github.com/1983adrian/adimarketplace-sub002/internal/models"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"
)

// RefundService answers refund queries. Refund rows are written only by the
// return resolution flow.
type RefundService struct {
	refundRepo   repository.RefundRepository
	listCacheTTL time.Duration
}

// NewRefundService creates a refund service.
func NewRefundService(refundRepo repository.RefundRepository, listCacheTTL time.Duration) *RefundService {
	return &RefundService{refundRepo: refundRepo, listCacheTTL: listCacheTTL}
}

// ListRefundsInput filters a user's refund list.
type ListRefundsInput struct {
	UserID   uint
	Role     string
	Page     int
	PageSize int
}

// RefundListResult is one page of refunds.
type RefundListResult struct {
	Items []models.Refund `json:"items"`
	Total int64           `json:"total"`
}

// ListRefunds lists refunds visible to a user, cached per list generation.
func (s *RefundService) ListRefunds(ctx context.Context, input ListRefundsInput) (*RefundListResult, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize <= 0 || input.PageSize > 100 {
		input.PageSize = 20
	}

	gen := cache.ReturnListGen(ctx, input.UserID, input.Role)
	key := cache.RefundListKey(input.UserID, input.Role, input.Page, input.PageSize, gen)
	var cached RefundListResult
	if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	items, total, err := s.refundRepo.ListByUser(repository.RefundListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		UserID:   input.UserID,
		Role:     input.Role,
	})
	if err != nil {
		return nil, err
	}
	result := &RefundListResult{Items: items, Total: total}

	if s.listCacheTTL > 0 {
		if err := cache.SetJSON(ctx, key, result, s.listCacheTTL); err != nil {
			logger.Warnw("refund_list_cache_set_failed", "error", err)
		}
	}
	return result, nil
}

// GetRefund fetches one refund visible to the acting user.
func (s *RefundService) GetRefund(id uint, actorID uint) (*models.Refund, error) {
	refund, err := s.refundRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, ErrRefundNotFound
	}
	if actorID != 0 && refund.BuyerID != actorID && refund.SellerID != actorID {
		return nil, ErrReturnForbidden
	}
	return refund, nil
}

// GetRefundForReturn fetches the refund created for a return, if any.
func (s *RefundService) GetRefundForReturn(returnID uint, actorID uint) (*models.Refund, error) {
	refund, err := s.refundRepo.GetByReturnID(returnID)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, ErrRefundNotFound
	}
	if actorID != 0 && refund.BuyerID != actorID && refund.SellerID != actorID {
		return nil, ErrReturnForbidden
	}
	return refund, nil
}

// ListRefundsAdmin lists refunds for the back office.
func (s *RefundService) ListRefundsAdmin(filter repository.RefundListFilter) (*RefundListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 200 {
		filter.PageSize = 20
	}
	items, total, err := s.refundRepo.ListAdmin(filter)
	if err != nil {
		return nil, err
	}
	return &RefundListResult{Items: items, Total: total}, nil
}
