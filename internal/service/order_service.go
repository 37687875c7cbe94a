package service

import (
	"github.com/1983adrian/adimarketplace-sub002/internal/models"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"
)

// OrderService answers order queries for the return workflow. Order creation
// and payment capture live outside this service.
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// OrderListResult is one page of orders.
type OrderListResult struct {
	Items []models.Order `json:"items"`
	Total int64          `json:"total"`
}

// GetOrder fetches one order visible to the acting user.
func (s *OrderService) GetOrder(id uint, actorID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if actorID != 0 && order.BuyerID != actorID && order.SellerID != actorID {
		return nil, ErrReturnForbidden
	}
	return order, nil
}

// ListOrders lists a user's orders on either side of the trade.
func (s *OrderService) ListOrders(filter repository.OrderListFilter) (*OrderListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	items, total, err := s.orderRepo.ListByUser(filter)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Items: items, Total: total}, nil
}

// ListOrdersAdmin lists orders for the back office.
func (s *OrderService) ListOrdersAdmin(filter repository.OrderListFilter) (*OrderListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 200 {
		filter.PageSize = 20
	}
	items, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Items: items, Total: total}, nil
}
