package repository

import (
	"errors"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/constants"
	"github.com/1983adrian/adimarketplace-sub002/internal/models"

	"gorm.io/gorm"
)

// ReturnRepository is the data access interface for return requests.
type ReturnRepository interface {
	Create(ret *models.ReturnRequest) error
	GetByID(id uint) (*models.ReturnRequest, error)
	GetOpenByOrderID(orderID uint) (*models.ReturnRequest, error)
	ListByUser(filter ReturnListFilter) ([]models.ReturnRequest, int64, error)
	ListAdmin(filter ReturnListFilter) ([]models.ReturnRequest, int64, error)
	ListStalePending(before time.Time, limit int) ([]models.ReturnRequest, error)
	UpdateStatusIf(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error)
	Update(ret *models.ReturnRequest) error
	WithTx(tx *gorm.DB) *GormReturnRepository
}

// GormReturnRepository is the GORM implementation.
type GormReturnRepository struct {
	db *gorm.DB
}

// NewReturnRepository creates a return repository.
func NewReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormReturnRepository) WithTx(tx *gorm.DB) *GormReturnRepository {
	if tx == nil {
		return r
	}
	return &GormReturnRepository{db: tx}
}

// Create inserts a return request.
func (r *GormReturnRepository) Create(ret *models.ReturnRequest) error {
	return r.db.Create(ret).Error
}

// GetByID fetches a return request with its order.
func (r *GormReturnRepository) GetByID(id uint) (*models.ReturnRequest, error) {
	var ret models.ReturnRequest
	if err := r.db.Preload("Order").Preload("Order.Listing").First(&ret, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ret, nil
}

// GetOpenByOrderID fetches the non-cancelled return request for an order.
func (r *GormReturnRepository) GetOpenByOrderID(orderID uint) (*models.ReturnRequest, error) {
	var ret models.ReturnRequest
	err := r.db.
		Where("order_id = ? AND status <> ?", orderID, constants.ReturnStatusCancelled).
		Order("id desc").
		First(&ret).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ret, nil
}

func (r *GormReturnRepository) applyFilter(query *gorm.DB, filter ReturnListFilter) *gorm.DB {
	if filter.UserID != 0 {
		switch filter.Role {
		case constants.ReturnRoleSeller:
			query = query.Where("seller_id = ?", filter.UserID)
		case constants.ReturnRoleBuyer:
			query = query.Where("buyer_id = ?", filter.UserID)
		default:
			query = query.Where("buyer_id = ? OR seller_id = ?", filter.UserID, filter.UserID)
		}
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// ListByUser lists return requests visible to a user in a given role.
func (r *GormReturnRepository) ListByUser(filter ReturnListFilter) ([]models.ReturnRequest, int64, error) {
	query := r.applyFilter(r.db.Model(&models.ReturnRequest{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if filter.WithOrder {
		query = query.Preload("Order").Preload("Order.Listing")
	}

	var returns []models.ReturnRequest
	if err := query.Order("created_at desc, id desc").Find(&returns).Error; err != nil {
		return nil, 0, err
	}
	return returns, total, nil
}

// ListAdmin lists return requests for the back office.
func (r *GormReturnRepository) ListAdmin(filter ReturnListFilter) ([]models.ReturnRequest, int64, error) {
	filter.UserID = 0
	filter.WithOrder = true
	return r.ListByUser(filter)
}

// ListStalePending lists pending returns created before the given time.
func (r *GormReturnRepository) ListStalePending(before time.Time, limit int) ([]models.ReturnRequest, error) {
	if limit <= 0 {
		limit = 100
	}
	var returns []models.ReturnRequest
	err := r.db.
		Where("status = ? AND created_at < ?", constants.ReturnStatusPending, before).
		Order("id asc").
		Limit(limit).
		Find(&returns).Error
	if err != nil {
		return nil, err
	}
	return returns, nil
}

// UpdateStatusIf moves a return from one status to another in a single
// conditional UPDATE. It reports false when the row was not in fromStatus,
// which callers treat as a lost race.
func (r *GormReturnRepository) UpdateStatusIf(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	result := r.db.Model(&models.ReturnRequest{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Update saves a return request.
func (r *GormReturnRepository) Update(ret *models.ReturnRequest) error {
	return r.db.Save(ret).Error
}
