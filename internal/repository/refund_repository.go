package repository

import (
	"errors"

	"github.com/1983adrian/adimarketplace-sub002/internal/constants"
	"github.com/1983adrian/adimarketplace-sub002/internal/models"

	"gorm.io/gorm"
)

// RefundRepository is the data access interface for refunds.
type RefundRepository interface {
	Create(refund *models.Refund) error
	GetByID(id uint) (*models.Refund, error)
	GetByReturnID(returnID uint) (*models.Refund, error)
	ListByUser(filter RefundListFilter) ([]models.Refund, int64, error)
	ListAdmin(filter RefundListFilter) ([]models.Refund, int64, error)
	WithTx(tx *gorm.DB) *GormRefundRepository
}

// GormRefundRepository is the GORM implementation.
type GormRefundRepository struct {
	db *gorm.DB
}

// NewRefundRepository creates a refund repository.
func NewRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormRefundRepository) WithTx(tx *gorm.DB) *GormRefundRepository {
	if tx == nil {
		return r
	}
	return &GormRefundRepository{db: tx}
}

// Create inserts a refund.
func (r *GormRefundRepository) Create(refund *models.Refund) error {
	return r.db.Create(refund).Error
}

// GetByID fetches a refund by ID.
func (r *GormRefundRepository) GetByID(id uint) (*models.Refund, error) {
	var refund models.Refund
	if err := r.db.First(&refund, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &refund, nil
}

// GetByReturnID fetches the refund produced by a return request.
func (r *GormRefundRepository) GetByReturnID(returnID uint) (*models.Refund, error) {
	var refund models.Refund
	if err := r.db.Where("return_id = ?", returnID).First(&refund).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &refund, nil
}

func (r *GormRefundRepository) applyFilter(query *gorm.DB, filter RefundListFilter) *gorm.DB {
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
	if filter.ReturnID != 0 {
		query = query.Where("return_id = ?", filter.ReturnID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// ListByUser lists refunds visible to a user in a given role.
func (r *GormRefundRepository) ListByUser(filter RefundListFilter) ([]models.Refund, int64, error) {
	query := r.applyFilter(r.db.Model(&models.Refund{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var refunds []models.Refund
	if err := query.Order("created_at desc, id desc").Find(&refunds).Error; err != nil {
		return nil, 0, err
	}
	return refunds, total, nil
}

// ListAdmin lists refunds for the back office.
func (r *GormRefundRepository) ListAdmin(filter RefundListFilter) ([]models.Refund, int64, error) {
	filter.UserID = 0
	return r.ListByUser(filter)
}
