package repository

import (
	"errors"

	"github.com/1983adrian/adimarketplace-sub002/internal/models"

	"gorm.io/gorm"
)

// ListingRepository is the data access interface for listings.
type ListingRepository interface {
	GetByID(id uint) (*models.Listing, error)
	Create(listing *models.Listing) error
	Update(listing *models.Listing) error
	UpdateStatus(id uint, status string) error
	ListBySeller(sellerID uint, page, pageSize int) ([]models.Listing, int64, error)
	WithTx(tx *gorm.DB) *GormListingRepository
}

// GormListingRepository is the GORM implementation.
type GormListingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a listing repository.
func NewListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormListingRepository) WithTx(tx *gorm.DB) *GormListingRepository {
	if tx == nil {
		return r
	}
	return &GormListingRepository{db: tx}
}

// GetByID fetches a listing by ID.
func (r *GormListingRepository) GetByID(id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &listing, nil
}

// Create inserts a listing.
func (r *GormListingRepository) Create(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

// Update saves a listing.
func (r *GormListingRepository) Update(listing *models.Listing) error {
	return r.db.Save(listing).Error
}

// UpdateStatus updates a listing status.
func (r *GormListingRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Listing{}).Where("id = ?", id).Update("status", status).Error
}

// ListBySeller lists a seller's listings.
func (r *GormListingRepository) ListBySeller(sellerID uint, page, pageSize int) ([]models.Listing, int64, error) {
	query := r.db.Model(&models.Listing{}).Where("seller_id = ?", sellerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var listings []models.Listing
	if err := query.Order("id DESC").Find(&listings).Error; err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}
