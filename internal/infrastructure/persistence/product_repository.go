package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// SearchOffers returns offers of shops that are accepting orders
func (r *GormProductRepository) SearchOffers(ctx context.Context, filter catalog.ProductFilter) ([]catalog.ProductInfo, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.ProductInfo{}).
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Joins("JOIN products ON products.id = product_infos.product_id").
		Where("shops.state = ?", true).
		Preload("Product.Category").
		Preload("Shop").
		Preload("Parameters.Parameter")

	if filter.ShopID != uuid.Nil {
		query = query.Where("product_infos.shop_id = ?", filter.ShopID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(products.name) LIKE LOWER(?) OR LOWER(product_infos.model) LIKE LOWER(?)",
			pattern, pattern,
		)
	}

	var offers []catalog.ProductInfo
	if err := query.Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// FindOfferByID retrieves a single offer with associations preloaded
func (r *GormProductRepository) FindOfferByID(ctx context.Context, id uuid.UUID) (*catalog.ProductInfo, error) {
	var offer catalog.ProductInfo
	err := r.db.WithContext(ctx).
		Preload("Product.Category").
		Preload("Shop").
		Preload("Parameters.Parameter").
		First(&offer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}
