package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/shared"
)

// GormShopRepository implements catalog.ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GORM-based shop repository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

var _ catalog.ShopRepository = (*GormShopRepository)(nil)

// FindByID retrieves a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindByUserID retrieves the shop owned by the given user
func (r *GormShopRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).First(&shop, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// Save persists a shop
func (r *GormShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// UpdateState flips the accepting-orders flag for the user's shop
func (r *GormShopRepository) UpdateState(ctx context.Context, userID uuid.UUID, state bool) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Shop{}).
		Where("user_id = ?", userID).
		Update("state", state)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
