package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orders/backend/internal/domain/order"
	"github.com/orders/backend/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM-based order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

var _ order.Repository = (*GormOrderRepository)(nil)

// preloadItems attaches the standard association set for order reads
func (r *GormOrderRepository) preloadItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items.ProductInfo.Product.Category").
		Preload("Items.ProductInfo.Shop").
		Preload("Contact")
}

// GetOrCreateBasket returns the user's basket, creating it if absent.
// The partial unique index on (user_id) WHERE state='basket' makes the
// create race-safe: the loser of a concurrent create re-reads the winner's row.
func (r *GormOrderRepository) GetOrCreateBasket(ctx context.Context, userID uuid.UUID) (*order.Order, error) {
	basket, err := r.FindBasket(ctx, userID)
	if err == nil {
		return basket, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	created := order.NewBasket(userID)
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindBasket(ctx, userID)
		}
		return nil, err
	}
	return created, nil
}

// FindBasket returns the user's basket with associations preloaded
func (r *GormOrderRepository) FindBasket(ctx context.Context, userID uuid.UUID) (*order.Order, error) {
	var basket order.Order
	err := r.preloadItems(r.db.WithContext(ctx)).
		First(&basket, "user_id = ? AND state = ?", userID, order.StateBasket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &basket, nil
}

// AddItem appends an offer to the order
func (r *GormOrderRepository) AddItem(ctx context.Context, orderID, productInfoID uuid.UUID, quantity int) error {
	item := &order.OrderItem{
		BaseEntity:    shared.NewBaseEntity(),
		OrderID:       orderID,
		ProductInfoID: productInfoID,
		Quantity:      quantity,
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UpdateItemQuantity sets the quantity of a basket line
func (r *GormOrderRepository) UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&order.OrderItem{}).
		Where("id = ? AND order_id = ?", itemID, orderID).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

// DeleteItems removes the order's lines referencing the given offers
func (r *GormOrderRepository) DeleteItems(ctx context.Context, orderID uuid.UUID, productInfoIDs []uuid.UUID) (int64, error) {
	if len(productInfoIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("order_id = ? AND product_info_id IN ?", orderID, productInfoIDs).
		Delete(&order.OrderItem{})
	return result.RowsAffected, result.Error
}

// ListByUser returns the user's non-basket orders, newest first
func (r *GormOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter order.ListFilter) ([]order.Order, error) {
	query := r.preloadItems(r.db.WithContext(ctx)).
		Where("user_id = ? AND state <> ?", userID, order.StateBasket).
		Order("created_at DESC")

	if filter.OrderID != uuid.Nil {
		query = query.Where("id = ?", filter.OrderID)
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}

	var orders []order.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByID returns a single order with associations preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	err := r.preloadItems(r.db.WithContext(ctx)).First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// ConfirmBasket atomically moves the basket into the new state. The state
// predicate makes concurrent confirmations resolve to a single winner.
func (r *GormOrderRepository) ConfirmBasket(ctx context.Context, orderID, userID, contactID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND user_id = ? AND state = ?", orderID, userID, order.StateBasket).
		Updates(map[string]any{
			"state":      order.StateNew,
			"contact_id": contactID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateState sets the order state unconditionally (admin operation)
func (r *GormOrderRepository) UpdateState(ctx context.Context, orderID uuid.UUID, state order.State) error {
	result := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ?", orderID).
		Update("state", state)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListByShop returns non-basket orders containing at least one offer of the
// shop. Only the shop's own lines are loaded, so totals cover exactly the
// part of the order this supplier fulfils.
func (r *GormOrderRepository) ListByShop(ctx context.Context, shopID uuid.UUID) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).
		Where("state <> ?", order.StateBasket).
		Where("id IN (?)", r.db.
			Model(&order.OrderItem{}).
			Select("DISTINCT order_items.order_id").
			Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
			Where("product_infos.shop_id = ?", shopID),
		).
		Preload("Items", "product_info_id IN (?)", r.db.
			Table("product_infos").
			Select("id").
			Where("shop_id = ?", shopID),
		).
		Preload("Items.ProductInfo.Product.Category").
		Preload("Items.ProductInfo.Shop").
		Preload("Contact").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
