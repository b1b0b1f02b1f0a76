package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/shared"
)

// GormImportRepository implements catalog.ImportRepository using GORM.
// The whole feed application runs inside one transaction so a failing
// import never leaves a shop with a half-replaced catalog.
type GormImportRepository struct {
	db *gorm.DB
}

// NewGormImportRepository creates a new GORM-based import repository
func NewGormImportRepository(db *gorm.DB) *GormImportRepository {
	return &GormImportRepository{db: db}
}

var _ catalog.ImportRepository = (*GormImportRepository)(nil)

// ReplaceShopCatalog applies a feed snapshot: upserts the shop and its
// categories, then drops and recreates every offer of the shop.
func (r *GormImportRepository) ReplaceShopCatalog(ctx context.Context, snapshot *catalog.CatalogSnapshot) (*catalog.ImportStats, error) {
	stats := &catalog.ImportStats{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shop, err := r.upsertShop(tx, snapshot)
		if err != nil {
			return err
		}
		stats.ShopID = shop.ID

		categories, err := r.upsertCategories(tx, snapshot.Categories)
		if err != nil {
			return err
		}
		stats.CategoriesUpsert = len(categories)

		if err := tx.Model(shop).Association("Categories").Replace(categories); err != nil {
			return fmt.Errorf("failed to link categories: %w", err)
		}

		deleted, err := r.deleteShopOffers(tx, shop.ID)
		if err != nil {
			return err
		}
		stats.OffersDeleted = int(deleted)

		created, err := r.createOffers(tx, shop.ID, snapshot.Offers)
		if err != nil {
			return err
		}
		stats.OffersCreated = created

		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// upsertShop finds the owner's shop and refreshes its name and URL, or
// creates it when the owner has none yet.
func (r *GormImportRepository) upsertShop(tx *gorm.DB, snapshot *catalog.CatalogSnapshot) (*catalog.Shop, error) {
	var shop catalog.Shop
	err := tx.First(&shop, "user_id = ?", snapshot.OwnerID).Error
	switch {
	case err == nil:
		shop.Name = snapshot.ShopName
		if snapshot.ShopURL != "" {
			shop.URL = snapshot.ShopURL
		}
		if err := tx.Save(&shop).Error; err != nil {
			return nil, fmt.Errorf("failed to update shop: %w", err)
		}
		return &shop, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		created := catalog.NewShop(snapshot.ShopName, snapshot.OwnerID)
		created.URL = snapshot.ShopURL
		if err := tx.Create(created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, shared.NewDomainError("SHOP_NAME_TAKEN", "Магазин с таким названием уже зарегистрирован")
			}
			return nil, fmt.Errorf("failed to create shop: %w", err)
		}
		return created, nil
	default:
		return nil, err
	}
}

// upsertCategories inserts feed categories or refreshes their names; the
// last imported feed wins on conflicting names.
func (r *GormImportRepository) upsertCategories(tx *gorm.DB, snapshots []catalog.CategorySnapshot) ([]catalog.Category, error) {
	categories := make([]catalog.Category, 0, len(snapshots))
	for _, cs := range snapshots {
		categories = append(categories, catalog.Category{ID: cs.ID, Name: cs.Name})
	}
	if len(categories) == 0 {
		return categories, nil
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert categories: %w", err)
	}
	return categories, nil
}

// deleteShopOffers removes every offer of the shop along with parameters
func (r *GormImportRepository) deleteShopOffers(tx *gorm.DB, shopID uuid.UUID) (int64, error) {
	err := tx.Where(
		"product_info_id IN (?)",
		tx.Model(&catalog.ProductInfo{}).Select("id").Where("shop_id = ?", shopID),
	).Delete(&catalog.ProductParameter{}).Error
	if err != nil {
		return 0, fmt.Errorf("failed to delete offer parameters: %w", err)
	}

	result := tx.Where("shop_id = ?", shopID).Delete(&catalog.ProductInfo{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete offers: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// createOffers recreates the shop's offers from the feed
func (r *GormImportRepository) createOffers(tx *gorm.DB, shopID uuid.UUID, offers []catalog.OfferSnapshot) (int, error) {
	// Parameter rows are shared across offers, cache lookups per import.
	parameterIDs := make(map[string]uuid.UUID)

	created := 0
	for _, offer := range offers {
		product, err := r.upsertProduct(tx, offer.Name, offer.CategoryID)
		if err != nil {
			return created, err
		}

		info := &catalog.ProductInfo{
			BaseEntity: shared.NewBaseEntity(),
			ProductID:  product.ID,
			ShopID:     shopID,
			ExternalID: offer.ExternalID,
			Model:      offer.Model,
			Quantity:   offer.Quantity,
			Price:      offer.Price,
			PriceRRC:   offer.PriceRRC,
		}
		if err := tx.Create(info).Error; err != nil {
			return created, fmt.Errorf("failed to create offer %d: %w", offer.ExternalID, err)
		}
		created++

		for name, value := range offer.Parameters {
			paramID, ok := parameterIDs[name]
			if !ok {
				param, err := r.upsertParameter(tx, name)
				if err != nil {
					return created, err
				}
				paramID = param.ID
				parameterIDs[name] = paramID
			}

			pp := &catalog.ProductParameter{
				BaseEntity:    shared.NewBaseEntity(),
				ProductInfoID: info.ID,
				ParameterID:   paramID,
				Value:         value,
			}
			if err := tx.Create(pp).Error; err != nil {
				return created, fmt.Errorf("failed to create parameter %q: %w", name, err)
			}
		}
	}
	return created, nil
}

// upsertProduct finds a product by (name, category) or creates it
func (r *GormImportRepository) upsertProduct(tx *gorm.DB, name string, categoryID int) (*catalog.Product, error) {
	var product catalog.Product
	err := tx.First(&product, "name = ? AND category_id = ?", name, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		product = catalog.Product{
			BaseEntity: shared.NewBaseEntity(),
			Name:       name,
			CategoryID: categoryID,
		}
		if err := tx.Create(&product).Error; err != nil {
			return nil, fmt.Errorf("failed to create product %q: %w", name, err)
		}
		return &product, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// upsertParameter finds a parameter by name or creates it
func (r *GormImportRepository) upsertParameter(tx *gorm.DB, name string) (*catalog.Parameter, error) {
	var param catalog.Parameter
	err := tx.First(&param, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		param = catalog.Parameter{
			BaseEntity: shared.NewBaseEntity(),
			Name:       name,
		}
		if err := tx.Create(&param).Error; err != nil {
			return nil, fmt.Errorf("failed to create parameter %q: %w", name, err)
		}
		return &param, nil
	}
	if err != nil {
		return nil, err
	}
	return &param, nil
}

// SetOfferPhotoKey records the storage key of an uploaded product photo
func (r *GormImportRepository) SetOfferPhotoKey(ctx context.Context, shopID uuid.UUID, externalID int64, key string) error {
	return r.db.WithContext(ctx).
		Model(&catalog.ProductInfo{}).
		Where("shop_id = ? AND external_id = ?", shopID, externalID).
		Update("photo_key", key).Error
}
