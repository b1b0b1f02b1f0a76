package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/shared"
)

// newTestDB opens an in-memory sqlite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

// seedOffer creates a category, shop, product and one offer with the given
// price, returning the offer.
func seedOffer(t *testing.T, db *gorm.DB, shopName string, ownerID uuid.UUID, price string) *catalog.ProductInfo {
	t.Helper()

	category := catalog.Category{ID: int(uuid.New().ID() % 100000), Name: "Смартфоны " + shopName}
	require.NoError(t, db.FirstOrCreate(&category, catalog.Category{ID: category.ID}).Error)

	shop := catalog.NewShop(shopName, ownerID)
	require.NoError(t, db.Create(shop).Error)

	product := catalog.Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       "Телефон " + shopName,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&product).Error)

	priceDec, err := decimal.NewFromString(price)
	require.NoError(t, err)

	info := catalog.ProductInfo{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  product.ID,
		ShopID:     shop.ID,
		ExternalID: int64(uuid.New().ID()),
		Model:      "model-" + shopName,
		Quantity:   10,
		Price:      priceDec,
		PriceRRC:   priceDec,
	}
	require.NoError(t, db.Create(&info).Error)
	return &info
}
