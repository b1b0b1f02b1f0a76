package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orders/backend/internal/domain/catalog"
)

func sampleSnapshot(ownerID uuid.UUID) *catalog.CatalogSnapshot {
	return &catalog.CatalogSnapshot{
		ShopName: "Связной",
		ShopURL:  "https://svyaznoy.ru",
		OwnerID:  ownerID,
		Categories: []catalog.CategorySnapshot{
			{ID: 224, Name: "Смартфоны"},
			{ID: 15, Name: "Аксессуары"},
		},
		Offers: []catalog.OfferSnapshot{
			{
				ExternalID: 4216292,
				CategoryID: 224,
				Name:       "Смартфон Apple iPhone XS Max 512GB",
				Model:      "apple/iphone/xs-max",
				Quantity:   14,
				Price:      decimal.NewFromInt(110000),
				PriceRRC:   decimal.NewFromInt(116990),
				Parameters: map[string]string{
					"Диагональ (дюйм)": "6.5",
					"Цвет":             "золотистый",
				},
			},
			{
				ExternalID: 4216313,
				CategoryID: 15,
				Name:       "Чехол для iPhone XS Max",
				Model:      "apple/case",
				Quantity:   50,
				Price:      decimal.NewFromInt(1500),
				PriceRRC:   decimal.NewFromInt(1990),
			},
		},
	}
}

func TestReplaceShopCatalog(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormImportRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	stats, err := repo.ReplaceShopCatalog(ctx, sampleSnapshot(ownerID))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CategoriesUpsert)
	assert.Equal(t, 2, stats.OffersCreated)
	assert.Equal(t, 0, stats.OffersDeleted)

	var shop catalog.Shop
	require.NoError(t, db.Preload("Categories").First(&shop, "user_id = ?", ownerID).Error)
	assert.Equal(t, "Связной", shop.Name)
	assert.True(t, shop.State)
	assert.Len(t, shop.Categories, 2)

	var infos []catalog.ProductInfo
	require.NoError(t, db.Preload("Parameters.Parameter").Find(&infos, "shop_id = ?", shop.ID).Error)
	require.Len(t, infos, 2)

	var params int64
	require.NoError(t, db.Model(&catalog.ProductParameter{}).Count(&params).Error)
	assert.Equal(t, int64(2), params)
}

func TestReplaceShopCatalogReimport(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormImportRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	_, err := repo.ReplaceShopCatalog(ctx, sampleSnapshot(ownerID))
	require.NoError(t, err)

	// second import replaces the offers instead of stacking them
	snapshot := sampleSnapshot(ownerID)
	snapshot.Offers = snapshot.Offers[:1]
	stats, err := repo.ReplaceShopCatalog(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.OffersDeleted)
	assert.Equal(t, 1, stats.OffersCreated)

	var count int64
	require.NoError(t, db.Model(&catalog.ProductInfo{}).Where("shop_id = ?", stats.ShopID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// only one shop row exists for the owner
	var shops int64
	require.NoError(t, db.Model(&catalog.Shop{}).Where("user_id = ?", ownerID).Count(&shops).Error)
	assert.Equal(t, int64(1), shops)
}

func TestReplaceShopCatalogEmptyGoods(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormImportRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	_, err := repo.ReplaceShopCatalog(ctx, sampleSnapshot(ownerID))
	require.NoError(t, err)

	// a feed with no goods clears the shop's offers entirely
	snapshot := sampleSnapshot(ownerID)
	snapshot.Offers = nil
	stats, err := repo.ReplaceShopCatalog(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.OffersDeleted)
	assert.Equal(t, 0, stats.OffersCreated)

	var count int64
	require.NoError(t, db.Model(&catalog.ProductInfo{}).Where("shop_id = ?", stats.ShopID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestReplaceShopCatalogNameTaken(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormImportRepository(db)
	ctx := context.Background()

	_, err := repo.ReplaceShopCatalog(ctx, sampleSnapshot(uuid.New()))
	require.NoError(t, err)

	// a different owner importing under the same shop name is refused
	_, err = repo.ReplaceShopCatalog(ctx, sampleSnapshot(uuid.New()))
	require.Error(t, err)
	assert.ErrorContains(t, err, "Магазин с таким названием")
}

func TestSetOfferPhotoKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormImportRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	stats, err := repo.ReplaceShopCatalog(ctx, sampleSnapshot(ownerID))
	require.NoError(t, err)

	key := "products/" + stats.ShopID.String() + "/4216292"
	require.NoError(t, repo.SetOfferPhotoKey(ctx, stats.ShopID, 4216292, key))

	var info catalog.ProductInfo
	require.NoError(t, db.First(&info, "shop_id = ? AND external_id = ?", stats.ShopID, 4216292).Error)
	assert.Equal(t, key, info.PhotoKey)
}
