package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/shared"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) SearchOffers(ctx context.Context, filter catalog.ProductFilter) ([]catalog.ProductInfo, error) {
	args := m.Called(ctx, filter)
	if offers := args.Get(0); offers != nil {
		return offers.([]catalog.ProductInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindOfferByID(ctx context.Context, id uuid.UUID) (*catalog.ProductInfo, error) {
	args := m.Called(ctx, id)
	if offer := args.Get(0); offer != nil {
		return offer.(*catalog.ProductInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

// stubStorage presigns deterministic URLs so tests can assert on them.
type stubStorage struct{}

func (stubStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return nil
}

func (stubStorage) Delete(ctx context.Context, key string) error { return nil }

func (stubStorage) Exists(ctx context.Context, key string) (bool, error) { return true, nil }

func (stubStorage) DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.example.com/%s?signed", key), nil
}

func sampleOffer(shopName string, photoKey string) catalog.ProductInfo {
	return catalog.ProductInfo{
		BaseEntity: shared.NewBaseEntity(),
		Model:      "apple/iphone/xs",
		ExternalID: 4216292,
		Quantity:   14,
		Price:      decimal.NewFromInt(110000),
		PriceRRC:   decimal.NewFromInt(116990),
		PhotoKey:   photoKey,
		Product: &catalog.Product{
			Name: "Смартфон Apple iPhone XS 512GB (золотистый)",
			Category: &catalog.Category{
				Name: "Смартфоны",
			},
		},
		Shop: &catalog.Shop{Name: shopName},
	}
}

func TestSearchOffersAttachesPhotoURLs(t *testing.T) {
	ctx := context.Background()

	withPhoto := sampleOffer("Связной", "products/shop/4216292")
	withoutPhoto := sampleOffer("Евросеть", "")

	repo := &mockProductRepo{}
	repo.On("SearchOffers", ctx, mock.AnythingOfType("catalog.ProductFilter")).
		Return([]catalog.ProductInfo{withPhoto, withoutPhoto}, nil)

	svc := NewProductService(repo, stubStorage{}, zap.NewNop())
	offers, err := svc.SearchOffers(ctx, catalog.ProductFilter{Search: "iphone"})
	require.NoError(t, err)
	require.Len(t, offers, 2)

	assert.Equal(t, "https://storage.example.com/products/shop/4216292?signed", offers[0].PhotoURL)
	assert.Empty(t, offers[1].PhotoURL)
	assert.Equal(t, "Связной", offers[0].Shop)
	assert.Equal(t, "Смартфоны", offers[0].Product.Category)
}

func TestSearchOffersWithoutStorage(t *testing.T) {
	ctx := context.Background()

	repo := &mockProductRepo{}
	repo.On("SearchOffers", ctx, mock.AnythingOfType("catalog.ProductFilter")).
		Return([]catalog.ProductInfo{sampleOffer("Связной", "products/shop/4216292")}, nil)

	// no storage configured: offers come back without photo links
	svc := NewProductService(repo, nil, zap.NewNop())
	offers, err := svc.SearchOffers(ctx, catalog.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Empty(t, offers[0].PhotoURL)
}

func TestGetOffer(t *testing.T) {
	ctx := context.Background()
	offer := sampleOffer("Связной", "")

	t.Run("returns the offer", func(t *testing.T) {
		repo := &mockProductRepo{}
		repo.On("FindOfferByID", ctx, offer.ID).Return(&offer, nil)

		svc := NewProductService(repo, stubStorage{}, zap.NewNop())
		dto, err := svc.GetOffer(ctx, offer.ID)
		require.NoError(t, err)
		assert.Equal(t, "apple/iphone/xs", dto.Model)
		assert.Equal(t, int64(4216292), dto.ExternalID)
	})

	t.Run("propagates not found", func(t *testing.T) {
		id := uuid.New()
		repo := &mockProductRepo{}
		repo.On("FindOfferByID", ctx, id).Return(nil, shared.ErrNotFound)

		svc := NewProductService(repo, stubStorage{}, zap.NewNop())
		_, err := svc.GetOffer(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
