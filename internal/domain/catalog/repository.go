package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Shop, error)
	Save(ctx context.Context, shop *Shop) error
	// UpdateState flips the accepting-orders flag for the user's shop.
	UpdateState(ctx context.Context, userID uuid.UUID, state bool) error
}

// ProductFilter narrows offer searches. Zero values mean "no restriction".
type ProductFilter struct {
	ShopID     uuid.UUID
	CategoryID int
	// Search matches against product name and offer model, case-insensitive.
	Search string
}

// ProductRepository defines the read side of the catalog
type ProductRepository interface {
	// SearchOffers returns offers of shops that are currently accepting
	// orders, with product, shop and parameters preloaded.
	SearchOffers(ctx context.Context, filter ProductFilter) ([]ProductInfo, error)
	FindOfferByID(ctx context.Context, id uuid.UUID) (*ProductInfo, error)
}

// OfferSnapshot is one good from a partner feed, normalized for import.
type OfferSnapshot struct {
	ExternalID int64
	CategoryID int
	Name       string
	Model      string
	Quantity   int
	Price      decimal.Decimal
	PriceRRC   decimal.Decimal
	PhotoURL   string
	Parameters map[string]string
}

// CategorySnapshot is one category entry from a partner feed.
type CategorySnapshot struct {
	ID   int
	Name string
}

// CatalogSnapshot is a parsed partner feed ready to be applied to a shop.
type CatalogSnapshot struct {
	ShopName   string
	ShopURL    string
	OwnerID    uuid.UUID
	Categories []CategorySnapshot
	Offers     []OfferSnapshot
}

// ImportStats reports what a catalog import changed.
type ImportStats struct {
	ShopID           uuid.UUID `json:"-"`
	CategoriesUpsert int       `json:"categories"`
	OffersCreated    int       `json:"objects_created"`
	OffersDeleted    int       `json:"objects_deleted"`
}

// ImportRepository applies a feed snapshot to the store. The whole
// replacement (shop upsert, category upsert, offer delete+recreate) runs in
// a single transaction: a failed import leaves the previous catalog intact.
type ImportRepository interface {
	ReplaceShopCatalog(ctx context.Context, snapshot *CatalogSnapshot) (*ImportStats, error)
	// SetOfferPhotoKey records the storage key of an uploaded product photo.
	SetOfferPhotoKey(ctx context.Context, shopID uuid.UUID, externalID int64, key string) error
}
