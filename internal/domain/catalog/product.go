package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orders/backend/internal/domain/shared"
)

// Product is a catalog item shared across shops. Identity is (name, category);
// per-shop pricing and stock live in ProductInfo.
type Product struct {
	shared.BaseEntity
	Name       string    `gorm:"size:200;not null;uniqueIndex:idx_products_name_category" json:"name"`
	CategoryID int       `gorm:"not null;uniqueIndex:idx_products_name_category" json:"-"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// ProductInfo is a shop's offer of a product: price, stock and the
// feed-supplied external id. A shop lists each external id at most once.
type ProductInfo struct {
	shared.BaseEntity
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ShopID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_infos_shop_external" json:"-"`
	Shop       *Shop           `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	ExternalID int64           `gorm:"not null;uniqueIndex:idx_product_infos_shop_external" json:"external_id"`
	Model      string          `gorm:"size:100" json:"model"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	PriceRRC   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_rrc"`
	// PhotoKey is the object storage key of the product photo, empty when
	// the feed carried no photo or the upload failed.
	PhotoKey   string             `gorm:"size:255" json:"-"`
	Parameters []ProductParameter `gorm:"foreignKey:ProductInfoID" json:"product_parameters,omitempty"`
}

// TableName returns the database table name
func (ProductInfo) TableName() string {
	return "product_infos"
}

// Parameter is a named product characteristic (e.g. "Диагональ (дюйм)").
type Parameter struct {
	shared.BaseEntity
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

// TableName returns the database table name
func (Parameter) TableName() string {
	return "parameters"
}

// ProductParameter is a parameter value attached to a specific offer.
type ProductParameter struct {
	shared.BaseEntity
	ProductInfoID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_product_parameters_info_param" json:"-"`
	ParameterID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_product_parameters_info_param" json:"-"`
	Parameter     *Parameter `gorm:"foreignKey:ParameterID" json:"parameter,omitempty"`
	Value         string     `gorm:"size:100;not null" json:"value"`
}

// TableName returns the database table name
func (ProductParameter) TableName() string {
	return "product_parameters"
}
