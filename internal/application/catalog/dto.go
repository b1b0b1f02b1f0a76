package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orders/backend/internal/domain/catalog"
)

// ProductDTO is the nested product part of an offer
type ProductDTO struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ProductParameterDTO is one characteristic of an offer
type ProductParameterDTO struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
}

// OfferDTO is the wire shape of a shop's offer
type OfferDTO struct {
	ID         uuid.UUID             `json:"id"`
	Model      string                `json:"model"`
	ExternalID int64                 `json:"external_id"`
	Product    ProductDTO            `json:"product"`
	Shop       string                `json:"shop"`
	Quantity   int                   `json:"quantity"`
	Price      decimal.Decimal       `json:"price"`
	PriceRRC   decimal.Decimal       `json:"price_rrc"`
	PhotoURL   string                `json:"photo,omitempty"`
	Parameters []ProductParameterDTO `json:"product_parameters"`
}

// OfferToDTO maps a domain offer to its wire shape
func OfferToDTO(info *catalog.ProductInfo) OfferDTO {
	dto := OfferDTO{
		ID:         info.ID,
		Model:      info.Model,
		ExternalID: info.ExternalID,
		Quantity:   info.Quantity,
		Price:      info.Price,
		PriceRRC:   info.PriceRRC,
		Parameters: make([]ProductParameterDTO, 0, len(info.Parameters)),
	}
	if info.Product != nil {
		dto.Product.Name = info.Product.Name
		if info.Product.Category != nil {
			dto.Product.Category = info.Product.Category.Name
		}
	}
	if info.Shop != nil {
		dto.Shop = info.Shop.Name
	}
	for _, pp := range info.Parameters {
		name := ""
		if pp.Parameter != nil {
			name = pp.Parameter.Name
		}
		dto.Parameters = append(dto.Parameters, ProductParameterDTO{
			Parameter: name,
			Value:     pp.Value,
		})
	}
	return dto
}

// ShopDTO is the wire shape of a partner's shop record
type ShopDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	URL   string    `json:"url,omitempty"`
	State bool      `json:"state"`
}

// ShopToDTO maps a domain shop to its wire shape
func ShopToDTO(shop *catalog.Shop) ShopDTO {
	return ShopDTO{
		ID:    shop.ID,
		Name:  shop.Name,
		URL:   shop.URL,
		State: shop.State,
	}
}
