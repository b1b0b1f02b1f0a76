// Package feed fetches and parses partner price-list feeds in YAML form.
package feed

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/shared"
)

// ErrInvalidFeed is returned for bodies that are not a valid price list.
var ErrInvalidFeed = shared.NewDomainError("INVALID_FEED", "Неверный формат прайс-листа")

// Price is a decimal that unmarshals from any YAML scalar: feeds carry
// prices as bare numbers, quoted strings or floats interchangeably.
type Price struct {
	decimal.Decimal
}

// UnmarshalYAML implements yaml.Unmarshaler
func (p *Price) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("price must be a scalar, got %v", node.Kind)
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", node.Value, err)
	}
	p.Decimal = d
	return nil
}

// Scalar is a string that unmarshals from any YAML scalar. Parameter
// values mix strings, numbers and booleans; all are kept as text.
type Scalar string

// UnmarshalYAML implements yaml.Unmarshaler
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("parameter value must be a scalar, got %v", node.Kind)
	}
	*s = Scalar(node.Value)
	return nil
}

// Category is a category entry of a feed
type Category struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// Good is one offer of a feed
type Good struct {
	ID         int64             `yaml:"id"`
	Category   int               `yaml:"category"`
	Model      string            `yaml:"model"`
	Name       string            `yaml:"name"`
	Price      Price             `yaml:"price"`
	PriceRRC   Price             `yaml:"price_rrc"`
	Quantity   int               `yaml:"quantity"`
	Photo      string            `yaml:"photo"`
	Parameters map[string]Scalar `yaml:"parameters"`
}

// Feed is a parsed partner price list
type Feed struct {
	Shop       string     `yaml:"shop"`
	URL        string     `yaml:"url"`
	Categories []Category `yaml:"categories"`
	Goods      []Good     `yaml:"goods"`
}

// Parse decodes a YAML price list. Any undecodable body or a feed without
// a shop name is rejected as invalid.
func Parse(data []byte) (*Feed, error) {
	var f Feed
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}
	if f.Shop == "" {
		return nil, fmt.Errorf("%w: пустое название магазина", ErrInvalidFeed)
	}
	return &f, nil
}

// Snapshot converts the feed into an import snapshot for the given owner
func (f *Feed) Snapshot(ownerID uuid.UUID) *catalog.CatalogSnapshot {
	snapshot := &catalog.CatalogSnapshot{
		ShopName: f.Shop,
		ShopURL:  f.URL,
		OwnerID:  ownerID,
	}

	for _, c := range f.Categories {
		snapshot.Categories = append(snapshot.Categories, catalog.CategorySnapshot{
			ID:   c.ID,
			Name: c.Name,
		})
	}

	for _, g := range f.Goods {
		params := make(map[string]string, len(g.Parameters))
		for name, value := range g.Parameters {
			params[name] = string(value)
		}
		snapshot.Offers = append(snapshot.Offers, catalog.OfferSnapshot{
			ExternalID: g.ID,
			CategoryID: g.Category,
			Name:       g.Name,
			Model:      g.Model,
			Quantity:   g.Quantity,
			Price:      g.Price.Decimal,
			PriceRRC:   g.PriceRRC.Decimal,
			PhotoURL:   g.Photo,
			Parameters: params,
		})
	}

	return snapshot
}
