package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/orders/backend/internal/application/catalog"
	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/order"
)

// OrderItemDTO is one line of an order on the wire
type OrderItemDTO struct {
	ID          uuid.UUID            `json:"id"`
	ProductInfo *catalogapp.OfferDTO `json:"product_info"`
	Quantity    int                  `json:"quantity"`
}

// OrderDTO is the wire shape of a basket or order
type OrderDTO struct {
	ID         uuid.UUID         `json:"id"`
	Items      []OrderItemDTO    `json:"ordered_items"`
	State      string            `json:"state"`
	StateLabel string            `json:"state_label,omitempty"`
	CreatedAt  time.Time         `json:"dt"`
	TotalSum   decimal.Decimal   `json:"total_sum"`
	Contact    *identity.Contact `json:"contact,omitempty"`
}

// ToDTO maps a domain order to its wire shape
func ToDTO(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:        o.ID,
		Items:     make([]OrderItemDTO, 0, len(o.Items)),
		State:     string(o.State),
		CreatedAt: o.CreatedAt,
		TotalSum:  o.TotalSum(),
		Contact:   o.Contact,
	}
	if label := o.State.Label(); label != "" {
		dto.StateLabel = label
	}
	for i := range o.Items {
		item := OrderItemDTO{
			ID:       o.Items[i].ID,
			Quantity: o.Items[i].Quantity,
		}
		if o.Items[i].ProductInfo != nil {
			offer := catalogapp.OfferToDTO(o.Items[i].ProductInfo)
			item.ProductInfo = &offer
		}
		dto.Items = append(dto.Items, item)
	}
	return dto
}

// ToDTOs maps a slice of domain orders
func ToDTOs(orders []order.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, ToDTO(&orders[i]))
	}
	return dtos
}

// AddItemInput is one basket line to create
type AddItemInput struct {
	ProductInfoID string `json:"product_info"`
	Quantity      int    `json:"quantity"`
}

// ItemError reports why one basket line was rejected
type ItemError struct {
	ProductInfoID string `json:"product_info"`
	Error         string `json:"error"`
}

// AddItemsResult reports a partially successful basket fill
type AddItemsResult struct {
	Created int         `json:"objects_created"`
	Errors  []ItemError `json:"errors,omitempty"`
}

// QuantityUpdate is one basket line quantity change. The line id travels
// under the product_info key, an API contract clients already rely on.
// Quantity stays untyped because clients send both numbers and strings;
// non-integer values are silently skipped.
type QuantityUpdate struct {
	ID       string `json:"product_info"`
	Quantity any    `json:"quantity"`
}

// RemoveItemInput names one offer to drop from the basket
type RemoveItemInput struct {
	ProductInfoID string `json:"product_info"`
}
