// Package order contains the basket and order domain: a single aggregate
// that starts life as a user's basket and moves through fulfilment states.
package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/shared"
)

// State is the lifecycle state of an order
type State string

// Order states. "basket" is the pre-order accumulation state; the rest are
// fulfilment states driven by administrators.
const (
	StateBasket    State = "basket"
	StateNew       State = "new"
	StateConfirmed State = "confirmed"
	StateAssembled State = "assembled"
	StateSent      State = "sent"
	StateDelivered State = "delivered"
	StateCanceled  State = "canceled"
)

// stateLabels maps states to their user-facing Russian labels.
var stateLabels = map[State]string{
	StateBasket:    "Статус корзины",
	StateNew:       "Новый",
	StateConfirmed: "Подтвержден",
	StateAssembled: "Собран",
	StateSent:      "Отправлен",
	StateDelivered: "Доставлен",
	StateCanceled:  "Отменен",
}

// IsValid reports whether the state is one of the known lifecycle states
func (s State) IsValid() bool {
	_, ok := stateLabels[s]
	return ok
}

// Label returns the user-facing Russian label of the state
func (s State) Label() string {
	return stateLabels[s]
}

// Order is the basket/order aggregate. One row per order; a user has at
// most one order in the basket state at any time.
type Order struct {
	shared.BaseEntity
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"-"`
	State     State             `gorm:"size:15;not null;index" json:"state"`
	ContactID *uuid.UUID        `gorm:"type:uuid" json:"-"`
	Contact   *identity.Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID" json:"ordered_items"`
}

// TableName returns the database table name
func (Order) TableName() string {
	return "orders"
}

// NewBasket creates an empty basket order for the user
func NewBasket(userID uuid.UUID) *Order {
	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		State:      StateBasket,
	}
}

// IsBasket reports whether the order is still a basket
func (o *Order) IsBasket() bool {
	return o.State == StateBasket
}

// TotalSum returns the sum of quantity x offer price over the items.
// Items without a loaded offer contribute nothing.
func (o *Order) TotalSum() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		if item.ProductInfo == nil {
			continue
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		total = total.Add(item.ProductInfo.Price.Mul(qty))
	}
	return total
}

// OrderItem is a line of an order referencing a shop's offer. An order
// holds each offer at most once; adding the same offer again is a conflict.
type OrderItem struct {
	shared.BaseEntity
	OrderID       uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_offer" json:"-"`
	ProductInfoID uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_offer" json:"product_info"`
	ProductInfo   *catalog.ProductInfo `gorm:"foreignKey:ProductInfoID" json:"product_info_detail,omitempty"`
	Quantity      int                  `gorm:"not null" json:"quantity"`
}

// TableName returns the database table name
func (OrderItem) TableName() string {
	return "order_items"
}
