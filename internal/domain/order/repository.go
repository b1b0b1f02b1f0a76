package order

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows order listings. Zero values mean "no restriction".
type ListFilter struct {
	OrderID uuid.UUID
	State   State
}

// Repository defines the interface for order persistence
type Repository interface {
	// GetOrCreateBasket returns the user's basket, creating it if absent.
	// Safe under concurrent calls: at most one basket per user ever exists.
	GetOrCreateBasket(ctx context.Context, userID uuid.UUID) (*Order, error)

	// FindBasket returns the user's basket with items and offers preloaded,
	// or shared.ErrNotFound when the user has none.
	FindBasket(ctx context.Context, userID uuid.UUID) (*Order, error)

	// AddItem appends an offer to the order. Returns shared.ErrAlreadyExists
	// when the order already holds this offer.
	AddItem(ctx context.Context, orderID, productInfoID uuid.UUID, quantity int) error

	// UpdateItemQuantity sets the quantity of a basket line identified by its
	// order item id. Missing lines are ignored; returns rows affected.
	UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity int) (int64, error)

	// DeleteItems removes the order's lines referencing the given offers and
	// returns how many rows were actually deleted.
	DeleteItems(ctx context.Context, orderID uuid.UUID, productInfoIDs []uuid.UUID) (int64, error)

	// ListByUser returns the user's non-basket orders, newest first, with
	// items, offers and contact preloaded.
	ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]Order, error)

	// FindByID returns a single order with associations preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// ConfirmBasket atomically moves the user's basket identified by orderID
	// into the new state and attaches the contact. Returns false when no row
	// matched, i.e. the order is not this user's basket anymore.
	ConfirmBasket(ctx context.Context, orderID, userID, contactID uuid.UUID) (bool, error)

	// UpdateState sets the order state unconditionally (admin operation).
	UpdateState(ctx context.Context, orderID uuid.UUID, state State) error

	// ListByShop returns non-basket orders containing at least one offer of
	// the given shop, deduplicated, newest first.
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]Order, error)
}
