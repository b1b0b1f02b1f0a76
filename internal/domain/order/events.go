package order

import (
	"github.com/google/uuid"

	"github.com/orders/backend/internal/domain/shared"
)

// Event types published by the order domain
const (
	EventTypeStateChanged = "order.state_changed"
)

// StateChangedEvent is published whenever an order leaves the basket state
// or an administrator moves it along the fulfilment pipeline. The
// notification dispatcher turns it into a customer email.
type StateChangedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	State  State     `json:"state"`
}

// NewStateChangedEvent creates a state change event for the given order
func NewStateChangedEvent(orderID, userID uuid.UUID, state State) *StateChangedEvent {
	return &StateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStateChanged, "Order", orderID),
		UserID:          userID,
		State:           state,
	}
}
