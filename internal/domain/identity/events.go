package identity

import (
	"github.com/google/uuid"

	"github.com/orders/backend/internal/domain/shared"
)

// Event types published by the identity domain
const (
	EventTypeUserRegistered = "user.registered"
)

// UserRegisteredEvent is published after a new account is stored. The
// notification dispatcher mails the confirmation token to the user.
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	Email    string `json:"email"`
	TokenKey string `json:"-"`
}

// NewUserRegisteredEvent creates a registration event for the given user
func NewUserRegisteredEvent(userID uuid.UUID, email, tokenKey string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, "User", userID),
		Email:           email,
		TokenKey:        tokenKey,
	}
}
