package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// TokenRepository defines the interface for confirmation token persistence
type TokenRepository interface {
	Save(ctx context.Context, token *ConfirmToken) error
	// FindByUserAndKey returns shared.ErrNotFound when no such token exists.
	FindByUserAndKey(ctx context.Context, userID uuid.UUID, key string) (*ConfirmToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, contact *Contact) error
	// Delete removes the given contact ids owned by the user and returns
	// how many rows were deleted.
	Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
}
