package identity

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/orders/backend/internal/domain/shared"
)

// ConfirmToken is a single-use email confirmation key mailed at
// registration. Presenting it activates the account.
type ConfirmToken struct {
	shared.BaseEntity
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Key    string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
}

// TableName returns the database table name
func (ConfirmToken) TableName() string {
	return "confirm_tokens"
}

// NewConfirmToken issues a fresh token for the user
func NewConfirmToken(userID uuid.UUID) *ConfirmToken {
	return &ConfirmToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Key:        generateKey(),
	}
}

func generateKey() string {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable for token issuance
		panic(err)
	}
	return hex.EncodeToString(b)
}
