// Package catalog contains the product catalog domain: shops, categories,
// products and their per-shop offers.
package catalog

import (
	"github.com/google/uuid"

	"github.com/orders/backend/internal/domain/shared"
)

// Shop is a supplier storefront owned by a single user of type "shop".
type Shop struct {
	shared.BaseEntity
	Name   string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	URL    string    `gorm:"size:255" json:"url,omitempty"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"-"`
	// State toggles whether the shop is currently accepting orders.
	State      bool       `gorm:"not null;default:true" json:"state"`
	Categories []Category `gorm:"many2many:shop_categories" json:"-"`
}

// TableName returns the database table name
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a shop owned by the given user
func NewShop(name string, userID uuid.UUID) *Shop {
	return &Shop{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		UserID:     userID,
		State:      true,
	}
}
