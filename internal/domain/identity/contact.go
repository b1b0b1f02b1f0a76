package identity

import (
	"github.com/google/uuid"

	"github.com/orders/backend/internal/domain/shared"
)

// MaxContactsPerUser caps how many delivery addresses a user may keep.
const MaxContactsPerUser = 5

// Contact is a delivery address plus phone, owned by a user.
type Contact struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	City      string    `gorm:"size:50;not null" json:"city"`
	Street    string    `gorm:"size:100;not null" json:"street"`
	House     string    `gorm:"size:15" json:"house"`
	Structure string    `gorm:"size:15" json:"structure"`
	Building  string    `gorm:"size:15" json:"building"`
	Apartment string    `gorm:"size:15" json:"apartment"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
}

// TableName returns the database table name
func (Contact) TableName() string {
	return "contacts"
}
