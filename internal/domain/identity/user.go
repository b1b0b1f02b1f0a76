// Package identity contains users, their delivery contacts and the
// email-confirmation tokens issued at registration.
package identity

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/orders/backend/internal/domain/shared"
)

// UserType distinguishes buyers from shop (supplier) accounts
type UserType string

const (
	UserTypeBuyer UserType = "buyer"
	UserTypeShop  UserType = "shop"
)

// IsValid reports whether the user type is known
func (t UserType) IsValid() bool {
	return t == UserTypeBuyer || t == UserTypeShop
}

// User is an account. Accounts start inactive and become active once the
// emailed confirmation token is presented.
type User struct {
	shared.BaseEntity
	Email        string   `gorm:"size:254;not null;uniqueIndex" json:"email"`
	PasswordHash string   `gorm:"size:100;not null" json:"-"`
	FirstName    string   `gorm:"size:50" json:"first_name"`
	LastName     string   `gorm:"size:50" json:"last_name"`
	Company      string   `gorm:"size:100" json:"company"`
	Position     string   `gorm:"size:50" json:"position"`
	Type         UserType `gorm:"size:10;not null;default:buyer" json:"type"`
	IsActive     bool     `gorm:"not null;default:false" json:"-"`
	IsStaff      bool     `gorm:"not null;default:false" json:"-"`
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}

// NewUser creates an inactive user with a bcrypt-hashed password
func NewUser(email, password string, userType UserType) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: string(hash),
		Type:         userType,
	}, nil
}

// CheckPassword reports whether the password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the stored password hash
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// IsShop reports whether the account belongs to a supplier
func (u *User) IsShop() bool {
	return u.Type == UserTypeShop
}
