package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/shared"
)

// GormContactRepository implements identity.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GORM-based contact repository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

var _ identity.ContactRepository = (*GormContactRepository)(nil)

// FindByID retrieves a contact by ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Contact, error) {
	var contact identity.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// ListByUser returns all contacts owned by the user
func (r *GormContactRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]identity.Contact, error) {
	var contacts []identity.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// CountByUser returns how many contacts the user owns
func (r *GormContactRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&identity.Contact{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Save persists a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *identity.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete removes the given contact ids owned by the user
func (r *GormContactRepository) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&identity.Contact{})
	return result.RowsAffected, result.Error
}
