package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/shared"
)

// ErrTooManyContacts rejects creation beyond the per-user limit.
var ErrTooManyContacts = shared.NewDomainError("TOO_MANY_CONTACTS", "Нельзя добавить больше 5 контактов")

// ContactInput carries a contact create/update request
type ContactInput struct {
	City      string `json:"city"`
	Street    string `json:"street"`
	House     string `json:"house"`
	Structure string `json:"structure"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone"`
}

// ContactService manages a user's delivery contacts
type ContactService struct {
	contactRepo identity.ContactRepository
	logger      *zap.Logger
}

// NewContactService creates a contact service
func NewContactService(contactRepo identity.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		logger:      logger.Named("contacts"),
	}
}

// List returns the user's contacts, oldest first
func (s *ContactService) List(ctx context.Context, userID uuid.UUID) ([]identity.Contact, error) {
	return s.contactRepo.ListByUser(ctx, userID)
}

// Create adds a delivery contact. City, street and phone are required;
// a user keeps at most five contacts.
func (s *ContactService) Create(ctx context.Context, userID uuid.UUID, input ContactInput) (*identity.Contact, error) {
	if input.City == "" || input.Street == "" || input.Phone == "" {
		return nil, shared.ErrMissingArguments
	}

	count, err := s.contactRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= identity.MaxContactsPerUser {
		return nil, ErrTooManyContacts
	}

	contact := &identity.Contact{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		City:       input.City,
		Street:     input.Street,
		House:      input.House,
		Structure:  input.Structure,
		Building:   input.Building,
		Apartment:  input.Apartment,
		Phone:      input.Phone,
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Update changes fields of the user's contact. Empty fields keep their
// previous values.
func (s *ContactService) Update(ctx context.Context, userID, contactID uuid.UUID, input ContactInput) (*identity.Contact, error) {
	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidContact
		}
		return nil, err
	}
	if contact.UserID != userID {
		return nil, shared.ErrInvalidContact
	}

	if input.City != "" {
		contact.City = input.City
	}
	if input.Street != "" {
		contact.Street = input.Street
	}
	if input.House != "" {
		contact.House = input.House
	}
	if input.Structure != "" {
		contact.Structure = input.Structure
	}
	if input.Building != "" {
		contact.Building = input.Building
	}
	if input.Apartment != "" {
		contact.Apartment = input.Apartment
	}
	if input.Phone != "" {
		contact.Phone = input.Phone
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete removes contacts given a comma-separated id list and returns how
// many were deleted. Malformed ids are skipped.
func (s *ContactService) Delete(ctx context.Context, userID uuid.UUID, itemsCSV string) (int64, error) {
	parts := strings.Split(itemsCSV, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, shared.ErrMissingArguments
	}
	return s.contactRepo.Delete(ctx, userID, ids)
}
