// Package order contains the application service for baskets and orders:
// basket editing, checkout and the admin/partner order views.
package order

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orders/backend/internal/domain/catalog"
	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/order"
	"github.com/orders/backend/internal/domain/shared"
)

// Service handles basket and order use cases
type Service struct {
	orderRepo   order.Repository
	contactRepo identity.ContactRepository
	shopRepo    catalog.ShopRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewService creates an order service
func NewService(
	orderRepo order.Repository,
	contactRepo identity.ContactRepository,
	shopRepo catalog.ShopRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		orderRepo:   orderRepo,
		contactRepo: contactRepo,
		shopRepo:    shopRepo,
		publisher:   publisher,
		logger:      logger.Named("orders"),
	}
}

// GetBasket returns the user's basket as a single-element list, or an empty
// list when the user has no basket yet.
func (s *Service) GetBasket(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return []OrderDTO{}, nil
		}
		return nil, err
	}
	return []OrderDTO{ToDTO(basket)}, nil
}

// AddItems adds offers to the user's basket, creating the basket on first
// use. Lines are processed independently: a bad line is reported in the
// result while the rest are still created.
func (s *Service) AddItems(ctx context.Context, userID uuid.UUID, items []AddItemInput) (*AddItemsResult, error) {
	if len(items) == 0 {
		return nil, shared.ErrMissingArguments
	}

	basket, err := s.orderRepo.GetOrCreateBasket(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &AddItemsResult{}
	for _, item := range items {
		offerID, err := uuid.Parse(item.ProductInfoID)
		if err != nil {
			result.Errors = append(result.Errors, ItemError{
				ProductInfoID: item.ProductInfoID,
				Error:         "Неправильно указан id товара",
			})
			continue
		}
		if item.Quantity <= 0 {
			result.Errors = append(result.Errors, ItemError{
				ProductInfoID: item.ProductInfoID,
				Error:         "Количество должно быть положительным",
			})
			continue
		}

		if err := s.orderRepo.AddItem(ctx, basket.ID, offerID, item.Quantity); err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				result.Errors = append(result.Errors, ItemError{
					ProductInfoID: item.ProductInfoID,
					Error:         domainErr.Message,
				})
				continue
			}
			return nil, err
		}
		result.Created++
	}
	return result, nil
}

// UpdateQuantities sets quantities of basket lines and returns how many
// lines actually changed. Entries with a malformed id or a non-integer
// quantity are skipped without failing the request.
func (s *Service) UpdateQuantities(ctx context.Context, userID uuid.UUID, updates []QuantityUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, shared.ErrMissingArguments
	}

	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		return 0, err
	}

	var updated int64
	for _, update := range updates {
		itemID, err := uuid.Parse(update.ID)
		if err != nil {
			continue
		}
		quantity, ok := intQuantity(update.Quantity)
		if !ok || quantity <= 0 {
			continue
		}

		n, err := s.orderRepo.UpdateItemQuantity(ctx, basket.ID, itemID, quantity)
		if err != nil {
			return updated, err
		}
		updated += n
	}
	return updated, nil
}

// intQuantity extracts an integral quantity from a decoded JSON value.
// JSON numbers arrive as float64; fractional values and strings don't count.
func intQuantity(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// RemoveItems deletes the basket lines referencing the given offers and
// returns how many lines were deleted. Entries with a malformed offer id
// are skipped, and ids the basket does not hold are no-ops.
func (s *Service) RemoveItems(ctx context.Context, userID uuid.UUID, items []RemoveItemInput) (int64, error) {
	offerIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(strings.TrimSpace(item.ProductInfoID))
		if err != nil {
			continue
		}
		offerIDs = append(offerIDs, id)
	}
	if len(offerIDs) == 0 {
		return 0, shared.ErrMissingArguments
	}

	basket, err := s.orderRepo.FindBasket(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.orderRepo.DeleteItems(ctx, basket.ID, offerIDs)
}

// Confirm places the user's basket as a new order with the given delivery
// contact. The state transition is atomic: of two concurrent confirmations
// exactly one wins and the other gets an already-confirmed error.
func (s *Service) Confirm(ctx context.Context, userID, orderID, contactID uuid.UUID) error {
	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrInvalidContact
		}
		return err
	}
	if contact.UserID != userID {
		return shared.ErrInvalidContact
	}

	confirmed, err := s.orderRepo.ConfirmBasket(ctx, orderID, userID, contactID)
	if err != nil {
		return err
	}
	if !confirmed {
		existing, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if existing.UserID != userID {
			return shared.ErrNotFound
		}
		if !existing.IsBasket() {
			return shared.ErrAlreadyConfirmed
		}
		return shared.ErrNotFound
	}

	s.publish(ctx, order.NewStateChangedEvent(orderID, userID, order.StateNew))
	return nil
}

// ListOrders returns the user's placed orders, newest first
func (s *Service) ListOrders(ctx context.Context, userID uuid.UUID, filter order.ListFilter) ([]OrderDTO, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return ToDTOs(orders), nil
}

// UpdateState moves an order along the fulfilment pipeline (admin only).
// Moving an order back into the basket state is not allowed.
func (s *Service) UpdateState(ctx context.Context, orderID uuid.UUID, state string) error {
	newState := order.State(state)
	if !newState.IsValid() || newState == order.StateBasket {
		return shared.ErrInvalidState
	}

	existing, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if existing.IsBasket() {
		return shared.ErrInvalidState
	}

	if err := s.orderRepo.UpdateState(ctx, orderID, newState); err != nil {
		return err
	}

	s.publish(ctx, order.NewStateChangedEvent(orderID, existing.UserID, newState))
	return nil
}

// PartnerOrders returns placed orders containing the partner shop's offers.
// Only the shop's own lines are attached, so the totals cover just them.
func (s *Service) PartnerOrders(ctx context.Context, partnerUserID uuid.UUID) ([]OrderDTO, error) {
	shop, err := s.shopRepo.FindByUserID(ctx, partnerUserID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	return ToDTOs(orders), nil
}

func (s *Service) publish(ctx context.Context, event shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}
