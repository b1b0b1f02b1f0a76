package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/order"
	"github.com/orders/backend/internal/infrastructure/email"
	"github.com/orders/backend/internal/infrastructure/worker"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*identity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*identity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) GetOrCreateBasket(ctx context.Context, userID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepo) FindBasket(ctx context.Context, userID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepo) AddItem(ctx context.Context, orderID, productInfoID uuid.UUID, quantity int) error {
	args := m.Called(ctx, orderID, productInfoID, quantity)
	return args.Error(0)
}

func (m *mockOrderRepo) UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity int) (int64, error) {
	args := m.Called(ctx, orderID, itemID, quantity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) DeleteItems(ctx context.Context, orderID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, orderID, itemIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, filter order.ListFilter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderRepo) ConfirmBasket(ctx context.Context, orderID, userID, contactID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID, userID, contactID)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepo) UpdateState(ctx context.Context, orderID uuid.UUID, state order.State) error {
	args := m.Called(ctx, orderID, state)
	return args.Error(0)
}

func (m *mockOrderRepo) ListByShop(ctx context.Context, shopID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).([]order.Order), args.Error(1)
}

// syncQueue runs jobs inline so tests see their effects immediately.
type syncQueue struct{}

func (syncQueue) Submit(job worker.Job) error {
	job(context.Background())
	return nil
}

// recordingSender collects outbound mail.
type recordingSender struct {
	sent []email.Message
}

func (s *recordingSender) Send(ctx context.Context, msg email.Message) error {
	s.sent = append(s.sent, msg)
	return nil
}

func TestDispatcherMailsConfirmToken(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(&mockUserRepo{}, &mockOrderRepo{}, sender, syncQueue{}, "", zap.NewNop())

	event := identity.NewUserRegisteredEvent(uuid.New(), "ivan@example.com", "deadbeef")
	require.NoError(t, d.Handle(context.Background(), event))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"ivan@example.com"}, msg.To)
	assert.Equal(t, subjectConfirmToken, msg.Subject)
	assert.Contains(t, msg.Text, "deadbeef")
}

func TestDispatcherMailsStatusUpdate(t *testing.T) {
	ctx := context.Background()
	o := placedOrder()
	o.State = order.StateSent
	user, err := identity.NewUser("ivan@example.com", "correct-horse", identity.UserTypeBuyer)
	require.NoError(t, err)

	userRepo := &mockUserRepo{}
	userRepo.On("FindByID", mock.Anything, o.UserID).Return(user, nil)
	orderRepo := &mockOrderRepo{}
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	sender := &recordingSender{}
	d := NewDispatcher(userRepo, orderRepo, sender, syncQueue{}, "admin@example.com", zap.NewNop())

	require.NoError(t, d.Handle(ctx, order.NewStateChangedEvent(o.ID, o.UserID, order.StateSent)))

	// a sent order only mails the customer
	require.Len(t, sender.sent, 1)
	assert.Equal(t, subjectOrderStatus, sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Text, "Отправлен")
}

func TestDispatcherMailsAdminOnNewOrder(t *testing.T) {
	ctx := context.Background()
	o := placedOrder()
	user, err := identity.NewUser("ivan@example.com", "correct-horse", identity.UserTypeBuyer)
	require.NoError(t, err)

	userRepo := &mockUserRepo{}
	userRepo.On("FindByID", mock.Anything, o.UserID).Return(user, nil)
	orderRepo := &mockOrderRepo{}
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	sender := &recordingSender{}
	d := NewDispatcher(userRepo, orderRepo, sender, syncQueue{}, "admin@example.com", zap.NewNop())

	require.NoError(t, d.Handle(ctx, order.NewStateChangedEvent(o.ID, o.UserID, order.StateNew)))

	require.Len(t, sender.sent, 2)
	admin := sender.sent[1]
	assert.Equal(t, []string{"admin@example.com"}, admin.To)
	assert.Equal(t, subjectNewOrder, admin.Subject)
	assert.Contains(t, admin.HTML, "Итого")
}

func TestDispatcherWithoutAdminAddress(t *testing.T) {
	ctx := context.Background()
	o := placedOrder()
	user, err := identity.NewUser("ivan@example.com", "correct-horse", identity.UserTypeBuyer)
	require.NoError(t, err)

	userRepo := &mockUserRepo{}
	userRepo.On("FindByID", mock.Anything, o.UserID).Return(user, nil)
	orderRepo := &mockOrderRepo{}
	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	sender := &recordingSender{}
	d := NewDispatcher(userRepo, orderRepo, sender, syncQueue{}, "", zap.NewNop())

	require.NoError(t, d.Handle(ctx, order.NewStateChangedEvent(o.ID, o.UserID, order.StateNew)))
	require.Len(t, sender.sent, 1)
}
