package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/shared"
	"github.com/orders/backend/internal/infrastructure/auth"
	"github.com/orders/backend/internal/infrastructure/config"
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

type mockTokenRepo struct {
	mock.Mock
}

func (m *mockTokenRepo) Save(ctx context.Context, token *identity.ConfirmToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepo) FindByUserAndKey(ctx context.Context, userID uuid.UUID, key string) (*identity.ConfirmToken, error) {
	args := m.Called(ctx, userID, key)
	if tok := args.Get(0); tok != nil {
		return tok.(*identity.ConfirmToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-which-is-long-enough-123456",
		Expiration: time.Hour,
		Issuer:     "orders-backend",
	})
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName: "Иван",
		LastName:  "Петров",
		Email:     "ivan@example.com",
		Password:  "correct-horse",
		Company:   "Связной",
		Position:  "менеджер",
		Type:      "shop",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("requires every field", func(t *testing.T) {
		svc := NewUserService(&mockUserRepo{}, &mockTokenRepo{}, testJWTService(), nil, zap.NewNop())
		input := validRegisterInput()
		input.Company = ""
		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, shared.ErrMissingArguments)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		svc := NewUserService(&mockUserRepo{}, &mockTokenRepo{}, testJWTService(), nil, zap.NewNop())
		input := validRegisterInput()
		input.Email = "not-an-email"
		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc := NewUserService(&mockUserRepo{}, &mockTokenRepo{}, testJWTService(), nil, zap.NewNop())
		input := validRegisterInput()
		input.Password = "short"
		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("rejects an unknown account type", func(t *testing.T) {
		svc := NewUserService(&mockUserRepo{}, &mockTokenRepo{}, testJWTService(), nil, zap.NewNop())
		input := validRegisterInput()
		input.Type = "admin"
		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		userRepo := &mockUserRepo{}
		userRepo.On("ExistsByEmail", ctx, "ivan@example.com").Return(true, nil)

		svc := NewUserService(userRepo, &mockTokenRepo{}, testJWTService(), nil, zap.NewNop())
		_, err := svc.Register(ctx, validRegisterInput())
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("stores an inactive account and publishes the token", func(t *testing.T) {
		userRepo := &mockUserRepo{}
		userRepo.On("ExistsByEmail", ctx, "ivan@example.com").Return(false, nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		tokenRepo := &mockTokenRepo{}
		tokenRepo.On("Save", ctx, mock.AnythingOfType("*identity.ConfirmToken")).Return(nil)

		publisher := &mockPublisher{}
		publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			ev, ok := events[0].(*identity.UserRegisteredEvent)
			return ok && ev.Email == "ivan@example.com" && ev.TokenKey != ""
		})).Return(nil)

		svc := NewUserService(userRepo, tokenRepo, testJWTService(), publisher, zap.NewNop())

		input := validRegisterInput()
		input.Email = "  Ivan@Example.com " // normalized before any checks
		user, err := svc.Register(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "ivan@example.com", user.Email)
		assert.Equal(t, identity.UserTypeShop, user.Type)
		assert.False(t, user.IsActive)
		assert.True(t, user.CheckPassword("correct-horse"))
		publisher.AssertExpectations(t)
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	user, err := identity.NewUser("ivan@example.com", "correct-horse", identity.UserTypeBuyer)
	require.NoError(t, err)
	token := identity.NewConfirmToken(user.ID)

	t.Run("unknown email reads as a bad token", func(t *testing.T) {
		userRepo := &mockUserRepo{}
		userRepo.On("FindByEmail", ctx, "ivan@example.com").Return(nil, shared.ErrNotFound)

		svc := NewUserService(userRepo, &mockTokenRepo{}, testJWTService(), nil, zap.NewNop())
		err := svc.Confirm(ctx, "ivan@example.com", token.Key)
		assert.ErrorIs(t, err, ErrBadToken)
	})

	t.Run("wrong key reads as a bad token", func(t *testing.T) {
		userRepo := &mockUserRepo{}
		userRepo.On("FindByEmail", ctx, "ivan@example.com").Return(user, nil)

		tokenRepo := &mockTokenRepo{}
		tokenRepo.On("FindByUserAndKey", ctx, user.ID, "wrong").Return(nil, shared.ErrNotFound)

		svc := NewUserService(userRepo, tokenRepo, testJWTService(), nil, zap.NewNop())
		err := svc.Confirm(ctx, "ivan@example.com", "wrong")
		assert.ErrorIs(t, err, ErrBadToken)
	})

	t.Run("activates the account and burns the token", func(t *testing.T) {
		userRepo := &mockUserRepo{}
		userRepo.On("FindByEmail", ctx, "ivan@example.com").Return(user, nil)
		userRepo.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.IsActive
		})).Return(nil)

		tokenRepo := &mockTokenRepo{}
		tokenRepo.On("FindByUserAndKey", ctx, user.ID, token.Key).Return(token, nil)
		tokenRepo.On("Delete", ctx, token.ID).Return(nil)

		svc := NewUserService(userRepo, tokenRepo, testJWTService(), nil, zap.NewNop())
		require.NoError(t, svc.Confirm(ctx, "ivan@example.com", token.Key))
		tokenRepo.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	newUser := func(active bool) *identity.User {
		u, err := identity.NewUser("ivan@example.com", "correct-horse", identity.UserTypeBuyer)
		require.NoError(t, err)
		u.IsActive = active
		return u
	}

	t.Run("inactive account and wrong password fail identically", func(t *testing.T) {
		inactive := newUser(false)
		userRepo := &mockUserRepo{}
		userRepo.On("FindByEmail", ctx, "ivan@example.com").Return(inactive, nil)

		svc := NewUserService(userRepo, &mockTokenRepo{}, testJWTService(), nil, zap.NewNop())
		_, err := svc.Login(ctx, "ivan@example.com", "correct-horse")
		assert.ErrorIs(t, err, ErrLoginFailed)

		active := newUser(true)
		userRepo = &mockUserRepo{}
		userRepo.On("FindByEmail", ctx, "ivan@example.com").Return(active, nil)

		svc = NewUserService(userRepo, &mockTokenRepo{}, testJWTService(), nil, zap.NewNop())
		_, err = svc.Login(ctx, "ivan@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrLoginFailed)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		userRepo := &mockUserRepo{}
		userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, shared.ErrNotFound)

		svc := NewUserService(userRepo, &mockTokenRepo{}, testJWTService(), nil, zap.NewNop())
		_, err := svc.Login(ctx, "ghost@example.com", "whatever-password")
		assert.ErrorIs(t, err, ErrLoginFailed)
	})

	t.Run("issues a verifiable token", func(t *testing.T) {
		user := newUser(true)
		userRepo := &mockUserRepo{}
		userRepo.On("FindByEmail", ctx, "ivan@example.com").Return(user, nil)

		jwtService := testJWTService()
		svc := NewUserService(userRepo, &mockTokenRepo{}, jwtService, nil, zap.NewNop())
		result, err := svc.Login(ctx, "Ivan@Example.com", "correct-horse")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, time.Minute)

		claims, err := jwtService.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, "buyer", claims.UserType)
	})
}
