// Package identity contains the application services for accounts:
// registration, email confirmation, login and delivery contacts.
package identity

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orders/backend/internal/domain/identity"
	"github.com/orders/backend/internal/domain/shared"
	"github.com/orders/backend/internal/infrastructure/auth"
)

// Registration and login failures use dedicated messages rather than the
// generic input error so the client can show them verbatim.
var (
	ErrWeakPassword = shared.NewDomainError("WEAK_PASSWORD", "Пароль должен содержать не менее 8 символов")
	ErrEmailTaken   = shared.NewDomainError("EMAIL_TAKEN", "Пользователь с таким email уже зарегистрирован")
	ErrBadToken     = shared.NewDomainError("BAD_TOKEN", "Неправильно указан токен или email")
	ErrLoginFailed  = shared.NewDomainError("LOGIN_FAILED", "Не удалось авторизовать")
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// RegisterInput carries a registration request
type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Type      string `json:"type" binding:"omitempty,user_type"`
}

// LoginResult carries an issued access token
type LoginResult struct {
	Token     string    `json:"Token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserService handles account registration, confirmation and login
type UserService struct {
	userRepo   identity.UserRepository
	tokenRepo  identity.TokenRepository
	jwtService *auth.JWTService
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewUserService creates a user service
func NewUserService(
	userRepo identity.UserRepository,
	tokenRepo identity.TokenRepository,
	jwtService *auth.JWTService,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		publisher:  publisher,
		logger:     logger.Named("users"),
	}
}

// Register creates an inactive account and issues a confirmation token.
// The token reaches the user by email via the registration event.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*identity.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.FirstName == "" || input.LastName == "" || input.Email == "" ||
		input.Password == "" || input.Company == "" || input.Position == "" {
		return nil, shared.ErrMissingArguments
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, shared.ErrInvalidInput
	}
	if len(input.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	userType := identity.UserTypeBuyer
	if input.Type != "" {
		userType = identity.UserType(input.Type)
		if !userType.IsValid() {
			return nil, shared.ErrInvalidInput
		}
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	user, err := identity.NewUser(input.Email, input.Password, userType)
	if err != nil {
		return nil, err
	}
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Company = input.Company
	user.Position = input.Position

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token := identity.NewConfirmToken(user.ID)
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		return nil, err
	}

	s.publish(ctx, identity.NewUserRegisteredEvent(user.ID, user.Email, token.Key))

	s.logger.Info("user registered", zap.String("email", user.Email), zap.String("type", string(user.Type)))
	return user, nil
}

// Confirm activates the account matching the email and token key and
// burns the token.
func (s *UserService) Confirm(ctx context.Context, email, key string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || key == "" {
		return shared.ErrMissingArguments
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrBadToken
		}
		return err
	}

	token, err := s.tokenRepo.FindByUserAndKey(ctx, user.ID, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrBadToken
		}
		return err
	}

	user.IsActive = true
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	return s.tokenRepo.Delete(ctx, token.ID)
}

// Login checks credentials and issues an access token. Inactive accounts
// and wrong passwords fail identically.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, shared.ErrMissingArguments
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrLoginFailed
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrLoginFailed
	}

	token, expiresAt, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		UserType: string(user.Type),
		IsStaff:  user.IsStaff,
	})
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// GetUser returns the account for the given id
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) publish(ctx context.Context, event shared.DomainEvent) {
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
