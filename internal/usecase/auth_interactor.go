package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/tenerify/tenerify/internal/auth"
	"github.com/tenerify/tenerify/internal/domain"
)

const defaultLanguage = "it"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthInteractor implements AuthUseCase over a user store and a token
// service. It holds no per-request state: every Authenticate call re-verifies
// the token and re-fetches the principal.
type AuthInteractor struct {
	users  UserStorage
	tokens TokenService
	logger *slog.Logger
}

func NewAuthInteractor(users UserStorage, tokens TokenService, logger *slog.Logger) *AuthInteractor {
	return &AuthInteractor{users: users, tokens: tokens, logger: logger}
}

// Register validates the registration input, hashes the password and creates
// an active, non-admin account with the default language.
func (i *AuthInteractor) Register(ctx context.Context, reg domain.UserRegistration) (*domain.User, error) {
	if !emailPattern.MatchString(reg.Email) {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	if reg.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if reg.FullName == "" {
		return nil, fmt.Errorf("%w: full name is required", domain.ErrInvalidInput)
	}

	hashed, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:          reg.Email,
		FullName:       reg.FullName,
		HashedPassword: hashed,
		IsActive:       true,
		IsAdmin:        false,
		Language:       defaultLanguage,
	}

	if err := i.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	i.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login runs the credential check. The unknown-email and wrong-password
// branches are deliberately indistinguishable to the caller; the inactive
// branch is not, matching the historical behavior of the service.
func (i *AuthInteractor) Login(ctx context.Context, email, password string) (string, error) {
	user, err := i.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user by email: %w", err)
	}

	if !auth.VerifyPassword(password, user.HashedPassword) {
		return "", domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", domain.ErrInactiveUser
	}

	token, err := i.tokens.Issue(user.ID, 0)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	i.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// Authenticate is the authentication gate: token → principal.
func (i *AuthInteractor) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	userID, err := i.tokens.Verify(tokenString)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := i.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}
