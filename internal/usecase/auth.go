package usecase

import (
	"context"
	"time"

	"github.com/tenerify/tenerify/internal/domain"
)

// UserStorage is the credential-store port consumed by the auth use case.
type UserStorage interface {
	// CreateUser persists a new account, filling in its id. Returns
	// domain.ErrDuplicateEmail when the email is already taken.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUserByID returns the user with the given id or domain.ErrNotFound.
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)

	// GetUserByEmail returns the user with the given email or domain.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	// Issue signs a token for the user. A zero ttl uses the configured default.
	Issue(userID int64, ttl time.Duration) (string, error)

	// Verify returns the user id embedded in a valid token, or
	// domain.ErrInvalidToken for any malformed, forged or expired one.
	Verify(tokenString string) (int64, error)
}

// AuthUseCase covers registration, login and the per-request authentication
// gate.
type AuthUseCase interface {
	// Register creates a new active, non-admin account.
	Register(ctx context.Context, reg domain.UserRegistration) (*domain.User, error)

	// Login verifies credentials and returns a signed bearer token.
	// Unknown email and wrong password both fail with
	// domain.ErrInvalidCredentials; a disabled account fails with
	// domain.ErrInactiveUser.
	Login(ctx context.Context, email, password string) (string, error)

	// Authenticate resolves a bearer token to its principal. Fails with
	// domain.ErrInvalidToken for a bad token and domain.ErrUserNotFound
	// when the token is valid but the account no longer exists.
	Authenticate(ctx context.Context, tokenString string) (*domain.User, error)
}
