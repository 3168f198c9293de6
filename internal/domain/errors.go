package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately undifferentiated to avoid account enumeration.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInactiveUser means the credentials were correct but the account
	// is disabled.
	ErrInactiveUser = errors.New("inactive user")

	// ErrDuplicateEmail means a registration collided with an existing email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidToken covers malformed, expired and badly signed bearer
	// tokens. Callers cannot tell which.
	ErrInvalidToken = errors.New("could not validate credentials")

	// ErrUserNotFound means the token was valid but its subject no longer
	// resolves to an account.
	ErrUserNotFound = errors.New("user not found")

	// ErrAdminRequired means the principal is authenticated but lacks the
	// administrator flag.
	ErrAdminRequired = errors.New("administrator privileges required")

	// ErrNotFound is the generic missing-resource error for articles and
	// bookmarks.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput covers request validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
