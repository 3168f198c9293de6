package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tenerify/tenerify/internal/domain"
)

// TokenService issues and verifies HS256 bearer tokens. The signing secret
// is injected at construction so tests can swap it without touching process
// state. Rotating the secret invalidates every outstanding token.
type TokenService struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewTokenService creates a TokenService with the given secret and default
// token lifetime.
func NewTokenService(secret string, defaultTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
	}
}

// Issue signs a token carrying the user id as the subject claim. A zero ttl
// falls back to the configured default.
func (s *TokenService) Issue(userID int64, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.defaultTTL
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and returns the embedded user id. Malformed
// structure, wrong signature, unexpected algorithm and expired tokens all
// collapse to ErrInvalidToken; the caller cannot tell which failure occurred.
func (s *TokenService) Verify(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidToken
	}

	return userID, nil
}
