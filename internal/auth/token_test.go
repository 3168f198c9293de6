package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenerify/tenerify/internal/domain"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.Issue(42, 0)
	require.NoError(t, err)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenService_SubjectIsStringifiedID(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.Issue(7, time.Hour)
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)

	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "7", sub)

	exp, err := parsed.Claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.Issue(1, -1*time.Second)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService("right-secret", time.Hour).Issue(1, 0)
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", token)
	}
}

func TestTokenService_VerifyWrongAlgorithm(t *testing.T) {
	t.Parallel()

	// An unsigned token must be rejected even though its claims parse.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("test-secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_VerifyNonNumericSubject(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "not-a-number",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
