package auth

import (
	"errors"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/refund-service/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	for _, role := range domain.Roles() {
		token, expiresAt, err := tm.Issue("user-1", role)
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		identity, err := tm.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.SubjectID)
		assert.Equal(t, role, identity.Role)
		assert.NotEmpty(t, identity.TokenID)
	}
}

func TestIssueIsDeterministicUnderFixedClockExceptTokenID(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tm := NewTokenManager("secret", 10).WithClock(fixedClock(now))

	_, expiresAt, err := tm.Issue("user-1", domain.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, now.Add(10*time.Minute), expiresAt)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tm := NewTokenManager("secret", 10).WithClock(fixedClock(issuedAt))

	token, _, err := tm.Issue("user-1", domain.RoleManager)
	require.NoError(t, err)

	tm.WithClock(fixedClock(issuedAt.Add(11 * time.Minute)))
	_, err = tm.Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	token, _, err := NewTokenManager("other-secret", 10).Issue("user-1", domain.RoleManager)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 10).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	_, err := NewTokenManager("secret", 10).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnknownRoleAndMissingExpiry(t *testing.T) {
	secret := []byte("secret")
	tm := NewTokenManager("secret", 10)

	unknownRole := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := unknownRole.SignedString(secret)
	require.NoError(t, err)
	_, err = tm.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role:             domain.RoleEmployee,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	signed, err = noExpiry.SignedString(secret)
	require.NoError(t, err)
	_, err = tm.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		Role: domain.RoleEmployee,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", 10).Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, ComparePassword(hash, "secret1"))
	assert.False(t, ComparePassword(hash, "secret2"))
}
