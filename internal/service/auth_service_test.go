package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/refund-service/internal/auth"
	"github.com/spec-kit/refund-service/internal/config"
	"github.com/spec-kit/refund-service/internal/domain"
	apperrors "github.com/spec-kit/refund-service/pkg/util"
)

type recordingRevocations struct {
	revoked map[string]time.Time
}

func (r *recordingRevocations) Revoke(_ context.Context, id string, exp time.Time) error {
	r.revoked[id] = exp
	return nil
}

func (r *recordingRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := r.revoked[id]
	return ok, nil
}

func testConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4}}
}

func TestLoginIssuesTokenForMatchingPassword(t *testing.T) {
	users := newMemoryUsers()
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: users})

	created, err := svc.RegisterUser(context.Background(), RegisterInput{Name: "Ana", Email: "A@X.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, created.Role)
	assert.Equal(t, "a@x.com", created.Email)
	assert.NotEqual(t, "secret1", created.PasswordHash)

	session, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, created.ID, session.User.ID)

	identity, err := svc.TokenManager().Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, identity.SubjectID)
	assert.Equal(t, domain.RoleEmployee, identity.Role)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	users := newMemoryUsers()
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: users})
	_, err := svc.RegisterUser(context.Background(), RegisterInput{Name: "Ana", Email: "a@x.com", Password: "secret1", Role: domain.RoleManager})
	require.NoError(t, err)

	_, unknownErr := svc.Login(context.Background(), "nobody@x.com", "secret1")
	_, wrongErr := svc.Login(context.Background(), "a@x.com", "wrong-password")

	for _, err := range []error{unknownErr, wrongErr} {
		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, 401, domainErr.HTTPStatus)
		assert.Equal(t, MsgInvalidCredentials, domainErr.Message)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: newMemoryUsers()})
	input := RegisterInput{Name: "Ana", Email: "a@x.com", Password: "secret1"}

	_, err := svc.RegisterUser(context.Background(), input)
	require.NoError(t, err)
	_, err = svc.RegisterUser(context.Background(), input)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestLogoutRevokesTokenID(t *testing.T) {
	store := &recordingRevocations{revoked: map[string]time.Time{}}
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: newMemoryUsers(), Revocations: store})

	identity := auth.Identity{SubjectID: "u", Role: domain.RoleEmployee, TokenID: "jti-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, svc.Logout(context.Background(), identity))
	assert.Contains(t, store.revoked, "jti-1")

	require.NoError(t, svc.Logout(context.Background(), auth.Identity{}))
	assert.Len(t, store.revoked, 1)
}
