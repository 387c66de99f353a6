package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/refund-service/internal/domain"
	apperrors "github.com/spec-kit/refund-service/pkg/util"
)

type memoryRevocations struct {
	ids map[string]bool
	err error
}

func (m *memoryRevocations) Revoke(_ context.Context, id string, _ time.Time) error {
	m.ids[id] = true
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	return m.ids[id], m.err
}

func newGuardedApp(tm *TokenManager, revoked RevocationStore) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"message": domainErr.Message})
		},
	})
	mw := NewAuthMiddleware(tm, revoked, nil)
	ok := func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		return c.SendString(identity.SubjectID)
	}

	// registered ahead of the authenticated group, so it never sees an identity
	app.Get("/misrouted", RequireRole(domain.RoleManager), ok)

	protected := app.Group("", mw.Handle)
	protected.Get("/employee", RequireRole(domain.RoleEmployee), ok)
	protected.Get("/manager", RequireRole(domain.RoleManager), ok)
	protected.Get("/both", RequireRole(domain.RoleEmployee, domain.RoleManager), ok)
	return app
}

func doGet(t *testing.T, app *fiber.App, path, authorization string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddlewareRejectsMissingOrBadCredentials(t *testing.T) {
	tm := NewTokenManager("secret", 10)
	app := newGuardedApp(tm, nil)

	for _, header := range []string{"", "Bearer", "Bearer ", "Basic abc", "Bearer garbage"} {
		assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/employee", header), "header %q", header)
	}
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	token, _, err := NewTokenManager("secret", 60).WithClock(fixedClock(issuedAt)).Issue("user-1", domain.RoleEmployee)
	require.NoError(t, err)

	app := newGuardedApp(NewTokenManager("secret", 60), nil)
	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/employee", "Bearer "+token))
}

func TestRoleGuardMatrix(t *testing.T) {
	tm := NewTokenManager("secret", 10)
	app := newGuardedApp(tm, nil)

	tokens := map[domain.Role]string{}
	for _, role := range domain.Roles() {
		token, _, err := tm.Issue("user-"+string(role), role)
		require.NoError(t, err)
		tokens[role] = "Bearer " + token
	}

	assert.Equal(t, http.StatusOK, doGet(t, app, "/employee", tokens[domain.RoleEmployee]))
	assert.Equal(t, http.StatusForbidden, doGet(t, app, "/employee", tokens[domain.RoleManager]))
	assert.Equal(t, http.StatusOK, doGet(t, app, "/manager", tokens[domain.RoleManager]))
	assert.Equal(t, http.StatusForbidden, doGet(t, app, "/manager", tokens[domain.RoleEmployee]))
	assert.Equal(t, http.StatusOK, doGet(t, app, "/both", tokens[domain.RoleEmployee]))
	assert.Equal(t, http.StatusOK, doGet(t, app, "/both", tokens[domain.RoleManager]))
}

func TestRoleGuardWithoutIdentityIsInternalError(t *testing.T) {
	app := newGuardedApp(NewTokenManager("secret", 10), nil)
	assert.Equal(t, http.StatusInternalServerError, doGet(t, app, "/misrouted", ""))
}

func TestAuthMiddlewareHonoursRevocation(t *testing.T) {
	tm := NewTokenManager("secret", 10)
	store := &memoryRevocations{ids: map[string]bool{}}
	app := newGuardedApp(tm, store)

	token, _, err := tm.Issue("user-1", domain.RoleEmployee)
	require.NoError(t, err)
	identity, err := tm.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doGet(t, app, "/employee", "Bearer "+token))
	require.NoError(t, store.Revoke(context.Background(), identity.TokenID, identity.ExpiresAt))
	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/employee", "Bearer "+token))

	store.err = errors.New("redis down")
	other, _, err := tm.Issue("user-2", domain.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, doGet(t, app, "/employee", "Bearer "+other))
}
