package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refund-service/internal/domain"
	apperrors "github.com/spec-kit/refund-service/pkg/util"
)

// errIdentityMissing means a guarded route was registered outside the authenticated group.
var errIdentityMissing = errors.New("role guard reached without an authenticated identity")

// RequireRole lets the request through only when the caller holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewInternalError(errIdentityMissing)
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden(apperrors.MsgForbidden)
		}
		return c.Next()
	}
}
