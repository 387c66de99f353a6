package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refund-service/internal/auth"
	"github.com/spec-kit/refund-service/internal/validation"
	apperrors "github.com/spec-kit/refund-service/pkg/util"
)

// bindBody decodes the JSON body and validates it against schema.
// An empty or non-JSON body is validated as an empty object, so the client
// learns which field is missing.
func bindBody(c *fiber.Ctx, schema validation.Schema) (validation.Values, error) {
	raw := map[string]any{}
	if len(c.Body()) == 0 || !strings.Contains(strings.ToLower(string(c.Request().Header.ContentType())), "json") {
		return validation.Validate(schema, raw)
	}
	if err := c.BodyParser(&raw); err != nil {
		return nil, apperrors.NewValidationError("", "Corpo da requisição inválido")
	}
	return validation.Validate(schema, raw)
}

// identity returns the caller attached by the auth middleware.
func identity(c *fiber.Ctx) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		return auth.Identity{}, apperrors.NewUnauthorized(apperrors.MsgUnauthorized)
	}
	return id, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
