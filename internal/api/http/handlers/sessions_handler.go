package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refund-service/internal/api/dto"
	"github.com/spec-kit/refund-service/internal/service"
)

// SessionsHandler exposes login and logout.
type SessionsHandler struct {
	auth *service.AuthService
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(authService *service.AuthService) *SessionsHandler {
	return &SessionsHandler{auth: authService}
}

// Create handles POST /sessions.
func (h *SessionsHandler) Create(c *fiber.Ctx) error {
	values, err := bindBody(c, dto.SessionSchema)
	if err != nil {
		return err
	}

	session, err := h.auth.Login(c.UserContext(), values.String("email"), values.String("password"))
	if err != nil {
		return err
	}

	return c.JSON(dto.SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      dto.NewUserResponse(session.User),
	})
}

// Delete handles DELETE /sessions.
func (h *SessionsHandler) Delete(c *fiber.Ctx) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.UserContext(), caller); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
