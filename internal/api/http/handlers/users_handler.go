package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refund-service/internal/api/dto"
	"github.com/spec-kit/refund-service/internal/domain"
	"github.com/spec-kit/refund-service/internal/service"
)

// UsersHandler exposes account registration.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	values, err := bindBody(c, dto.UserCreateSchema)
	if err != nil {
		return err
	}

	user, err := h.auth.RegisterUser(c.UserContext(), service.RegisterInput{
		Name:     values.String("name"),
		Email:    values.String("email"),
		Password: values.String("password"),
		Role:     domain.Role(values.String("role")),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}
