package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refund-service/internal/api/dto"
	"github.com/spec-kit/refund-service/internal/service"
)

// RefundsHandler manages refund endpoints.
type RefundsHandler struct {
	service *service.RefundService
}

// NewRefundsHandler constructs handler.
func NewRefundsHandler(refundService *service.RefundService) *RefundsHandler {
	return &RefundsHandler{service: refundService}
}

// Create POST /refunds.
func (h *RefundsHandler) Create(c *fiber.Ctx) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	values, err := bindBody(c, dto.RefundCreateSchema)
	if err != nil {
		return err
	}

	refund, err := h.service.Create(c.UserContext(), caller.SubjectID, dto.RefundCreateInput(values))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewRefundResponse(refund))
}

// Index GET /refunds.
func (h *RefundsHandler) Index(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(),
		strings.TrimSpace(c.Query("name")),
		parseInt(c.Query("page"), 1),
		parseInt(c.Query("perPage"), 10),
	)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRefundListResponse(page))
}

// Show GET /refunds/:id.
func (h *RefundsHandler) Show(c *fiber.Ctx) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	refund, err := h.service.Get(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewRefundResponse(refund))
}
