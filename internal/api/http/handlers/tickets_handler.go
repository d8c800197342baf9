package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-board/internal/api/dto"
	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/service"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints for both roles.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Open POST /tickets.
func (h *TicketsHandler) Open(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.OpenTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	missing := []string{}
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("title and description required", map[string]any{"missing": missing})
	}

	id, err := h.service.Open(c.UserContext(), principal.Username, req.Title, req.Description)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.OpenTicketResponse{TicketID: id}})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": h.service.List(c.UserContext(), principal.Username, principal.Role)})
}

// Close POST /tickets/:id/close.
func (h *TicketsHandler) Close(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	closed, err := h.service.Close(c.UserContext(), principal.Username, c.Params("id"), principal.Role)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.CloseResponse{Closed: closed}})
}

// Comment POST /tickets/:id/comments.
func (h *TicketsHandler) Comment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("text required", nil)
	}

	added, err := h.service.Comment(c.UserContext(), principal.Username, c.Params("id"), principal.Role, req.Text)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.CommentResponse{Added: added}})
}
