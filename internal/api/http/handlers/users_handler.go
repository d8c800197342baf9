package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-board/internal/api/dto"
	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/service"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

// UsersHandler exposes auth endpoints for end-users.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Register(c.UserContext(), req.Username, req.Password, req.Confirm)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.AccountResponse{Username: user.Username, Role: user.Role},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	role, token, meta, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: meta.ExpiresAt, Role: role},
	})
}

// Logout handles POST /auth/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.UserContext(), principal.TokenID, principal.ExpiresAt); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
