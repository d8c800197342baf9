package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/api/dto"
	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/service"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

// StaffHandler exposes support-only account management.
type StaffHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

// NewStaffHandler constructs handler.
func NewStaffHandler(authService *service.AuthService, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{authService: authService, logger: logger}
}

// RegisterAgent handles POST /support/agents.
func (h *StaffHandler) RegisterAgent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	agent, err := h.authService.RegisterSupportAgent(c.UserContext(), req.Username, req.Password, req.Confirm)
	if err != nil {
		return err
	}
	h.logger.Info("support agent registered",
		zap.String("username", agent.Username),
		zap.String("registered_by", principal.Username))

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.AccountResponse{Username: agent.Username, Role: agent.Role},
	})
}
