package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-board/internal/domain"
	apperrors "github.com/spec-kit/ticket-board/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Username  string
	Role      domain.Role
	TokenID   string
	ExpiresAt time.Time
}

// UserLookup resolves accounts by username.
type UserLookup interface {
	Get(username string) (domain.User, bool)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens  *TokenManager
	users   UserLookup
	revoked RevocationList
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users UserLookup, revoked RevocationList) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, revoked: revoked}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	revoked, err := m.revoked.IsRevoked(c.UserContext(), claims.ID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if revoked {
		return apperrors.NewUnauthorized("token revoked")
	}

	user, ok := m.users.Get(claims.Username)
	if !ok {
		return apperrors.NewUnauthorized("user not found")
	}

	principal := &Principal{
		Username: user.Username,
		Role:     user.Role,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
