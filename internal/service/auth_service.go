package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/config"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/repository"
)

// SeedCredential is a built-in account used when no users document exists.
type SeedCredential struct {
	Username string
	Password string
	Role     domain.Role
}

// DefaultSeeds are the two accounts available on a fresh install.
var DefaultSeeds = []SeedCredential{
	{Username: "user1", Password: "userpass", Role: domain.RoleUser},
	{Username: "support_agent", Password: "supportpass", Role: domain.RoleSupport},
}

// HashSeeds turns seed credentials into stored accounts.
func HashSeeds(seeds []SeedCredential, cost int) ([]domain.User, error) {
	users := make([]domain.User, 0, len(seeds))
	for _, s := range seeds {
		hash, err := auth.HashPassword(s.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("hash seed %s: %w", s.Username, err)
		}
		users = append(users, domain.User{Username: s.Username, PasswordHash: hash, Role: s.Role})
	}
	return users, nil
}

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	revoked    auth.RevocationList
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations auth.RevocationList
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	revoked := deps.Revocations
	if revoked == nil {
		revoked = auth.NewMemoryRevocations()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		revoked:    revoked,
		bcryptCost: cfg.BcryptCost,
	}
}

// Authenticate verifies credentials and returns the account role.
func (s *AuthService) Authenticate(_ context.Context, username, password string) (domain.Role, error) {
	user, ok := s.users.Get(username)
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return user.Role, nil
}

// Register creates an end-user account.
func (s *AuthService) Register(ctx context.Context, username, password, confirm string) (*domain.User, error) {
	return s.register(ctx, username, password, confirm, domain.RoleUser)
}

// RegisterSupportAgent creates a support account. Callers must already be support.
func (s *AuthService) RegisterSupportAgent(ctx context.Context, username, password, confirm string) (*domain.User, error) {
	return s.register(ctx, username, password, confirm, domain.RoleSupport)
}

// register checks duplicate, then mismatch, then empty fields, in that order.
func (s *AuthService) register(ctx context.Context, username, password, confirm string, role domain.Role) (*domain.User, error) {
	if _, exists := s.users.Get(username); exists {
		return nil, ErrDuplicateUsername
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if username == "" || password == "" {
		return nil, ErrEmptyField
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &user, nil
}

// Login authenticates and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Role, string, domain.Token, error) {
	role, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", "", domain.Token{}, err
	}
	signed, meta, err := s.tokenMgr.GenerateToken(username, role)
	if err != nil {
		return "", "", domain.Token{}, err
	}
	return role, signed, meta, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.revoked.Revoke(ctx, tokenID, expiresAt)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Revocations exposes the revocation list for middleware usage.
func (s *AuthService) Revocations() auth.RevocationList {
	return s.revoked
}
