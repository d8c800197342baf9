package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/persistence"
)

// ErrUserExists is returned by Insert when the username is already taken.
var ErrUserExists = errors.New("user already exists")

// UserRepository defines access to registered accounts.
type UserRepository interface {
	Get(username string) (domain.User, bool)
	Insert(ctx context.Context, user domain.User) error
}

// userRecord is the on-disk shape of one account.
type userRecord struct {
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// UserStore holds every account in memory and rewrites the users document on
// each registration.
type UserStore struct {
	mu    sync.RWMutex
	docs  persistence.DocumentStore
	users map[string]userRecord
}

// LoadUserStore reads the users document. When the document does not exist the
// store starts with seeds, which are only written out on the first Insert.
func LoadUserStore(ctx context.Context, docs persistence.DocumentStore, seeds []domain.User) (*UserStore, error) {
	s := &UserStore{docs: docs, users: map[string]userRecord{}}

	data, err := docs.Read(ctx, persistence.DocumentUsers)
	switch {
	case errors.Is(err, persistence.ErrDocumentNotFound):
		for _, u := range seeds {
			s.users[u.Username] = userRecord{Password: u.PasswordHash, Role: u.Role}
		}
		return s, nil
	case err != nil:
		return nil, err
	}

	if err := json.Unmarshal(data, &s.users); err != nil {
		return nil, fmt.Errorf("decode users document: %w", err)
	}
	if s.users == nil {
		s.users = map[string]userRecord{}
	}
	for username, rec := range s.users {
		if !rec.Role.Valid() {
			return nil, fmt.Errorf("users document: %s has unknown role %q", username, rec.Role)
		}
	}
	return s, nil
}

// Get returns the account registered under username.
func (s *UserStore) Get(username string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[username]
	if !ok {
		return domain.User{}, false
	}
	return domain.User{Username: username, PasswordHash: rec.Password, Role: rec.Role}, true
}

// Insert adds user and persists the full mapping. The existence check and the
// write happen under one lock.
func (s *UserStore) Insert(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return ErrUserExists
	}
	s.users[user.Username] = userRecord{Password: user.PasswordHash, Role: user.Role}
	return s.saveLocked(ctx)
}

func (s *UserStore) saveLocked(ctx context.Context) error {
	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users document: %w", err)
	}
	return s.docs.Write(ctx, persistence.DocumentUsers, data)
}
