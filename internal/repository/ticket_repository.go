package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/persistence"
)

// TicketMatchFunc is called for each ticket whose id matches. Returning true
// keeps the changes made to ticket and ends the scan.
type TicketMatchFunc func(owner string, ticket *domain.Ticket) bool

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Append(ctx context.Context, owner string, ticket domain.Ticket) error
	Update(ctx context.Context, ticketID string, fn TicketMatchFunc) (bool, error)
	Contains(ticketID string) bool
	All() domain.TicketBook
	Bucket(owner string) []domain.Ticket
}

// TicketStore holds the whole ticket book in memory. Every mutation rewrites
// the tickets document in full; there is no index by ticket id.
type TicketStore struct {
	mu   sync.RWMutex
	docs persistence.DocumentStore
	book domain.TicketBook
}

// LoadTicketStore reads the tickets document, starting empty if it is absent.
func LoadTicketStore(ctx context.Context, docs persistence.DocumentStore) (*TicketStore, error) {
	s := &TicketStore{docs: docs, book: domain.TicketBook{}}

	data, err := docs.Read(ctx, persistence.DocumentTickets)
	switch {
	case errors.Is(err, persistence.ErrDocumentNotFound):
		return s, nil
	case err != nil:
		return nil, err
	}

	if err := json.Unmarshal(data, &s.book); err != nil {
		return nil, fmt.Errorf("decode tickets document: %w", err)
	}
	if s.book == nil {
		s.book = domain.TicketBook{}
	}
	return s, nil
}

// Append adds ticket to the end of owner's bucket, creating the bucket if needed.
func (s *TicketStore) Append(ctx context.Context, owner string, ticket domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.book[owner] = append(s.book[owner], ticket.Clone())
	return s.saveLocked(ctx)
}

// Update scans buckets in owner order for tickets with ticketID and hands each
// match to fn. The store is persisted only when fn accepts a match. A failed
// write leaves the in-memory change in place.
func (s *TicketStore) Update(ctx context.Context, ticketID string, fn TicketMatchFunc) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, owner := range slices.Sorted(maps.Keys(s.book)) {
		tickets := s.book[owner]
		for i := range tickets {
			if tickets[i].ID != ticketID {
				continue
			}
			if fn(owner, &tickets[i]) {
				return true, s.saveLocked(ctx)
			}
		}
	}
	return false, nil
}

// Contains reports whether any bucket holds a ticket with ticketID.
func (s *TicketStore) Contains(ticketID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tickets := range s.book {
		for _, t := range tickets {
			if t.ID == ticketID {
				return true
			}
		}
	}
	return false
}

// All returns a copy of every bucket.
func (s *TicketStore) All() domain.TicketBook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Clone()
}

// Bucket returns a copy of owner's tickets; never nil.
func (s *TicketStore) Bucket(owner string) []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneTickets(s.book[owner])
}

func (s *TicketStore) saveLocked(ctx context.Context) error {
	data, err := json.MarshalIndent(s.book, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tickets document: %w", err)
	}
	return s.docs.Write(ctx, persistence.DocumentTickets, data)
}
