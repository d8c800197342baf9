package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/spec-kit/ticket-board/internal/persistence"
)

// memDocuments is an in-memory DocumentStore that counts writes.
type memDocuments struct {
	mu       sync.Mutex
	data     map[string][]byte
	writes   map[string]int
	writeErr error
}

func newMemDocuments() *memDocuments {
	return &memDocuments{data: map[string][]byte{}, writes: map[string]int{}}
}

func (m *memDocuments) Read(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[name]
	if !ok {
		return nil, persistence.ErrDocumentNotFound
	}
	return append([]byte(nil), d...), nil
}

func (m *memDocuments) Write(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[name] = append([]byte(nil), data...)
	m.writes[name]++
	return nil
}

func (m *memDocuments) Ping(context.Context) error { return nil }

func (m *memDocuments) writeCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[name]
}

var errDiskFull = errors.New("disk full")
