package persistence

import (
	"context"
	"errors"
)

// Names of the two documents the service persists.
const (
	DocumentUsers   = "users"
	DocumentTickets = "tickets"
)

// ErrDocumentNotFound is returned by Read when a document has never been written.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore reads and replaces whole JSON documents by name.
type DocumentStore interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Ping(ctx context.Context) error
}
