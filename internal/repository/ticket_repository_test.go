package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/persistence"
)

func openTicket(id, owner, title, description string) domain.Ticket {
	return domain.Ticket{
		ID:       id,
		Title:    title,
		Status:   domain.TicketStatusOpen,
		Comments: []domain.Comment{{By: owner, Text: description}},
	}
}

func TestTicketStore_AppendCreatesBucket(t *testing.T) {
	docs := newMemDocuments()
	store, err := LoadTicketStore(context.Background(), docs)
	require.NoError(t, err)

	require.NoError(t, store.Append(context.Background(), "alice", openTicket("a1b2c3d4", "alice", "Printer broken", "No toner")))
	require.NoError(t, store.Append(context.Background(), "alice", openTicket("e5f6a7b8", "alice", "VPN", "Cannot connect")))

	bucket := store.Bucket("alice")
	require.Len(t, bucket, 2)
	assert.Equal(t, "a1b2c3d4", bucket[0].ID)
	assert.Equal(t, "e5f6a7b8", bucket[1].ID)
	assert.Equal(t, 2, docs.writeCount(persistence.DocumentTickets))
}

func TestTicketStore_BucketNeverNil(t *testing.T) {
	store, err := LoadTicketStore(context.Background(), newMemDocuments())
	require.NoError(t, err)

	b := store.Bucket("nobody")
	assert.NotNil(t, b)
	assert.Empty(t, b)
}

func TestTicketStore_UpdateScansAllBuckets(t *testing.T) {
	docs := newMemDocuments()
	store, err := LoadTicketStore(context.Background(), docs)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, "alice", openTicket("aaaa0001", "alice", "A", "a")))
	require.NoError(t, store.Append(ctx, "bob", openTicket("bbbb0001", "bob", "B", "b")))
	writesBefore := docs.writeCount(persistence.DocumentTickets)

	var seenOwner string
	ok, err := store.Update(ctx, "bbbb0001", func(owner string, ticket *domain.Ticket) bool {
		seenOwner = owner
		ticket.Status = domain.TicketStatusClosed
		return true
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bob", seenOwner)
	assert.Equal(t, domain.TicketStatusClosed, store.Bucket("bob")[0].Status)
	assert.Equal(t, writesBefore+1, docs.writeCount(persistence.DocumentTickets))
}

func TestTicketStore_UpdateDuplicateIDsFollowOwnerOrder(t *testing.T) {
	docs := newMemDocuments()
	docs.data[persistence.DocumentTickets] = []byte(`{
  "carol": [{"ticket_id": "dup00001", "title": "C", "status": "open", "comments": []}],
  "alice": [{"ticket_id": "dup00001", "title": "A", "status": "open", "comments": []}],
  "bob":   [{"ticket_id": "dup00001", "title": "B", "status": "open", "comments": []}]
}`)
	store, err := LoadTicketStore(context.Background(), docs)
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		var seen []string
		_, err := store.Update(ctx, "dup00001", func(owner string, _ *domain.Ticket) bool {
			seen = append(seen, owner)
			return false
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob", "carol"}, seen)
	}

	ok, err := store.Update(ctx, "dup00001", func(owner string, ticket *domain.Ticket) bool {
		if owner == "alice" {
			return false
		}
		ticket.Status = domain.TicketStatusClosed
		return true
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.TicketStatusOpen, store.Bucket("alice")[0].Status)
	assert.Equal(t, domain.TicketStatusClosed, store.Bucket("bob")[0].Status)
	assert.Equal(t, domain.TicketStatusOpen, store.Bucket("carol")[0].Status)
}

func TestTicketStore_UpdateRefusedOrMissingDoesNotPersist(t *testing.T) {
	docs := newMemDocuments()
	store, err := LoadTicketStore(context.Background(), docs)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, "alice", openTicket("aaaa0001", "alice", "A", "a")))
	writesBefore := docs.writeCount(persistence.DocumentTickets)

	ok, err := store.Update(ctx, "aaaa0001", func(string, *domain.Ticket) bool { return false })
	require.NoError(t, err)
	assert.False(t, ok)

	called := false
	ok, err = store.Update(ctx, "missing", func(string, *domain.Ticket) bool { called = true; return true })
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, called)

	assert.Equal(t, writesBefore, docs.writeCount(persistence.DocumentTickets))
}

func TestTicketStore_UpdateWriteFailureKeepsMemory(t *testing.T) {
	docs := newMemDocuments()
	store, err := LoadTicketStore(context.Background(), docs)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, "alice", openTicket("aaaa0001", "alice", "A", "a")))

	docs.writeErr = errDiskFull
	ok, err := store.Update(ctx, "aaaa0001", func(_ string, ticket *domain.Ticket) bool {
		ticket.Status = domain.TicketStatusClosed
		return true
	})
	assert.True(t, ok)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, domain.TicketStatusClosed, store.Bucket("alice")[0].Status)
}

func TestTicketStore_AllIsACopy(t *testing.T) {
	store, err := LoadTicketStore(context.Background(), newMemDocuments())
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), "alice", openTicket("aaaa0001", "alice", "A", "a")))

	book := store.All()
	book["alice"][0].Title = "mutated"
	delete(book, "alice")

	assert.Equal(t, "A", store.Bucket("alice")[0].Title)
	assert.True(t, store.Contains("aaaa0001"))
	assert.False(t, store.Contains("zzzz9999"))
}

func TestTicketStore_RoundTripThroughFile(t *testing.T) {
	dir := t.TempDir()
	docs := persistence.NewFileDocuments(map[string]string{
		persistence.DocumentTickets: filepath.Join(dir, "tickets.json"),
	})
	ctx := context.Background()

	store, err := LoadTicketStore(ctx, docs)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, "alice", openTicket("a1b2c3d4", "alice", "Printer broken", "No toner")))
	_, err = store.Update(ctx, "a1b2c3d4", func(_ string, ticket *domain.Ticket) bool {
		ticket.Comments = append(ticket.Comments, domain.Comment{By: "bob", Text: "Replacing now"})
		return true
	})
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, "carol", openTicket("c0ffee00", "carol", "Laptop", "Fan noise")))

	reloaded, err := LoadTicketStore(ctx, docs)
	require.NoError(t, err)
	assert.Equal(t, store.All(), reloaded.All())
}

func TestLoadTicketStore_MalformedFails(t *testing.T) {
	docs := newMemDocuments()
	docs.data[persistence.DocumentTickets] = []byte(`{"alice": {`)

	_, err := LoadTicketStore(context.Background(), docs)
	assert.Error(t, err)
}

func TestLoadTicketStore_NullDocument(t *testing.T) {
	docs := newMemDocuments()
	docs.data[persistence.DocumentTickets] = []byte(`null`)

	store, err := LoadTicketStore(context.Background(), docs)
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), "alice", openTicket("aaaa0001", "alice", "A", "a")))
}
