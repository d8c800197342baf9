package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileDocuments(t *testing.T) (*FileDocuments, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileDocuments(map[string]string{
		DocumentUsers:   filepath.Join(dir, "users.json"),
		DocumentTickets: filepath.Join(dir, "tickets.json"),
	}), dir
}

func TestFileDocuments_ReadMissing(t *testing.T) {
	docs, _ := newTestFileDocuments(t)

	_, err := docs.Read(context.Background(), DocumentTickets)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestFileDocuments_WriteReplacesWholeDocument(t *testing.T) {
	docs, dir := newTestFileDocuments(t)
	ctx := context.Background()

	require.NoError(t, docs.Write(ctx, DocumentTickets, []byte(`{"alice": []}`)))
	require.NoError(t, docs.Write(ctx, DocumentTickets, []byte(`{}`)))

	got, err := docs.Read(ctx, DocumentTickets)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))

	info, err := os.Stat(filepath.Join(dir, "tickets.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(documentFilePerms), info.Mode().Perm())
}

func TestFileDocuments_UnknownName(t *testing.T) {
	docs, _ := newTestFileDocuments(t)

	_, err := docs.Read(context.Background(), "sessions")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDocumentNotFound)
	assert.Error(t, docs.Write(context.Background(), "sessions", []byte(`{}`)))
}

func TestFileDocuments_Ping(t *testing.T) {
	docs, _ := newTestFileDocuments(t)
	assert.NoError(t, docs.Ping(context.Background()))

	missing := NewFileDocuments(map[string]string{DocumentUsers: filepath.Join(t.TempDir(), "nope", "users.json")})
	assert.Error(t, missing.Ping(context.Background()))
}
