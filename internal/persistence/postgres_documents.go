package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDocuments stores each document as a single row of the documents table.
type PostgresDocuments struct {
	pg   *Postgres
	pool *pgxpool.Pool
}

// NewPostgresDocuments wraps an open connection.
func NewPostgresDocuments(pg *Postgres) *PostgresDocuments {
	return &PostgresDocuments{pg: pg, pool: pg.PoolHandle()}
}

func (p *PostgresDocuments) Read(ctx context.Context, name string) ([]byte, error) {
	const query = `SELECT body::text FROM documents WHERE name=$1`
	var body string
	if err := p.pool.QueryRow(ctx, query, name).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("read document %s: %w", name, err)
	}
	return []byte(body), nil
}

func (p *PostgresDocuments) Write(ctx context.Context, name string, data []byte) error {
	const query = `
        INSERT INTO documents (name, body, updated_at)
        VALUES ($1, $2::json, NOW())
        ON CONFLICT (name) DO UPDATE SET body=EXCLUDED.body, updated_at=NOW()`
	if _, err := p.pool.Exec(ctx, query, name, string(data)); err != nil {
		return fmt.Errorf("write document %s: %w", name, err)
	}
	return nil
}

func (p *PostgresDocuments) Ping(ctx context.Context) error {
	return p.pg.Ping(ctx)
}
