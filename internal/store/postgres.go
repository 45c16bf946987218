package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
    url        TEXT PRIMARY KEY,
    summary    TEXT NOT NULL,
    image      TEXT NOT NULL DEFAULT '',
    link       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

var _ Store = (*Postgres)(nil)

// NewPostgres connects, pings, and ensures the articles table exists.
func NewPostgres(ctx context.Context, dsn string, logger zerolog.Logger) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info().Msg("connected to database")
	return &Postgres{pool: pool, logger: logger}, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) Insert(ctx context.Context, rec Record) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO articles (url, summary, image, link) VALUES ($1, $2, $3, $4)`,
		rec.URL, rec.Summary, rec.Image, rec.Link,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (p *Postgres) FindByURL(ctx context.Context, url string) (Record, error) {
	var rec Record
	err := p.pool.QueryRow(ctx,
		`SELECT url, summary, image, link FROM articles WHERE url = $1`, url,
	).Scan(&rec.URL, &rec.Summary, &rec.Image, &rec.Link)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("find article: %w", err)
	}
	return rec, nil
}

func (p *Postgres) List(ctx context.Context) ([]Record, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT url, summary, image, link FROM articles ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.URL, &rec.Summary, &rec.Image, &rec.Link); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return records, nil
}

func (p *Postgres) Delete(ctx context.Context, url string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM articles WHERE url = $1`, url)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
