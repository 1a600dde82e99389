// Package counter serves the next contract number from the contract_counter
// table.
package counter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const nextNumberQuery = `SELECT current_number FROM contract_counter WHERE id = 1`

// Store reports the number the next generated contract will receive.
type Store interface {
	Next(ctx context.Context) (int64, error)
}

// Querier is the slice of pgx the store needs. *pgxpool.Pool satisfies it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore reads the counter without incrementing it.
type PGStore struct {
	db Querier
}

// NewPGStore wraps an existing pool or connection.
func NewPGStore(db Querier) *PGStore {
	return &PGStore{db: db}
}

// Next returns current_number + 1, or 1 when the counter row does not exist.
func (s *PGStore) Next(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrNotConfigured
	}
	var current int64
	err := s.db.QueryRow(ctx, nextNumberQuery).Scan(&current)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return 1, nil
	case err != nil:
		return 0, fmt.Errorf("counter: read current number: %w", err)
	}
	return current + 1, nil
}

// Connect opens a pool for dsn with conservative limits.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrNotConfigured
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("counter: parse dsn: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MinConns = 0
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("counter: connect: %w", err)
	}
	return pool, nil
}
