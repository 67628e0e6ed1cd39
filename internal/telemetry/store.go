// Package telemetry persists match results to PostgreSQL for balance
// analysis. It sits outside the tick loop: the simulation never blocks
// on the database.
package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/kjard-games/snow-sub006/internal/sim"
	"github.com/kjard-games/snow-sub006/internal/telemetry/migrations"
)

// Store writes match results to PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database, runs pending migrations and returns a
// ready store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if err := migrate(dsn); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect telemetry db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping telemetry db: %w", err)
	}
	slog.Info("telemetry store ready")
	return &Store{pool: pool}, nil
}

// migrate applies schema migrations through the database/sql driver;
// the pool handles everything after.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// SaveResult persists one finished match.
func (s *Store) SaveResult(ctx context.Context, r sim.Result) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO match_results (seed, winner, ticks, digest) VALUES ($1, $2, $3, $4)`,
		int64(r.Seed), r.Winner.String(), r.Ticks, r.Digest)
	if err != nil {
		return fmt.Errorf("save match result: %w", err)
	}
	return nil
}

// SaveBatch persists a batch of results in one transaction.
func (s *Store) SaveBatch(ctx context.Context, results []sim.Result) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin telemetry tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range results {
		if _, err := tx.Exec(ctx,
			`INSERT INTO match_results (seed, winner, ticks, digest) VALUES ($1, $2, $3, $4)`,
			int64(r.Seed), r.Winner.String(), r.Ticks, r.Digest); err != nil {
			return fmt.Errorf("save match result: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit telemetry tx: %w", err)
	}
	slog.Info("batch results saved", "count", len(results))
	return nil
}
