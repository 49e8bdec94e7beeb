// Package postgres implements storage.Store on PostgreSQL via pgx.
// Cascades are delegated to foreign keys and InTx maps onto a real
// database transaction.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/morses-code/football-training-planner/internal/storage"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every store
// works inside or outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

func newTxStore(tx pgx.Tx) *Store {
	return &Store{db: tx}
}

func (s *Store) Users() storage.UserStore             { return &UserStore{db: s.db} }
func (s *Store) Tokens() storage.TokenStore           { return &TokenStore{db: s.db} }
func (s *Store) Drills() storage.DrillStore           { return &DrillStore{db: s.db} }
func (s *Store) Sessions() storage.SessionStore       { return &SessionStore{db: s.db} }
func (s *Store) Slots() storage.SlotStore             { return &SlotStore{db: s.db} }
func (s *Store) Assignments() storage.AssignmentStore { return &AssignmentStore{db: s.db} }

func (s *Store) InTx(ctx context.Context, fn func(storage.Store) error) error {
	if s.pool == nil {
		// Already transaction-bound.
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(newTxStore(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}
