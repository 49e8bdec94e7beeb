// Package redisstore implements storage.Store on Redis as a document
// store: one JSON value per record plus secondary index sets. Redis
// has no multi-key transactions spanning reads, so InTx runs the
// function directly and compensates for partially created records
// when it fails.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/morses-code/football-training-planner/internal/storage"
)

type Store struct {
	rdb *redis.Client

	// undo collects compensation steps for records created inside
	// InTx; nil outside of one.
	undo *[]func(context.Context)
}

func NewStore(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Store{rdb: rdb}, nil
}

func (s *Store) Users() storage.UserStore             { return &UserStore{s: s} }
func (s *Store) Tokens() storage.TokenStore           { return &TokenStore{s: s} }
func (s *Store) Drills() storage.DrillStore           { return &DrillStore{s: s} }
func (s *Store) Sessions() storage.SessionStore       { return &SessionStore{s: s} }
func (s *Store) Slots() storage.SlotStore             { return &SlotStore{s: s} }
func (s *Store) Assignments() storage.AssignmentStore { return &AssignmentStore{s: s} }

// InTx gives best-effort atomicity: fn runs against a store that
// records an undo step for every record it creates, and a failure
// rolls those creations back so no orphaned session is left behind.
// Deletions are not compensated.
func (s *Store) InTx(ctx context.Context, fn func(storage.Store) error) error {
	if s.undo != nil {
		return fn(s)
	}

	undo := make([]func(context.Context), 0)
	scoped := &Store{rdb: s.rdb, undo: &undo}
	if err := fn(scoped); err != nil {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i](ctx)
		}
		return err
	}
	return nil
}

func (s *Store) Close() {
	_ = s.rdb.Close()
}

func (s *Store) compensate(fn func(context.Context)) {
	if s.undo != nil {
		*s.undo = append(*s.undo, fn)
	}
}

func (s *Store) setJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, 0).Err()
}

func notFoundOr(err error) error {
	if errors.Is(err, redis.Nil) {
		return storage.ErrNotFound
	}
	return err
}

func (s *Store) getJSON(ctx context.Context, key string, dest any) error {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return storage.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}
