package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

type TokenStore struct {
	s *Store
}

func (t *TokenStore) Create(ctx context.Context, token *models.AuthToken) error {
	if err := t.s.setJSON(ctx, tokenKey(token.ID), token); err != nil {
		return err
	}
	return t.s.rdb.SAdd(ctx, userTokensIndex(token.UserID), token.ID).Err()
}

func (t *TokenStore) GetByID(ctx context.Context, id string) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := t.s.getJSON(ctx, tokenKey(id), &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (t *TokenStore) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	token, err := t.GetByID(ctx, id)
	if err != nil {
		return err
	}
	token.ExpiresAt = expiresAt
	return t.s.setJSON(ctx, tokenKey(id), token)
}

// Delete is a no-op for tokens that are already gone; any other
// lookup failure is reported.
func (t *TokenStore) Delete(ctx context.Context, id string) error {
	token, err := t.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	t.s.rdb.SRem(ctx, userTokensIndex(token.UserID), id)
	return t.s.rdb.Del(ctx, tokenKey(id)).Err()
}
