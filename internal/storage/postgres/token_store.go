package postgres

import (
	"context"
	"time"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

type TokenStore struct {
	db DBTX
}

func (s *TokenStore) Create(ctx context.Context, token *models.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (id, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.Exec(ctx, query, token.ID, token.UserID, token.ExpiresAt)
	return err
}

func (s *TokenStore) GetByID(ctx context.Context, id string) (*models.AuthToken, error) {
	query := `
		SELECT id, user_id, expires_at
		FROM auth_tokens
		WHERE id = $1
	`
	var token models.AuthToken
	err := s.db.QueryRow(ctx, query, id).Scan(&token.ID, &token.UserID, &token.ExpiresAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &token, nil
}

func (s *TokenStore) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	query := `
		UPDATE auth_tokens
		SET expires_at = $2
		WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query, id, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM auth_tokens WHERE id = $1`, id)
	return err
}
