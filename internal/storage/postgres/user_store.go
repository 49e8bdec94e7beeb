package postgres

import (
	"context"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

type UserStore struct {
	db DBTX
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, avatar, must_change_password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return s.db.QueryRow(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Avatar,
		user.MustChangePassword,
	).Scan(&user.CreatedAt)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, name, password_hash, avatar, must_change_password, created_at
		FROM users
		WHERE id = $1
	`
	var user models.User
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Avatar,
		&user.MustChangePassword,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, password_hash, avatar, must_change_password, created_at
		FROM users
		WHERE email = $1
	`
	var user models.User
	err := s.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Avatar,
		&user.MustChangePassword,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, email, name, password_hash, avatar, must_change_password, created_at
		FROM users
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.PasswordHash,
			&user.Avatar,
			&user.MustChangePassword,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *UserStore) ListByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	byID := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	query := `
		SELECT id, email, name, password_hash, avatar, must_change_password, created_at
		FROM users
		WHERE id = ANY($1)
	`
	rows, err := s.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.PasswordHash,
			&user.Avatar,
			&user.MustChangePassword,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		byID[user.ID] = user
	}
	return byID, rows.Err()
}

func (s *UserStore) UpdateProfile(ctx context.Context, id, name, avatar string) error {
	query := `
		UPDATE users
		SET name = $2, avatar = $3
		WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query, id, name, avatar)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, must_change_password = FALSE
		WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete relies on foreign keys: auth_tokens, drills, training
// sessions (and through them slots and assignments) and coach
// assignments all cascade from the users row.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
