package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
	"github.com/morses-code/football-training-planner/pkg/utils"
)

const (
	// Issued tokens live 30 days and are refreshed once less than
	// 15 days remain.
	tokenDuration     = 30 * 24 * time.Hour
	tokenRefreshAfter = 15 * 24 * time.Hour

	minPasswordLength = 6
	defaultAvatar     = "user-circle"
)

type AuthService struct {
	store storage.Store
}

func NewAuthService(store storage.Store) *AuthService {
	return &AuthService{store: store}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Avatar   string
}

type Credentials struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Credentials, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrInvalidInput
	}

	if _, err := s.store.Users().GetByEmail(ctx, email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	avatar := input.Avatar
	if avatar == "" {
		avatar = defaultAvatar
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
		Avatar:       avatar,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueCredentials(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Credentials, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.Users().GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueCredentials(ctx, user)
}

// Validate resolves a bearer token to its user. Expired tokens are
// deleted on sight; tokens past the refresh point get a fresh expiry.
func (s *AuthService) Validate(ctx context.Context, token string) (*models.User, *models.AuthToken, error) {
	id := utils.HashToken(token)

	record, err := s.store.Tokens().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	now := time.Now()
	if now.After(record.ExpiresAt) {
		_ = s.store.Tokens().Delete(ctx, id)
		return nil, nil, ErrNotFound
	}
	if record.ExpiresAt.Sub(now) < tokenRefreshAfter {
		record.ExpiresAt = now.Add(tokenDuration)
		if err := s.store.Tokens().UpdateExpiry(ctx, id, record.ExpiresAt); err != nil {
			return nil, nil, err
		}
	}

	user, err := s.store.Users().GetByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return user, record, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.store.Tokens().Delete(ctx, utils.HashToken(token))
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return ErrInvalidInput
	}
	if len(newPassword) < minPasswordLength {
		return ErrInvalidInput
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !utils.CheckPassword(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.Users().UpdatePassword(ctx, userID, hash)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID, name, avatar string) (*models.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(avatar) == "" {
		return nil, ErrInvalidInput
	}

	if err := s.store.Users().UpdateProfile(ctx, userID, strings.TrimSpace(name), avatar); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.store.Users().GetByID(ctx, userID)
}

func (s *AuthService) issueCredentials(ctx context.Context, user *models.User) (*Credentials, error) {
	token, err := utils.GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	record := &models.AuthToken{
		ID:        utils.HashToken(token),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(tokenDuration),
	}
	if err := s.store.Tokens().Create(ctx, record); err != nil {
		return nil, err
	}

	return &Credentials{User: user, Token: token, ExpiresAt: record.ExpiresAt}, nil
}

func normalizeEmail(email string) (string, error) {
	parsed, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", err
	}
	return strings.ToLower(parsed.Address), nil
}
