package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
	"github.com/morses-code/football-training-planner/pkg/utils"
)

// UserService covers admin user management. Only the configured admin
// account may provision or remove users; everything else in the app
// is open to any authenticated coach.
type UserService struct {
	store      storage.Store
	adminEmail string
}

func NewUserService(store storage.Store, adminEmail string) *UserService {
	return &UserService{store: store, adminEmail: strings.ToLower(adminEmail)}
}

func (s *UserService) IsAdmin(user *models.User) bool {
	return user != nil && user.Email == s.adminEmail
}

// EnsureAdmin provisions the admin account on first boot when an
// admin password is configured. Existing accounts are left alone.
func (s *UserService) EnsureAdmin(ctx context.Context, password string) error {
	if password == "" {
		return nil
	}

	if _, err := s.store.Users().GetByEmail(ctx, s.adminEmail); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.Users().Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Email:        s.adminEmail,
		Name:         "System Admin",
		PasswordHash: hash,
		Avatar:       defaultAvatar,
	})
}

type CreateUserInput struct {
	Email              string
	Name               string
	Password           string
	Avatar             string
	MustChangePassword bool
}

func (s *UserService) CreateUser(
	ctx context.Context,
	actor *models.User,
	input CreateUserInput,
) (*models.User, error) {
	if !s.IsAdmin(actor) {
		return nil, ErrForbidden
	}

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
		ID:                 uuid.NewString(),
		Email:              email,
		Name:               strings.TrimSpace(input.Name),
		PasswordHash:       hash,
		Avatar:             avatar,
		MustChangePassword: input.MustChangePassword,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if !s.IsAdmin(actor) {
		return nil, ErrForbidden
	}
	return s.store.Users().List(ctx)
}

// DeleteUser removes the user and everything they own. The admin
// account itself cannot be deleted.
func (s *UserService) DeleteUser(ctx context.Context, actor *models.User, userID string) error {
	if !s.IsAdmin(actor) {
		return ErrForbidden
	}

	target, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if target.Email == s.adminEmail {
		return ErrForbidden
	}

	if err := s.store.Users().Delete(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
