package redisstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

type UserStore struct {
	s *Store
}

// storedUser is the persisted document. models.User hides the
// password hash from API responses via json:"-", so the adapter keeps
// its own representation that writes the hash out.
type storedUser struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	PasswordHash       string    `json:"password_hash"`
	Avatar             string    `json:"avatar"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

func toStoredUser(user *models.User) storedUser {
	return storedUser{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		PasswordHash:       user.PasswordHash,
		Avatar:             user.Avatar,
		MustChangePassword: user.MustChangePassword,
		CreatedAt:          user.CreatedAt,
	}
}

func (su storedUser) toModel() *models.User {
	return &models.User{
		ID:                 su.ID,
		Email:              su.Email,
		Name:               su.Name,
		PasswordHash:       su.PasswordHash,
		Avatar:             su.Avatar,
		MustChangePassword: su.MustChangePassword,
		CreatedAt:          su.CreatedAt,
	}
}

func (u *UserStore) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()
	if err := u.s.setJSON(ctx, userKey(user.ID), toStoredUser(user)); err != nil {
		return err
	}
	if err := u.s.rdb.Set(ctx, userEmailKey(user.Email), user.ID, 0).Err(); err != nil {
		return err
	}
	if err := u.s.rdb.SAdd(ctx, usersIndex, user.ID).Err(); err != nil {
		return err
	}
	u.s.compensate(func(ctx context.Context) {
		u.s.rdb.Del(ctx, userKey(user.ID), userEmailKey(user.Email))
		u.s.rdb.SRem(ctx, usersIndex, user.ID)
	})
	return nil
}

func (u *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	var stored storedUser
	if err := u.s.getJSON(ctx, userKey(id), &stored); err != nil {
		return nil, err
	}
	return stored.toModel(), nil
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	id, err := u.s.rdb.Get(ctx, userEmailKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return u.GetByID(ctx, id)
}

func (u *UserStore) List(ctx context.Context) ([]models.User, error) {
	ids, err := u.s.rdb.SMembers(ctx, usersIndex).Result()
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := u.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, *user)
	}
	sortUsers(users)
	return users, nil
}

func (u *UserStore) ListByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	byID := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if _, ok := byID[id]; ok {
			continue
		}
		user, err := u.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		byID[id] = *user
	}
	return byID, nil
}

func (u *UserStore) UpdateProfile(ctx context.Context, id, name, avatar string) error {
	user, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Name = name
	user.Avatar = avatar
	return u.s.setJSON(ctx, userKey(id), toStoredUser(user))
}

func (u *UserStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	user, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	user.MustChangePassword = false
	return u.s.setJSON(ctx, userKey(id), toStoredUser(user))
}

// Delete fans the cascade out by hand: tokens, owned drills, owned
// sessions (with their slots and assignments), assignments naming the
// user as coach, then the user record itself.
func (u *UserStore) Delete(ctx context.Context, id string) error {
	user, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tokenIDs, err := u.s.rdb.SMembers(ctx, userTokensIndex(id)).Result()
	if err != nil {
		return err
	}
	for _, tokenID := range tokenIDs {
		u.s.rdb.Del(ctx, tokenKey(tokenID))
	}
	u.s.rdb.Del(ctx, userTokensIndex(id))

	drillIDs, err := u.s.rdb.SMembers(ctx, userDrillsIndex(id)).Result()
	if err != nil {
		return err
	}
	drills := &DrillStore{s: u.s}
	for _, drillID := range drillIDs {
		if err := drills.Delete(ctx, drillID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	u.s.rdb.Del(ctx, userDrillsIndex(id))

	sessionIDs, err := u.s.rdb.SMembers(ctx, userSessionsIndex(id)).Result()
	if err != nil {
		return err
	}
	sessions := &SessionStore{s: u.s}
	for _, sessionID := range sessionIDs {
		if err := sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	u.s.rdb.Del(ctx, userSessionsIndex(id))

	assignmentIDs, err := u.s.rdb.SMembers(ctx, coachAssignIndex(id)).Result()
	if err != nil {
		return err
	}
	for _, assignmentID := range assignmentIDs {
		var assignment models.CoachAssignment
		if err := u.s.getJSON(ctx, assignmentKey(assignmentID), &assignment); err == nil {
			u.s.rdb.SRem(ctx, sessionAssignIndex(assignment.SessionID), assignmentID)
		}
		u.s.rdb.Del(ctx, assignmentKey(assignmentID))
	}
	u.s.rdb.Del(ctx, coachAssignIndex(id))

	u.s.rdb.Del(ctx, userKey(id), userEmailKey(user.Email))
	return u.s.rdb.SRem(ctx, usersIndex, id).Err()
}

func sortUsers(users []models.User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
}
