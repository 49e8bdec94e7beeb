package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

func integrationStore(t *testing.T) *Store {
	t.Helper()
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set, skipping integration test")
	}
	store, err := NewStore(redisURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func seedUser(t *testing.T, store *Store) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		Name:         "Integration Coach",
		PasswordHash: "x",
		Avatar:       "user-circle",
	}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Users().Delete(context.Background(), user.ID)
	})
	return user
}

func TestUserEmailLookup(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()
	user := seedUser(t, store)

	fetched, err := store.Users().GetByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if fetched.ID != user.ID {
		t.Errorf("fetched %q, want %q", fetched.ID, user.ID)
	}

	if _, err := store.Users().GetByEmail(ctx, "missing@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionDateIndex(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()
	user := seedUser(t, store)

	date := time.Date(2031, 7, 12, 0, 0, 0, 0, time.UTC)
	session := &models.TrainingSession{
		ID:          uuid.NewString(),
		SessionDate: date,
		StartTime:   "18:00",
		Duration:    60,
		CreatedBy:   user.ID,
	}
	if err := store.Sessions().Create(ctx, session); err != nil {
		t.Fatalf("create session: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Sessions().Delete(context.Background(), session.ID)
	})

	found, err := store.Sessions().GetByDate(ctx, date.Add(7*time.Hour))
	if err != nil {
		t.Fatalf("GetByDate: %v", err)
	}
	if found.ID != session.ID {
		t.Errorf("GetByDate returned %q, want %q", found.ID, session.ID)
	}

	if _, err := store.Sessions().GetByDate(ctx, date.AddDate(0, 0, 1)); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty date, got %v", err)
	}
}

func TestUserKeepsPasswordHashInRedis(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		Name:         "Integration Coach",
		PasswordHash: "$2a$10$integrationhash",
		Avatar:       "user-circle",
	}
	if err := store.Users().Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Users().Delete(context.Background(), user.ID)
	})

	fetched, err := store.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched.PasswordHash != user.PasswordHash {
		t.Errorf("hash = %q, want %q", fetched.PasswordHash, user.PasswordHash)
	}

	if err := store.Users().UpdateProfile(ctx, user.ID, "Renamed", "football"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	fetched, _ = store.Users().GetByID(ctx, user.ID)
	if fetched.PasswordHash != user.PasswordHash {
		t.Errorf("profile update dropped the hash: %q", fetched.PasswordHash)
	}
}

func TestTokenLifecycle(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()
	user := seedUser(t, store)

	token := &models.AuthToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}
	if err := store.Tokens().Create(ctx, token); err != nil {
		t.Fatalf("create token: %v", err)
	}
	if err := store.Tokens().Delete(ctx, token.ID); err != nil {
		t.Fatalf("delete token: %v", err)
	}
	if _, err := store.Tokens().GetByID(ctx, token.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("token survived delete: %v", err)
	}

	// Deleting an absent token is a no-op, not an error.
	if err := store.Tokens().Delete(ctx, uuid.NewString()); err != nil {
		t.Errorf("delete of missing token: %v", err)
	}
}

// A failed InTx must clean up every record it created, since Redis
// gives no real rollback.
func TestInTxCompensatesPartialWrites(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()
	user := seedUser(t, store)

	sessionID := uuid.NewString()
	slotID := uuid.NewString()
	sentinel := errors.New("boom")

	err := store.InTx(ctx, func(tx storage.Store) error {
		session := &models.TrainingSession{
			ID:          sessionID,
			SessionDate: time.Date(2031, 9, 9, 0, 0, 0, 0, time.UTC),
			StartTime:   "18:00",
			Duration:    60,
			CreatedBy:   user.ID,
		}
		if err := tx.Sessions().Create(ctx, session); err != nil {
			return err
		}
		slots := []models.Slot{
			{ID: slotID, SessionID: sessionID, SlotType: "warmup", SlotOrder: 1, Duration: 15},
		}
		if err := tx.Slots().CreateBatch(ctx, slots); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("InTx error = %v, want sentinel", err)
	}

	if _, err := store.Sessions().GetByID(ctx, sessionID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("session not compensated: %v", err)
	}
	slots, err := store.Slots().ListBySession(ctx, sessionID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("slots not compensated: %d left", len(slots))
	}
	if _, err := store.Sessions().GetByDate(ctx, time.Date(2031, 9, 9, 0, 0, 0, 0, time.UTC)); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("date index not compensated: %v", err)
	}
}
