package redisstore

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/morses-code/football-training-planner/internal/models"
)

// The API model strips the password hash from JSON, so the adapter
// must persist users through its own representation or every stored
// account loses its hash.
func TestStoredUserRoundTripsPasswordHash(t *testing.T) {
	user := &models.User{
		ID:                 "u1",
		Email:              "jo@example.com",
		Name:               "Jo",
		PasswordHash:       "$2a$10$somehash",
		Avatar:             "user-circle",
		MustChangePassword: true,
		CreatedAt:          time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(toStoredUser(user))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), "password_hash") {
		t.Fatalf("stored document missing hash field: %s", data)
	}

	var stored storedUser
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	restored := stored.toModel()
	if restored.PasswordHash != user.PasswordHash {
		t.Errorf("hash = %q, want %q", restored.PasswordHash, user.PasswordHash)
	}
	if restored.Email != user.Email || !restored.MustChangePassword || !restored.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("round trip lost fields: %+v", restored)
	}
}
