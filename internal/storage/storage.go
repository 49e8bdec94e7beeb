// Package storage defines the persistence contract the services are
// written against. Two adapters implement it: postgres (relational,
// cascades and atomicity delegated to the engine) and redisstore
// (document-style, cascades fanned out by the adapter).
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/morses-code/football-training-planner/internal/models"
)

// ErrNotFound is returned by every adapter when a lookup misses, so
// callers never depend on engine-specific sentinels.
var ErrNotFound = errors.New("record not found")

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
	UpdateProfile(ctx context.Context, id, name, avatar string) error
	// UpdatePassword also clears the must_change_password flag.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// Delete removes the user and everything they own: their auth
	// tokens, their coach assignments, their drills, and their
	// training sessions (with the sessions' slots and assignments).
	Delete(ctx context.Context, id string) error
}

type TokenStore interface {
	Create(ctx context.Context, token *models.AuthToken) error
	GetByID(ctx context.Context, id string) (*models.AuthToken, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type DrillStore interface {
	Create(ctx context.Context, drill *models.Drill) error
	GetByID(ctx context.Context, id string) (*models.Drill, error)
	List(ctx context.Context) ([]models.Drill, error)
	ListByIDs(ctx context.Context, ids []string) (map[string]models.Drill, error)
	Update(ctx context.Context, drill *models.Drill) error
	// Delete removes the drill and nulls the drill reference on any
	// slot that used it; the slots themselves survive.
	Delete(ctx context.Context, id string) error
}

// SessionListFilter selects and orders session summaries. When
// Upcoming is set, only sessions dated From or later are returned, in
// ascending date order; otherwise all sessions, newest first. From is
// a UTC-midnight calendar date, matching how session dates are stored.
type SessionListFilter struct {
	Upcoming bool
	From     time.Time
}

type SessionStore interface {
	Create(ctx context.Context, session *models.TrainingSession) error
	GetByID(ctx context.Context, id string) (*models.TrainingSession, error)
	// GetByDate returns the session on the given calendar date, or
	// ErrNotFound. At most one can exist per date.
	GetByDate(ctx context.Context, date time.Time) (*models.TrainingSession, error)
	Update(ctx context.Context, session *models.TrainingSession) error
	// Delete cascades to the session's slots and assignments.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter SessionListFilter) ([]models.SessionSummary, error)
}

type SlotStore interface {
	CreateBatch(ctx context.Context, slots []models.Slot) error
	ListBySession(ctx context.Context, sessionID string) ([]models.Slot, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

type AssignmentStore interface {
	CreateBatch(ctx context.Context, assignments []models.CoachAssignment) error
	ListBySession(ctx context.Context, sessionID string) ([]models.CoachAssignment, error)
	ListByCoach(ctx context.Context, coachID string) ([]models.CoachAssignment, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

// Store bundles the per-entity stores behind one injectable handle.
type Store interface {
	Users() UserStore
	Tokens() TokenStore
	Drills() DrillStore
	Sessions() SessionStore
	Slots() SlotStore
	Assignments() AssignmentStore

	// InTx runs fn against a Store whose writes are applied
	// all-or-nothing where the engine supports it. The postgres
	// adapter provides a real transaction; the redis adapter runs fn
	// directly and compensates for partial writes on error.
	InTx(ctx context.Context, fn func(Store) error) error

	Close()
}
