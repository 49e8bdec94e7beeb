package services

import (
	"context"
	"sort"
	"time"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

// memStore is an in-memory storage.Store used by the service tests. It
// mirrors the adapters' cascade semantics so the services can be
// exercised without a database.
type memStore struct {
	users       map[string]models.User
	tokens      map[string]models.AuthToken
	drills      map[string]models.Drill
	sessions    map[string]models.TrainingSession
	slots       map[string]models.Slot
	assignments map[string]models.CoachAssignment
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[string]models.User),
		tokens:      make(map[string]models.AuthToken),
		drills:      make(map[string]models.Drill),
		sessions:    make(map[string]models.TrainingSession),
		slots:       make(map[string]models.Slot),
		assignments: make(map[string]models.CoachAssignment),
	}
}

func (m *memStore) Users() storage.UserStore             { return memUserStore{m} }
func (m *memStore) Tokens() storage.TokenStore           { return memTokenStore{m} }
func (m *memStore) Drills() storage.DrillStore           { return memDrillStore{m} }
func (m *memStore) Sessions() storage.SessionStore       { return memSessionStore{m} }
func (m *memStore) Slots() storage.SlotStore             { return memSlotStore{m} }
func (m *memStore) Assignments() storage.AssignmentStore { return memAssignmentStore{m} }

func (m *memStore) InTx(ctx context.Context, fn func(storage.Store) error) error {
	return fn(m)
}

func (m *memStore) Close() {}

type memUserStore struct{ m *memStore }

func (s memUserStore) Create(_ context.Context, user *models.User) error {
	s.m.users[user.ID] = *user
	return nil
}

func (s memUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := s.m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (s memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.m.users {
		if user.Email == email {
			userCopy := user
			return &userCopy, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s memUserStore) List(_ context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(s.m.users))
	for _, user := range s.m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (s memUserStore) ListByIDs(_ context.Context, ids []string) (map[string]models.User, error) {
	result := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if user, ok := s.m.users[id]; ok {
			result[id] = user
		}
	}
	return result, nil
}

func (s memUserStore) UpdateProfile(_ context.Context, id, name, avatar string) error {
	user, ok := s.m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	user.Name = name
	user.Avatar = avatar
	s.m.users[id] = user
	return nil
}

func (s memUserStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := s.m.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	user.PasswordHash = passwordHash
	user.MustChangePassword = false
	s.m.users[id] = user
	return nil
}

func (s memUserStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.m.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.m.users, id)
	for tokenID, token := range s.m.tokens {
		if token.UserID == id {
			delete(s.m.tokens, tokenID)
		}
	}
	for assignmentID, assignment := range s.m.assignments {
		if assignment.CoachID == id {
			delete(s.m.assignments, assignmentID)
		}
	}
	for drillID, drill := range s.m.drills {
		if drill.CreatedBy == id {
			_ = memDrillStore{s.m}.Delete(ctx, drillID)
		}
	}
	for sessionID, session := range s.m.sessions {
		if session.CreatedBy == id {
			_ = memSessionStore{s.m}.Delete(ctx, sessionID)
		}
	}
	return nil
}

type memTokenStore struct{ m *memStore }

func (s memTokenStore) Create(_ context.Context, token *models.AuthToken) error {
	s.m.tokens[token.ID] = *token
	return nil
}

func (s memTokenStore) GetByID(_ context.Context, id string) (*models.AuthToken, error) {
	token, ok := s.m.tokens[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &token, nil
}

func (s memTokenStore) UpdateExpiry(_ context.Context, id string, expiresAt time.Time) error {
	token, ok := s.m.tokens[id]
	if !ok {
		return storage.ErrNotFound
	}
	token.ExpiresAt = expiresAt
	s.m.tokens[id] = token
	return nil
}

func (s memTokenStore) Delete(_ context.Context, id string) error {
	if _, ok := s.m.tokens[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.m.tokens, id)
	return nil
}

type memDrillStore struct{ m *memStore }

func (s memDrillStore) Create(_ context.Context, drill *models.Drill) error {
	s.m.drills[drill.ID] = *drill
	return nil
}

func (s memDrillStore) GetByID(_ context.Context, id string) (*models.Drill, error) {
	drill, ok := s.m.drills[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &drill, nil
}

func (s memDrillStore) List(_ context.Context) ([]models.Drill, error) {
	drills := make([]models.Drill, 0, len(s.m.drills))
	for _, drill := range s.m.drills {
		drills = append(drills, drill)
	}
	sort.Slice(drills, func(i, j int) bool { return drills[i].Name < drills[j].Name })
	return drills, nil
}

func (s memDrillStore) ListByIDs(_ context.Context, ids []string) (map[string]models.Drill, error) {
	result := make(map[string]models.Drill, len(ids))
	for _, id := range ids {
		if drill, ok := s.m.drills[id]; ok {
			result[id] = drill
		}
	}
	return result, nil
}

func (s memDrillStore) Update(_ context.Context, drill *models.Drill) error {
	if _, ok := s.m.drills[drill.ID]; !ok {
		return storage.ErrNotFound
	}
	s.m.drills[drill.ID] = *drill
	return nil
}

func (s memDrillStore) Delete(_ context.Context, id string) error {
	if _, ok := s.m.drills[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.m.drills, id)
	for slotID, slot := range s.m.slots {
		if slot.DrillID != nil && *slot.DrillID == id {
			slot.DrillID = nil
			s.m.slots[slotID] = slot
		}
	}
	return nil
}

type memSessionStore struct{ m *memStore }

func (s memSessionStore) Create(_ context.Context, session *models.TrainingSession) error {
	s.m.sessions[session.ID] = *session
	return nil
}

func (s memSessionStore) GetByID(_ context.Context, id string) (*models.TrainingSession, error) {
	session, ok := s.m.sessions[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &session, nil
}

func (s memSessionStore) GetByDate(_ context.Context, date time.Time) (*models.TrainingSession, error) {
	for _, session := range s.m.sessions {
		if sameCalendarDay(session.SessionDate, date) {
			sessionCopy := session
			return &sessionCopy, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s memSessionStore) Update(_ context.Context, session *models.TrainingSession) error {
	if _, ok := s.m.sessions[session.ID]; !ok {
		return storage.ErrNotFound
	}
	s.m.sessions[session.ID] = *session
	return nil
}

func (s memSessionStore) Delete(_ context.Context, id string) error {
	if _, ok := s.m.sessions[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.m.sessions, id)
	for slotID, slot := range s.m.slots {
		if slot.SessionID == id {
			delete(s.m.slots, slotID)
		}
	}
	for assignmentID, assignment := range s.m.assignments {
		if assignment.SessionID == id {
			delete(s.m.assignments, assignmentID)
		}
	}
	return nil
}

func (s memSessionStore) List(_ context.Context, filter storage.SessionListFilter) ([]models.SessionSummary, error) {
	summaries := make([]models.SessionSummary, 0, len(s.m.sessions))
	for _, session := range s.m.sessions {
		if filter.Upcoming && session.SessionDate.Before(filter.From) {
			continue
		}
		summary := models.SessionSummary{TrainingSession: session, SlotTypes: []string{}}
		seenTypes := make(map[string]bool)
		for _, slot := range s.m.slots {
			if slot.SessionID != session.ID {
				continue
			}
			summary.SlotCount++
			if slot.DrillID != nil {
				summary.DrillsAssigned++
			}
			if !seenTypes[slot.SlotType] {
				seenTypes[slot.SlotType] = true
				summary.SlotTypes = append(summary.SlotTypes, slot.SlotType)
			}
		}
		sort.Strings(summary.SlotTypes)
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if filter.Upcoming {
			return summaries[i].SessionDate.Before(summaries[j].SessionDate)
		}
		return summaries[j].SessionDate.Before(summaries[i].SessionDate)
	})
	return summaries, nil
}

type memSlotStore struct{ m *memStore }

func (s memSlotStore) CreateBatch(_ context.Context, slots []models.Slot) error {
	for _, slot := range slots {
		s.m.slots[slot.ID] = slot
	}
	return nil
}

func (s memSlotStore) ListBySession(_ context.Context, sessionID string) ([]models.Slot, error) {
	slots := make([]models.Slot, 0)
	for _, slot := range s.m.slots {
		if slot.SessionID == sessionID {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].SlotOrder < slots[j].SlotOrder })
	return slots, nil
}

func (s memSlotStore) DeleteBySession(_ context.Context, sessionID string) error {
	for slotID, slot := range s.m.slots {
		if slot.SessionID == sessionID {
			delete(s.m.slots, slotID)
		}
	}
	return nil
}

type memAssignmentStore struct{ m *memStore }

func (s memAssignmentStore) CreateBatch(_ context.Context, assignments []models.CoachAssignment) error {
	for _, assignment := range assignments {
		s.m.assignments[assignment.ID] = assignment
	}
	return nil
}

func (s memAssignmentStore) ListBySession(_ context.Context, sessionID string) ([]models.CoachAssignment, error) {
	assignments := make([]models.CoachAssignment, 0)
	for _, assignment := range s.m.assignments {
		if assignment.SessionID == sessionID {
			assignments = append(assignments, assignment)
		}
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

func (s memAssignmentStore) ListByCoach(_ context.Context, coachID string) ([]models.CoachAssignment, error) {
	assignments := make([]models.CoachAssignment, 0)
	for _, assignment := range s.m.assignments {
		if assignment.CoachID == coachID {
			assignments = append(assignments, assignment)
		}
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

func (s memAssignmentStore) DeleteBySession(_ context.Context, sessionID string) error {
	for assignmentID, assignment := range s.m.assignments {
		if assignment.SessionID == sessionID {
			delete(s.m.assignments, assignmentID)
		}
	}
	return nil
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
