package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

const defaultSessionDuration = 60

// SetupSlotIndex marks a coach entry as a session-level setup task
// with no slot.
const SetupSlotIndex = -1

// SessionService composes training sessions: the session record, its
// ordered slots, and its coach assignments are written as one unit.
type SessionService struct {
	store storage.Store
}

func NewSessionService(store storage.Store) *SessionService {
	return &SessionService{store: store}
}

type SlotInput struct {
	Type     string
	DrillID  *string
	Duration int
	Notes    *string
}

type CoachInput struct {
	CoachID string
	Role    string
	// SlotIndex is a 0-based index into the submitted slots, or
	// SetupSlotIndex for a setup task.
	SlotIndex int
	TaskType  *string
}

type ComposeSessionInput struct {
	Date       time.Time
	StartTime  string
	Duration   int
	Notes      *string
	SetupNotes *string
	Slots      []SlotInput
	Coaches    []CoachInput
}

// Create persists a new session with its slots and assignments. At
// most one session may exist per calendar date; both the pre-check
// and the unique index (on the relational backend) enforce it.
func (s *SessionService) Create(ctx context.Context, creatorID string, input ComposeSessionInput) (string, error) {
	if err := validateCompose(input); err != nil {
		return "", err
	}

	sessionID := uuid.NewString()
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		existing, err := tx.Sessions().GetByDate(ctx, input.Date)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if existing != nil {
			return ErrConflict
		}

		session := &models.TrainingSession{
			ID:          sessionID,
			SessionDate: input.Date,
			StartTime:   input.StartTime,
			Duration:    durationOrDefault(input.Duration),
			Notes:       combineNotes(input.Notes, input.SetupNotes),
			CreatedBy:   creatorID,
		}
		if err := tx.Sessions().Create(ctx, session); err != nil {
			return uniqueViolationToConflict(err)
		}

		return s.writeSlotsAndCoaches(ctx, tx, sessionID, input)
	})
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// Replace overwrites the session's scalar fields and rebuilds its
// slots and assignments from scratch; slot and assignment ids are not
// stable across edits.
func (s *SessionService) Replace(ctx context.Context, sessionID string, input ComposeSessionInput) error {
	if err := validateCompose(input); err != nil {
		return err
	}

	return s.store.InTx(ctx, func(tx storage.Store) error {
		session, err := tx.Sessions().GetByID(ctx, sessionID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		other, err := tx.Sessions().GetByDate(ctx, input.Date)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if other != nil && other.ID != sessionID {
			return ErrConflict
		}

		session.SessionDate = input.Date
		session.StartTime = input.StartTime
		session.Duration = durationOrDefault(input.Duration)
		session.Notes = combineNotes(input.Notes, input.SetupNotes)
		if err := tx.Sessions().Update(ctx, session); err != nil {
			return uniqueViolationToConflict(err)
		}

		if err := tx.Slots().DeleteBySession(ctx, sessionID); err != nil {
			return err
		}
		if err := tx.Assignments().DeleteBySession(ctx, sessionID); err != nil {
			return err
		}

		return s.writeSlotsAndCoaches(ctx, tx, sessionID, input)
	})
}

// Delete removes the session and cascades to its slots and
// assignments.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	if err := s.store.Sessions().Delete(ctx, sessionID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// List returns session summaries with slot counts derived at read
// time. timeframe "upcoming" keeps sessions dated today or later,
// soonest first; anything else lists all sessions, newest first.
func (s *SessionService) List(ctx context.Context, timeframe string) ([]models.SessionSummary, error) {
	filter := storage.SessionListFilter{}
	if strings.EqualFold(timeframe, "upcoming") {
		filter.Upcoming = true
		filter.From = startOfToday(time.Now())
	}
	return s.store.Sessions().List(ctx, filter)
}

// startOfToday maps the wall clock to the boundary stored session
// dates use: UTC midnight of the local calendar date. Truncating in
// the local zone instead would shift the boundary off today's
// sessions on any host not running UTC.
func startOfToday(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Get assembles the full session view: ordered slots joined with
// their drills, and assignments joined with coach info, setup tasks
// first.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*models.SessionDetail, error) {
	session, err := s.store.Sessions().GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	slots, err := s.store.Slots().ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	drillIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.DrillID != nil {
			drillIDs = append(drillIDs, *slot.DrillID)
		}
	}
	drills, err := s.store.Drills().ListByIDs(ctx, drillIDs)
	if err != nil {
		return nil, err
	}

	detail := &models.SessionDetail{
		TrainingSession: *session,
		Slots:           make([]models.SlotDetail, 0, len(slots)),
		Assignments:     make([]models.AssignmentDetail, 0),
	}
	orderBySlotID := make(map[string]int, len(slots))
	for _, slot := range slots {
		orderBySlotID[slot.ID] = slot.SlotOrder
		slotDetail := models.SlotDetail{Slot: slot}
		if slot.DrillID != nil {
			if drill, ok := drills[*slot.DrillID]; ok {
				drillCopy := drill
				slotDetail.Drill = &drillCopy
			}
		}
		detail.Slots = append(detail.Slots, slotDetail)
	}

	assignments, err := s.store.Assignments().ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	coachIDs := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		coachIDs = append(coachIDs, assignment.CoachID)
	}
	coaches, err := s.store.Users().ListByIDs(ctx, coachIDs)
	if err != nil {
		return nil, err
	}

	for _, assignment := range assignments {
		assignmentDetail := models.AssignmentDetail{CoachAssignment: assignment}
		if coach, ok := coaches[assignment.CoachID]; ok {
			assignmentDetail.CoachName = coach.Name
			assignmentDetail.CoachEmail = coach.Email
			assignmentDetail.CoachAvatar = coach.Avatar
		}
		if assignment.SlotID != nil {
			if order, ok := orderBySlotID[*assignment.SlotID]; ok {
				orderCopy := order
				assignmentDetail.SlotOrder = &orderCopy
			}
		}
		detail.Assignments = append(detail.Assignments, assignmentDetail)
	}
	sort.SliceStable(detail.Assignments, func(i, j int) bool {
		return assignmentSortKey(detail.Assignments[i]) < assignmentSortKey(detail.Assignments[j])
	})

	return detail, nil
}

func (s *SessionService) writeSlotsAndCoaches(
	ctx context.Context,
	tx storage.Store,
	sessionID string,
	input ComposeSessionInput,
) error {
	slots := make([]models.Slot, len(input.Slots))
	for i, slotInput := range input.Slots {
		slots[i] = models.Slot{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			SlotType:  slotInput.Type,
			SlotOrder: i + 1,
			DrillID:   slotInput.DrillID,
			Duration:  slotInput.Duration,
			Notes:     slotInput.Notes,
		}
	}
	if len(slots) > 0 {
		if err := tx.Slots().CreateBatch(ctx, slots); err != nil {
			return err
		}
	}

	assignments := make([]models.CoachAssignment, len(input.Coaches))
	for i, coachInput := range input.Coaches {
		var slotID *string
		if coachInput.SlotIndex != SetupSlotIndex {
			slotID = &slots[coachInput.SlotIndex].ID
		}
		role := coachInput.Role
		if role == "" {
			role = "assistant"
		}
		assignments[i] = models.CoachAssignment{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			SlotID:    slotID,
			CoachID:   coachInput.CoachID,
			Role:      role,
			TaskType:  coachInput.TaskType,
		}
	}
	if len(assignments) > 0 {
		if err := tx.Assignments().CreateBatch(ctx, assignments); err != nil {
			return err
		}
	}
	return nil
}

func validateCompose(input ComposeSessionInput) error {
	if input.Date.IsZero() || strings.TrimSpace(input.StartTime) == "" {
		return ErrInvalidInput
	}
	for _, slot := range input.Slots {
		if strings.TrimSpace(slot.Type) == "" || slot.Duration <= 0 {
			return ErrInvalidInput
		}
	}
	for _, coach := range input.Coaches {
		if strings.TrimSpace(coach.CoachID) == "" {
			return ErrInvalidInput
		}
		if coach.SlotIndex < SetupSlotIndex || coach.SlotIndex >= len(input.Slots) {
			return ErrInvalidInput
		}
	}
	return nil
}

func durationOrDefault(duration int) int {
	if duration <= 0 {
		return defaultSessionDuration
	}
	return duration
}

// combineNotes folds the setup notes into the session notes field.
func combineNotes(notes, setupNotes *string) *string {
	parts := make([]string, 0, 2)
	if notes != nil && strings.TrimSpace(*notes) != "" {
		parts = append(parts, *notes)
	}
	if setupNotes != nil && strings.TrimSpace(*setupNotes) != "" {
		parts = append(parts, fmt.Sprintf("Setup: %s", *setupNotes))
	}
	if len(parts) == 0 {
		return nil
	}
	combined := strings.Join(parts, "\n\n")
	return &combined
}

func assignmentSortKey(assignment models.AssignmentDetail) int {
	if assignment.SlotOrder == nil {
		return 0
	}
	return *assignment.SlotOrder
}

// uniqueViolationToConflict maps a relational unique-index violation
// on the session date to the conflict error, covering the race two
// concurrent creates can hit between pre-check and insert.
func uniqueViolationToConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}
