package postgres

import (
	"context"

	"github.com/morses-code/football-training-planner/internal/models"
)

type AssignmentStore struct {
	db DBTX
}

func (s *AssignmentStore) CreateBatch(ctx context.Context, assignments []models.CoachAssignment) error {
	query := `
		INSERT INTO coach_assignments (id, session_id, slot_id, coach_id, role, task_type)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, assignment := range assignments {
		if _, err := s.db.Exec(
			ctx,
			query,
			assignment.ID,
			assignment.SessionID,
			assignment.SlotID,
			assignment.CoachID,
			assignment.Role,
			assignment.TaskType,
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *AssignmentStore) ListBySession(
	ctx context.Context,
	sessionID string,
) ([]models.CoachAssignment, error) {
	query := `
		SELECT id, session_id, slot_id, coach_id, role, task_type
		FROM coach_assignments
		WHERE session_id = $1
		ORDER BY id ASC
	`
	return s.queryAssignments(ctx, query, sessionID)
}

func (s *AssignmentStore) ListByCoach(
	ctx context.Context,
	coachID string,
) ([]models.CoachAssignment, error) {
	query := `
		SELECT id, session_id, slot_id, coach_id, role, task_type
		FROM coach_assignments
		WHERE coach_id = $1
		ORDER BY id ASC
	`
	return s.queryAssignments(ctx, query, coachID)
}

func (s *AssignmentStore) DeleteBySession(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM coach_assignments WHERE session_id = $1`, sessionID)
	return err
}

func (s *AssignmentStore) queryAssignments(
	ctx context.Context,
	query string,
	args ...any,
) ([]models.CoachAssignment, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.CoachAssignment, 0)
	for rows.Next() {
		var assignment models.CoachAssignment
		if err := rows.Scan(
			&assignment.ID,
			&assignment.SessionID,
			&assignment.SlotID,
			&assignment.CoachID,
			&assignment.Role,
			&assignment.TaskType,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}
	return assignments, rows.Err()
}
