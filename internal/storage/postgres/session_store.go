package postgres

import (
	"context"
	"time"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

type SessionStore struct {
	db DBTX
}

func (s *SessionStore) Create(ctx context.Context, session *models.TrainingSession) error {
	query := `
		INSERT INTO training_sessions (id, session_date, start_time, duration, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return s.db.QueryRow(
		ctx,
		query,
		session.ID,
		session.SessionDate,
		session.StartTime,
		session.Duration,
		session.Notes,
		session.CreatedBy,
	).Scan(&session.CreatedAt)
}

func (s *SessionStore) GetByID(ctx context.Context, id string) (*models.TrainingSession, error) {
	query := `
		SELECT id, session_date, start_time, duration, notes, created_by, created_at
		FROM training_sessions
		WHERE id = $1
	`
	var session models.TrainingSession
	err := s.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.SessionDate,
		&session.StartTime,
		&session.Duration,
		&session.Notes,
		&session.CreatedBy,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

func (s *SessionStore) GetByDate(ctx context.Context, date time.Time) (*models.TrainingSession, error) {
	query := `
		SELECT id, session_date, start_time, duration, notes, created_by, created_at
		FROM training_sessions
		WHERE session_date = $1::date
	`
	var session models.TrainingSession
	err := s.db.QueryRow(ctx, query, date).Scan(
		&session.ID,
		&session.SessionDate,
		&session.StartTime,
		&session.Duration,
		&session.Notes,
		&session.CreatedBy,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &session, nil
}

func (s *SessionStore) Update(ctx context.Context, session *models.TrainingSession) error {
	query := `
		UPDATE training_sessions
		SET session_date = $2, start_time = $3, duration = $4, notes = $5
		WHERE id = $1
	`
	tag, err := s.db.Exec(
		ctx,
		query,
		session.ID,
		session.SessionDate,
		session.StartTime,
		session.Duration,
		session.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete cascades to session_slots and coach_assignments through the
// foreign keys.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM training_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// List aggregates slot counts at read time rather than storing them
// on the session row.
func (s *SessionStore) List(
	ctx context.Context,
	filter storage.SessionListFilter,
) ([]models.SessionSummary, error) {
	query := `
		SELECT
			ts.id, ts.session_date, ts.start_time, ts.duration, ts.notes,
			ts.created_by, ts.created_at,
			COUNT(ss.id) AS slot_count,
			COALESCE(ARRAY_AGG(DISTINCT ss.slot_type) FILTER (WHERE ss.slot_type IS NOT NULL), '{}') AS slot_types,
			COUNT(ss.id) FILTER (WHERE ss.drill_id IS NOT NULL) AS drills_assigned
		FROM training_sessions ts
		LEFT JOIN session_slots ss ON ss.session_id = ts.id
	`
	args := []any{}
	if filter.Upcoming {
		// The boundary travels as a date string so the comparison
		// cannot shift with the database timezone.
		args = append(args, filter.From.Format("2006-01-02"))
		query += `
		WHERE ts.session_date >= $1::date
		GROUP BY ts.id
		ORDER BY ts.session_date ASC, ts.start_time ASC
	`
	} else {
		query += `
		GROUP BY ts.id
		ORDER BY ts.session_date DESC, ts.start_time DESC
	`
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.SessionSummary, 0)
	for rows.Next() {
		var summary models.SessionSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.SessionDate,
			&summary.StartTime,
			&summary.Duration,
			&summary.Notes,
			&summary.CreatedBy,
			&summary.CreatedAt,
			&summary.SlotCount,
			&summary.SlotTypes,
			&summary.DrillsAssigned,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}
