package postgres

import (
	"context"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

type DrillStore struct {
	db DBTX
}

const drillColumns = `id, name, description, duration, category, skill_focus,
	equipment, instructions, coaching_points, min_players, max_players,
	created_by, created_at`

func scanDrill(row interface{ Scan(dest ...any) error }, drill *models.Drill) error {
	return row.Scan(
		&drill.ID,
		&drill.Name,
		&drill.Description,
		&drill.Duration,
		&drill.Category,
		&drill.SkillFocus,
		&drill.Equipment,
		&drill.Instructions,
		&drill.CoachingPoints,
		&drill.MinPlayers,
		&drill.MaxPlayers,
		&drill.CreatedBy,
		&drill.CreatedAt,
	)
}

func (s *DrillStore) Create(ctx context.Context, drill *models.Drill) error {
	query := `
		INSERT INTO drills (id, name, description, duration, category, skill_focus,
			equipment, instructions, coaching_points, min_players, max_players, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`
	return s.db.QueryRow(
		ctx,
		query,
		drill.ID,
		drill.Name,
		drill.Description,
		drill.Duration,
		drill.Category,
		drill.SkillFocus,
		drill.Equipment,
		drill.Instructions,
		drill.CoachingPoints,
		drill.MinPlayers,
		drill.MaxPlayers,
		drill.CreatedBy,
	).Scan(&drill.CreatedAt)
}

func (s *DrillStore) GetByID(ctx context.Context, id string) (*models.Drill, error) {
	query := `SELECT ` + drillColumns + ` FROM drills WHERE id = $1`
	var drill models.Drill
	if err := scanDrill(s.db.QueryRow(ctx, query, id), &drill); err != nil {
		return nil, notFound(err)
	}
	return &drill, nil
}

func (s *DrillStore) List(ctx context.Context) ([]models.Drill, error) {
	query := `SELECT ` + drillColumns + ` FROM drills ORDER BY created_at DESC, id DESC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drills := make([]models.Drill, 0)
	for rows.Next() {
		var drill models.Drill
		if err := scanDrill(rows, &drill); err != nil {
			return nil, err
		}
		drills = append(drills, drill)
	}
	return drills, rows.Err()
}

func (s *DrillStore) ListByIDs(ctx context.Context, ids []string) (map[string]models.Drill, error) {
	byID := make(map[string]models.Drill, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	query := `SELECT ` + drillColumns + ` FROM drills WHERE id = ANY($1)`
	rows, err := s.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var drill models.Drill
		if err := scanDrill(rows, &drill); err != nil {
			return nil, err
		}
		byID[drill.ID] = drill
	}
	return byID, rows.Err()
}

func (s *DrillStore) Update(ctx context.Context, drill *models.Drill) error {
	query := `
		UPDATE drills
		SET name = $2, description = $3, duration = $4, category = $5,
			skill_focus = $6, equipment = $7, instructions = $8,
			coaching_points = $9, min_players = $10, max_players = $11
		WHERE id = $1
	`
	tag, err := s.db.Exec(
		ctx,
		query,
		drill.ID,
		drill.Name,
		drill.Description,
		drill.Duration,
		drill.Category,
		drill.SkillFocus,
		drill.Equipment,
		drill.Instructions,
		drill.CoachingPoints,
		drill.MinPlayers,
		drill.MaxPlayers,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete removes the drill; session_slots.drill_id is set NULL by the
// foreign key, so existing slots keep their place in the session.
func (s *DrillStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM drills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
