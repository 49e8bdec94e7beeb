package postgres

import (
	"context"

	"github.com/morses-code/football-training-planner/internal/models"
)

type SlotStore struct {
	db DBTX
}

func (s *SlotStore) CreateBatch(ctx context.Context, slots []models.Slot) error {
	query := `
		INSERT INTO session_slots (id, session_id, slot_type, slot_order, drill_id, duration, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, slot := range slots {
		if _, err := s.db.Exec(
			ctx,
			query,
			slot.ID,
			slot.SessionID,
			slot.SlotType,
			slot.SlotOrder,
			slot.DrillID,
			slot.Duration,
			slot.Notes,
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *SlotStore) ListBySession(ctx context.Context, sessionID string) ([]models.Slot, error) {
	query := `
		SELECT id, session_id, slot_type, slot_order, drill_id, duration, notes
		FROM session_slots
		WHERE session_id = $1
		ORDER BY slot_order ASC
	`
	rows, err := s.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]models.Slot, 0)
	for rows.Next() {
		var slot models.Slot
		if err := rows.Scan(
			&slot.ID,
			&slot.SessionID,
			&slot.SlotType,
			&slot.SlotOrder,
			&slot.DrillID,
			&slot.Duration,
			&slot.Notes,
		); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (s *SlotStore) DeleteBySession(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM session_slots WHERE session_id = $1`, sessionID)
	return err
}
