package redisstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

type DrillStore struct {
	s *Store
}

func (d *DrillStore) Create(ctx context.Context, drill *models.Drill) error {
	drill.CreatedAt = time.Now().UTC()
	if err := d.s.setJSON(ctx, drillKey(drill.ID), drill); err != nil {
		return err
	}
	if err := d.s.rdb.SAdd(ctx, drillsIndex, drill.ID).Err(); err != nil {
		return err
	}
	if err := d.s.rdb.SAdd(ctx, userDrillsIndex(drill.CreatedBy), drill.ID).Err(); err != nil {
		return err
	}
	d.s.compensate(func(ctx context.Context) {
		d.s.rdb.Del(ctx, drillKey(drill.ID))
		d.s.rdb.SRem(ctx, drillsIndex, drill.ID)
		d.s.rdb.SRem(ctx, userDrillsIndex(drill.CreatedBy), drill.ID)
	})
	return nil
}

func (d *DrillStore) GetByID(ctx context.Context, id string) (*models.Drill, error) {
	var drill models.Drill
	if err := d.s.getJSON(ctx, drillKey(id), &drill); err != nil {
		return nil, err
	}
	return &drill, nil
}

func (d *DrillStore) List(ctx context.Context) ([]models.Drill, error) {
	ids, err := d.s.rdb.SMembers(ctx, drillsIndex).Result()
	if err != nil {
		return nil, err
	}

	drills := make([]models.Drill, 0, len(ids))
	for _, id := range ids {
		drill, err := d.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		drills = append(drills, *drill)
	}
	sort.Slice(drills, func(i, j int) bool {
		if drills[i].CreatedAt.Equal(drills[j].CreatedAt) {
			return drills[i].ID > drills[j].ID
		}
		return drills[i].CreatedAt.After(drills[j].CreatedAt)
	})
	return drills, nil
}

func (d *DrillStore) ListByIDs(ctx context.Context, ids []string) (map[string]models.Drill, error) {
	byID := make(map[string]models.Drill, len(ids))
	for _, id := range ids {
		if _, ok := byID[id]; ok {
			continue
		}
		drill, err := d.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		byID[id] = *drill
	}
	return byID, nil
}

func (d *DrillStore) Update(ctx context.Context, drill *models.Drill) error {
	existing, err := d.GetByID(ctx, drill.ID)
	if err != nil {
		return err
	}
	drill.CreatedBy = existing.CreatedBy
	drill.CreatedAt = existing.CreatedAt
	return d.s.setJSON(ctx, drillKey(drill.ID), drill)
}

// Delete nulls the drill reference on every slot that used it before
// removing the drill record, emulating the relational SET NULL.
func (d *DrillStore) Delete(ctx context.Context, id string) error {
	drill, err := d.GetByID(ctx, id)
	if err != nil {
		return err
	}

	slotIDs, err := d.s.rdb.SMembers(ctx, drillSlotsIndex(id)).Result()
	if err != nil {
		return err
	}
	for _, slotID := range slotIDs {
		var slot models.Slot
		if err := d.s.getJSON(ctx, slotKey(slotID), &slot); err != nil {
			continue
		}
		slot.DrillID = nil
		if err := d.s.setJSON(ctx, slotKey(slotID), slot); err != nil {
			return err
		}
	}
	d.s.rdb.Del(ctx, drillSlotsIndex(id))

	d.s.rdb.SRem(ctx, drillsIndex, id)
	d.s.rdb.SRem(ctx, userDrillsIndex(drill.CreatedBy), id)
	return d.s.rdb.Del(ctx, drillKey(id)).Err()
}
