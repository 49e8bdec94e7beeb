package redisstore

import (
	"context"
	"sort"

	"github.com/morses-code/football-training-planner/internal/models"
)

type SlotStore struct {
	s *Store
}

func (st *SlotStore) CreateBatch(ctx context.Context, slots []models.Slot) error {
	for i := range slots {
		slot := slots[i]
		if err := st.s.setJSON(ctx, slotKey(slot.ID), slot); err != nil {
			return err
		}
		if err := st.s.rdb.SAdd(ctx, sessionSlotsIndex(slot.SessionID), slot.ID).Err(); err != nil {
			return err
		}
		if slot.DrillID != nil {
			if err := st.s.rdb.SAdd(ctx, drillSlotsIndex(*slot.DrillID), slot.ID).Err(); err != nil {
				return err
			}
		}
		st.s.compensate(func(ctx context.Context) {
			st.s.rdb.Del(ctx, slotKey(slot.ID))
			st.s.rdb.SRem(ctx, sessionSlotsIndex(slot.SessionID), slot.ID)
			if slot.DrillID != nil {
				st.s.rdb.SRem(ctx, drillSlotsIndex(*slot.DrillID), slot.ID)
			}
		})
	}
	return nil
}

func (st *SlotStore) ListBySession(ctx context.Context, sessionID string) ([]models.Slot, error) {
	ids, err := st.s.rdb.SMembers(ctx, sessionSlotsIndex(sessionID)).Result()
	if err != nil {
		return nil, err
	}

	slots := make([]models.Slot, 0, len(ids))
	for _, id := range ids {
		var slot models.Slot
		if err := st.s.getJSON(ctx, slotKey(id), &slot); err != nil {
			continue
		}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].SlotOrder < slots[j].SlotOrder
	})
	return slots, nil
}

func (st *SlotStore) DeleteBySession(ctx context.Context, sessionID string) error {
	slots, err := st.ListBySession(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if slot.DrillID != nil {
			st.s.rdb.SRem(ctx, drillSlotsIndex(*slot.DrillID), slot.ID)
		}
		st.s.rdb.Del(ctx, slotKey(slot.ID))
	}
	return st.s.rdb.Del(ctx, sessionSlotsIndex(sessionID)).Err()
}
