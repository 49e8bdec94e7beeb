package redisstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

type SessionStore struct {
	s *Store
}

func (st *SessionStore) Create(ctx context.Context, session *models.TrainingSession) error {
	session.CreatedAt = time.Now().UTC()
	if err := st.s.setJSON(ctx, sessionKey(session.ID), session); err != nil {
		return err
	}
	if err := st.s.rdb.Set(ctx, sessionDateKey(session.SessionDate), session.ID, 0).Err(); err != nil {
		return err
	}
	if err := st.s.rdb.SAdd(ctx, sessionsIndex, session.ID).Err(); err != nil {
		return err
	}
	if err := st.s.rdb.SAdd(ctx, userSessionsIndex(session.CreatedBy), session.ID).Err(); err != nil {
		return err
	}
	st.s.compensate(func(ctx context.Context) {
		st.s.rdb.Del(ctx, sessionKey(session.ID), sessionDateKey(session.SessionDate))
		st.s.rdb.SRem(ctx, sessionsIndex, session.ID)
		st.s.rdb.SRem(ctx, userSessionsIndex(session.CreatedBy), session.ID)
	})
	return nil
}

func (st *SessionStore) GetByID(ctx context.Context, id string) (*models.TrainingSession, error) {
	var session models.TrainingSession
	if err := st.s.getJSON(ctx, sessionKey(id), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (st *SessionStore) GetByDate(ctx context.Context, date time.Time) (*models.TrainingSession, error) {
	id, err := st.s.rdb.Get(ctx, sessionDateKey(date)).Result()
	if err != nil {
		return nil, notFoundOr(err)
	}
	return st.GetByID(ctx, id)
}

func (st *SessionStore) Update(ctx context.Context, session *models.TrainingSession) error {
	existing, err := st.GetByID(ctx, session.ID)
	if err != nil {
		return err
	}
	session.CreatedBy = existing.CreatedBy
	session.CreatedAt = existing.CreatedAt

	if !sameDate(existing.SessionDate, session.SessionDate) {
		st.s.rdb.Del(ctx, sessionDateKey(existing.SessionDate))
		if err := st.s.rdb.Set(ctx, sessionDateKey(session.SessionDate), session.ID, 0).Err(); err != nil {
			return err
		}
	}
	return st.s.setJSON(ctx, sessionKey(session.ID), session)
}

// Delete fans out to the session's slots and assignments.
func (st *SessionStore) Delete(ctx context.Context, id string) error {
	session, err := st.GetByID(ctx, id)
	if err != nil {
		return err
	}

	slots := &SlotStore{s: st.s}
	if err := slots.DeleteBySession(ctx, id); err != nil {
		return err
	}
	assignments := &AssignmentStore{s: st.s}
	if err := assignments.DeleteBySession(ctx, id); err != nil {
		return err
	}

	st.s.rdb.Del(ctx, sessionDateKey(session.SessionDate))
	st.s.rdb.SRem(ctx, sessionsIndex, id)
	st.s.rdb.SRem(ctx, userSessionsIndex(session.CreatedBy), id)
	return st.s.rdb.Del(ctx, sessionKey(id)).Err()
}

func (st *SessionStore) List(
	ctx context.Context,
	filter storage.SessionListFilter,
) ([]models.SessionSummary, error) {
	ids, err := st.s.rdb.SMembers(ctx, sessionsIndex).Result()
	if err != nil {
		return nil, err
	}

	slots := &SlotStore{s: st.s}
	summaries := make([]models.SessionSummary, 0, len(ids))
	for _, id := range ids {
		session, err := st.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if filter.Upcoming && session.SessionDate.Before(filter.From) {
			continue
		}

		sessionSlots, err := slots.ListBySession(ctx, id)
		if err != nil {
			return nil, err
		}

		summary := models.SessionSummary{
			TrainingSession: *session,
			SlotCount:       len(sessionSlots),
			SlotTypes:       []string{},
		}
		seenTypes := make(map[string]bool)
		for _, slot := range sessionSlots {
			if !seenTypes[slot.SlotType] {
				seenTypes[slot.SlotType] = true
				summary.SlotTypes = append(summary.SlotTypes, slot.SlotType)
			}
			if slot.DrillID != nil {
				summary.DrillsAssigned++
			}
		}
		sort.Strings(summary.SlotTypes)
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if !a.SessionDate.Equal(b.SessionDate) {
			if filter.Upcoming {
				return a.SessionDate.Before(b.SessionDate)
			}
			return a.SessionDate.After(b.SessionDate)
		}
		if filter.Upcoming {
			return a.StartTime < b.StartTime
		}
		return a.StartTime > b.StartTime
	})
	return summaries, nil
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}
