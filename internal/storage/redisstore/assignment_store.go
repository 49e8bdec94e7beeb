package redisstore

import (
	"context"
	"sort"

	"github.com/morses-code/football-training-planner/internal/models"
)

type AssignmentStore struct {
	s *Store
}

func (st *AssignmentStore) CreateBatch(ctx context.Context, assignments []models.CoachAssignment) error {
	for i := range assignments {
		assignment := assignments[i]
		if err := st.s.setJSON(ctx, assignmentKey(assignment.ID), assignment); err != nil {
			return err
		}
		if err := st.s.rdb.SAdd(ctx, sessionAssignIndex(assignment.SessionID), assignment.ID).Err(); err != nil {
			return err
		}
		if err := st.s.rdb.SAdd(ctx, coachAssignIndex(assignment.CoachID), assignment.ID).Err(); err != nil {
			return err
		}
		st.s.compensate(func(ctx context.Context) {
			st.s.rdb.Del(ctx, assignmentKey(assignment.ID))
			st.s.rdb.SRem(ctx, sessionAssignIndex(assignment.SessionID), assignment.ID)
			st.s.rdb.SRem(ctx, coachAssignIndex(assignment.CoachID), assignment.ID)
		})
	}
	return nil
}

func (st *AssignmentStore) ListBySession(
	ctx context.Context,
	sessionID string,
) ([]models.CoachAssignment, error) {
	return st.listFromIndex(ctx, sessionAssignIndex(sessionID))
}

func (st *AssignmentStore) ListByCoach(
	ctx context.Context,
	coachID string,
) ([]models.CoachAssignment, error) {
	return st.listFromIndex(ctx, coachAssignIndex(coachID))
}

func (st *AssignmentStore) DeleteBySession(ctx context.Context, sessionID string) error {
	assignments, err := st.ListBySession(ctx, sessionID)
	if err != nil {
		return err
	}
	for _, assignment := range assignments {
		st.s.rdb.SRem(ctx, coachAssignIndex(assignment.CoachID), assignment.ID)
		st.s.rdb.Del(ctx, assignmentKey(assignment.ID))
	}
	return st.s.rdb.Del(ctx, sessionAssignIndex(sessionID)).Err()
}

func (st *AssignmentStore) listFromIndex(
	ctx context.Context,
	indexKey string,
) ([]models.CoachAssignment, error) {
	ids, err := st.s.rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	assignments := make([]models.CoachAssignment, 0, len(ids))
	for _, id := range ids {
		var assignment models.CoachAssignment
		if err := st.s.getJSON(ctx, assignmentKey(id), &assignment); err != nil {
			continue
		}
		assignments = append(assignments, assignment)
	}
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].ID < assignments[j].ID
	})
	return assignments, nil
}
