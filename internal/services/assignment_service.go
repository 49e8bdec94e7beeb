package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

// AssignmentService serves the "my assignments" view: everything a
// coach is signed up for, grouped by training session.
type AssignmentService struct {
	store storage.Store
}

func NewAssignmentService(store storage.Store) *AssignmentService {
	return &AssignmentService{store: store}
}

// CoachTask is one duty within a session: either a slot the coach
// runs or a session-level setup task (Order 0, Type "setup").
type CoachTask struct {
	SlotID        *string `json:"slot_id"`
	Type          string  `json:"type"`
	Order         int     `json:"order"`
	DrillName     *string `json:"drill_name"`
	DrillCategory *string `json:"drill_category"`
	Role          string  `json:"role"`
	TaskType      *string `json:"task_type"`
}

type CoachSchedule struct {
	SessionID string     `json:"session_id"`
	Date      time.Time  `json:"date"`
	StartTime string     `json:"start_time"`
	Duration  int        `json:"duration"`
	Notes     *string    `json:"notes"`
	Tasks     []CoachTask `json:"tasks"`
}

func (s *AssignmentService) ListForCoach(ctx context.Context, coachID string) ([]CoachSchedule, error) {
	assignments, err := s.store.Assignments().ListByCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}

	schedules := make([]CoachSchedule, 0)
	bySession := make(map[string]int)

	for _, assignment := range assignments {
		idx, seen := bySession[assignment.SessionID]
		if !seen {
			session, err := s.store.Sessions().GetByID(ctx, assignment.SessionID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					continue
				}
				return nil, err
			}
			schedules = append(schedules, CoachSchedule{
				SessionID: session.ID,
				Date:      session.SessionDate,
				StartTime: session.StartTime,
				Duration:  session.Duration,
				Notes:     session.Notes,
				Tasks:     make([]CoachTask, 0, 1),
			})
			idx = len(schedules) - 1
			bySession[assignment.SessionID] = idx
		}

		task, err := s.buildTask(ctx, assignment)
		if err != nil {
			return nil, err
		}
		schedules[idx].Tasks = append(schedules[idx].Tasks, task)
	}

	for i := range schedules {
		tasks := schedules[i].Tasks
		sort.SliceStable(tasks, func(a, b int) bool { return tasks[a].Order < tasks[b].Order })
	}
	sort.SliceStable(schedules, func(a, b int) bool {
		if !schedules[a].Date.Equal(schedules[b].Date) {
			return schedules[a].Date.After(schedules[b].Date)
		}
		return schedules[a].StartTime > schedules[b].StartTime
	})
	return schedules, nil
}

func (s *AssignmentService) buildTask(
	ctx context.Context,
	assignment models.CoachAssignment,
) (CoachTask, error) {
	task := CoachTask{
		SlotID:   assignment.SlotID,
		Type:     "setup",
		Role:     assignment.Role,
		TaskType: assignment.TaskType,
	}
	if assignment.SlotID == nil {
		return task, nil
	}

	slots, err := s.store.Slots().ListBySession(ctx, assignment.SessionID)
	if err != nil {
		return task, err
	}
	for _, slot := range slots {
		if slot.ID != *assignment.SlotID {
			continue
		}
		task.Type = slot.SlotType
		task.Order = slot.SlotOrder
		if slot.DrillID != nil {
			drill, err := s.store.Drills().GetByID(ctx, *slot.DrillID)
			if err == nil {
				task.DrillName = &drill.Name
				task.DrillCategory = &drill.Category
			} else if !errors.Is(err, storage.ErrNotFound) {
				return task, err
			}
		}
		break
	}
	return task, nil
}
