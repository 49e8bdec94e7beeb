package models

import "time"

type TrainingSession struct {
	ID          string    `json:"id"`
	SessionDate time.Time `json:"session_date"`
	StartTime   string    `json:"start_time"`
	Duration    int       `json:"duration"`
	Notes       *string   `json:"notes"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Slot is one ordered segment of a training session. SlotOrder is
// 1-based and contiguous within a session; DrillID is nil for slots
// that are not bound to a catalog drill.
type Slot struct {
	ID        string  `json:"id"`
	SessionID string  `json:"session_id"`
	SlotType  string  `json:"slot_type"`
	SlotOrder int     `json:"slot_order"`
	DrillID   *string `json:"drill_id"`
	Duration  int     `json:"duration"`
	Notes     *string `json:"notes"`
}

// CoachAssignment binds a coach to one slot, or to the session itself
// when SlotID is nil (a setup task).
type CoachAssignment struct {
	ID        string  `json:"id"`
	SessionID string  `json:"session_id"`
	SlotID    *string `json:"slot_id"`
	CoachID   string  `json:"coach_id"`
	Role      string  `json:"role"`
	TaskType  *string `json:"task_type"`
}

// SessionSummary is a TrainingSession augmented with counts derived
// from its slots at read time.
type SessionSummary struct {
	TrainingSession
	SlotCount      int      `json:"slot_count"`
	SlotTypes      []string `json:"slot_types"`
	DrillsAssigned int      `json:"drills_assigned"`
}

// SlotDetail joins a slot with the drill it references, if any.
type SlotDetail struct {
	Slot
	Drill *Drill `json:"drill,omitempty"`
}

// AssignmentDetail joins an assignment with the assigned coach and,
// for slot-bound assignments, the slot's order.
type AssignmentDetail struct {
	CoachAssignment
	CoachName   string `json:"coach_name"`
	CoachEmail  string `json:"coach_email"`
	CoachAvatar string `json:"coach_avatar"`
	SlotOrder   *int   `json:"slot_order,omitempty"`
}

type SessionDetail struct {
	TrainingSession
	Slots       []SlotDetail       `json:"slots"`
	Assignments []AssignmentDetail `json:"assignments"`
}
