package models

import "time"

type Drill struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Duration       int       `json:"duration"`
	Category       string    `json:"category"`
	SkillFocus     *string   `json:"skill_focus"`
	Equipment      *string   `json:"equipment"`
	Instructions   *string   `json:"instructions"`
	CoachingPoints *string   `json:"coaching_points"`
	MinPlayers     int       `json:"min_players"`
	MaxPlayers     int       `json:"max_players"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}
