package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/storage"
)

const (
	defaultMinPlayers = 4
	defaultMaxPlayers = 12
)

type DrillService struct {
	store storage.Store
}

func NewDrillService(store storage.Store) *DrillService {
	return &DrillService{store: store}
}

type DrillInput struct {
	Name           string
	Description    string
	Duration       int
	Category       string
	SkillFocus     *string
	Equipment      *string
	Instructions   *string
	CoachingPoints *string
	MinPlayers     int
	MaxPlayers     int
}

func (s *DrillService) Create(ctx context.Context, creatorID string, input DrillInput) (*models.Drill, error) {
	if err := validateDrill(input); err != nil {
		return nil, err
	}

	minPlayers := input.MinPlayers
	if minPlayers <= 0 {
		minPlayers = defaultMinPlayers
	}
	maxPlayers := input.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = defaultMaxPlayers
	}

	drill := &models.Drill{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Duration:       input.Duration,
		Category:       input.Category,
		SkillFocus:     input.SkillFocus,
		Equipment:      input.Equipment,
		Instructions:   input.Instructions,
		CoachingPoints: input.CoachingPoints,
		MinPlayers:     minPlayers,
		MaxPlayers:     maxPlayers,
		CreatedBy:      creatorID,
	}
	if err := s.store.Drills().Create(ctx, drill); err != nil {
		return nil, err
	}
	return drill, nil
}

func (s *DrillService) Get(ctx context.Context, id string) (*models.Drill, error) {
	drill, err := s.store.Drills().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return drill, nil
}

func (s *DrillService) List(ctx context.Context) ([]models.Drill, error) {
	return s.store.Drills().List(ctx)
}

// Update overwrites all editable fields. Any authenticated user may
// edit any drill; there is no creator-only check.
func (s *DrillService) Update(ctx context.Context, id string, input DrillInput) (*models.Drill, error) {
	if err := validateDrill(input); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	drill := &models.Drill{
		ID:             existing.ID,
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Duration:       input.Duration,
		Category:       input.Category,
		SkillFocus:     input.SkillFocus,
		Equipment:      input.Equipment,
		Instructions:   input.Instructions,
		CoachingPoints: input.CoachingPoints,
		MinPlayers:     input.MinPlayers,
		MaxPlayers:     input.MaxPlayers,
		CreatedBy:      existing.CreatedBy,
		CreatedAt:      existing.CreatedAt,
	}
	if drill.MinPlayers <= 0 {
		drill.MinPlayers = existing.MinPlayers
	}
	if drill.MaxPlayers <= 0 {
		drill.MaxPlayers = existing.MaxPlayers
	}

	if err := s.store.Drills().Update(ctx, drill); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return drill, nil
}

// Delete removes the drill from the catalog. Slots that referenced it
// stay in their sessions with the drill reference cleared.
func (s *DrillService) Delete(ctx context.Context, id string) error {
	if err := s.store.Drills().Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func validateDrill(input DrillInput) error {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Category) == "" {
		return ErrInvalidInput
	}
	if input.Duration <= 0 {
		return ErrInvalidInput
	}
	if input.MinPlayers > 0 && input.MaxPlayers > 0 && input.MinPlayers > input.MaxPlayers {
		return ErrInvalidInput
	}
	return nil
}
