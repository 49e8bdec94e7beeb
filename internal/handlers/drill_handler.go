package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/services"
)

type drillApplicationService interface {
	Create(ctx context.Context, creatorID string, input services.DrillInput) (*models.Drill, error)
	Get(ctx context.Context, id string) (*models.Drill, error)
	List(ctx context.Context) ([]models.Drill, error)
	Update(ctx context.Context, id string, input services.DrillInput) (*models.Drill, error)
	Delete(ctx context.Context, id string) error
}

type DrillHandler struct {
	service drillApplicationService
	logger  zerolog.Logger
}

func NewDrillHandler(service *services.DrillService, logger zerolog.Logger) *DrillHandler {
	return &DrillHandler{service: service, logger: logger}
}

type drillRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Duration       int     `json:"duration"`
	Category       string  `json:"category"`
	SkillFocus     *string `json:"skillFocus"`
	Equipment      *string `json:"equipment"`
	Instructions   *string `json:"instructions"`
	CoachingPoints *string `json:"coachingPoints"`
	MinPlayers     int     `json:"minPlayers"`
	MaxPlayers     int     `json:"maxPlayers"`
}

func (r drillRequest) toInput() services.DrillInput {
	return services.DrillInput{
		Name:           r.Name,
		Description:    r.Description,
		Duration:       r.Duration,
		Category:       r.Category,
		SkillFocus:     r.SkillFocus,
		Equipment:      r.Equipment,
		Instructions:   r.Instructions,
		CoachingPoints: r.CoachingPoints,
		MinPlayers:     r.MinPlayers,
		MaxPlayers:     r.MaxPlayers,
	}
}

func (h *DrillHandler) Create(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req drillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	drill, err := h.service.Create(c.Context(), user.ID, req.toInput())
	if err != nil {
		return h.mapError(c, err, "Failed to create drill")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "drillId": drill.ID})
}

func (h *DrillHandler) List(c *fiber.Ctx) error {
	drills, err := h.service.List(c.Context())
	if err != nil {
		return h.mapError(c, err, "Failed to fetch drills")
	}
	return c.JSON(fiber.Map{"drills": drills})
}

func (h *DrillHandler) Get(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid drill id"})
	}

	drill, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.mapError(c, err, "Failed to fetch drill")
	}
	return c.JSON(fiber.Map{"drill": drill})
}

func (h *DrillHandler) Update(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid drill id"})
	}

	var req drillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	drill, err := h.service.Update(c.Context(), id, req.toInput())
	if err != nil {
		return h.mapError(c, err, "Failed to update drill")
	}
	return c.JSON(fiber.Map{"success": true, "drill": drill})
}

func (h *DrillHandler) Delete(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid drill id"})
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.mapError(c, err, "Failed to delete drill")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *DrillHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Drill not found"})
	default:
		h.logger.Error().Err(err).Msg(fallback)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}
