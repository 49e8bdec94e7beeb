package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/morses-code/football-training-planner/internal/services"
)

type assignmentApplicationService interface {
	ListForCoach(ctx context.Context, coachID string) ([]services.CoachSchedule, error)
}

type AssignmentHandler struct {
	service assignmentApplicationService
	logger  zerolog.Logger
}

func NewAssignmentHandler(service *services.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{service: service, logger: logger}
}

// ListMine returns the calling coach's assignments grouped by session.
func (h *AssignmentHandler) ListMine(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	schedules, err := h.service.ListForCoach(c.Context(), user.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("assignment listing failed")
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch assignments"})
	}
	return c.JSON(fiber.Map{"assignments": schedules})
}
