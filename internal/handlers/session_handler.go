package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/services"
)

type sessionApplicationService interface {
	Create(ctx context.Context, creatorID string, input services.ComposeSessionInput) (string, error)
	Replace(ctx context.Context, sessionID string, input services.ComposeSessionInput) error
	Delete(ctx context.Context, sessionID string) error
	Get(ctx context.Context, sessionID string) (*models.SessionDetail, error)
	List(ctx context.Context, timeframe string) ([]models.SessionSummary, error)
}

type SessionHandler struct {
	service sessionApplicationService
	logger  zerolog.Logger
}

func NewSessionHandler(service *services.SessionService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{service: service, logger: logger}
}

type slotRequest struct {
	Type     string  `json:"type"`
	DrillID  *string `json:"drillId"`
	Duration int     `json:"duration"`
	Notes    *string `json:"notes"`
}

type coachRequest struct {
	CoachID  string  `json:"coachId"`
	Role     string  `json:"role"`
	TaskType *string `json:"taskType"`
	// SlotIndex is a 0-based slot index, or -1 for a setup task.
	// Omitting it means setup task, matching the -1 sentinel.
	SlotIndex *int `json:"slotIndex"`
}

type composeSessionRequest struct {
	Date       string         `json:"date"`
	StartTime  string         `json:"startTime"`
	Duration   int            `json:"duration"`
	Notes      *string        `json:"notes"`
	SetupNotes *string        `json:"setupNotes"`
	Slots      []slotRequest  `json:"slots"`
	Coaches    []coachRequest `json:"coaches"`
}

func (r composeSessionRequest) toInput() (services.ComposeSessionInput, error) {
	if strings.TrimSpace(r.Date) == "" || strings.TrimSpace(r.StartTime) == "" {
		return services.ComposeSessionInput{}, errors.New("date and startTime are required")
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(r.Date))
	if err != nil {
		return services.ComposeSessionInput{}, errors.New("date must be formatted YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", strings.TrimSpace(r.StartTime)); err != nil {
		return services.ComposeSessionInput{}, errors.New("startTime must be formatted HH:MM")
	}

	input := services.ComposeSessionInput{
		Date:       date,
		StartTime:  strings.TrimSpace(r.StartTime),
		Duration:   r.Duration,
		Notes:      r.Notes,
		SetupNotes: r.SetupNotes,
		Slots:      make([]services.SlotInput, 0, len(r.Slots)),
		Coaches:    make([]services.CoachInput, 0, len(r.Coaches)),
	}
	for _, slot := range r.Slots {
		input.Slots = append(input.Slots, services.SlotInput{
			Type:     slot.Type,
			DrillID:  slot.DrillID,
			Duration: slot.Duration,
			Notes:    slot.Notes,
		})
	}
	for _, coach := range r.Coaches {
		slotIndex := services.SetupSlotIndex
		if coach.SlotIndex != nil {
			slotIndex = *coach.SlotIndex
		}
		input.Coaches = append(input.Coaches, services.CoachInput{
			CoachID:   coach.CoachID,
			Role:      coach.Role,
			TaskType:  coach.TaskType,
			SlotIndex: slotIndex,
		})
	}
	return input, nil
}

func (h *SessionHandler) Create(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req composeSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sessionID, err := h.service.Create(c.Context(), user.ID, input)
	if err != nil {
		return h.mapError(c, err, "Failed to create session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "sessionId": sessionID})
}

func (h *SessionHandler) Replace(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID := strings.TrimSpace(c.Params("id"))
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req composeSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	input, err := req.toInput()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.Replace(c.Context(), sessionID, input); err != nil {
		return h.mapError(c, err, "Failed to update session")
	}

	return c.JSON(fiber.Map{"success": true, "sessionId": sessionID})
}

func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID := strings.TrimSpace(c.Params("id"))
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	if err := h.service.Delete(c.Context(), sessionID); err != nil {
		return h.mapError(c, err, "Failed to delete session")
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *SessionHandler) List(c *fiber.Ctx) error {
	timeframe := strings.TrimSpace(c.Query("timeframe"))
	if timeframe != "" && !strings.EqualFold(timeframe, "upcoming") && !strings.EqualFold(timeframe, "all") {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "timeframe must be upcoming or all"})
	}

	sessions, err := h.service.List(c.Context(), timeframe)
	if err != nil {
		return h.mapError(c, err, "Failed to fetch sessions")
	}
	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	sessionID := strings.TrimSpace(c.Params("id"))
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	session, err := h.service.Get(c.Context(), sessionID)
	if err != nil {
		return h.mapError(c, err, "Failed to fetch session")
	}
	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or invalid fields"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "A session already exists on this date. Only one session per day is allowed.",
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	default:
		h.logger.Error().Err(err).Msg(fallback)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}
