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

type userApplicationService interface {
	CreateUser(ctx context.Context, actor *models.User, input services.CreateUserInput) (*models.User, error)
	ListUsers(ctx context.Context, actor *models.User) ([]models.User, error)
	DeleteUser(ctx context.Context, actor *models.User, userID string) error
}

// UserHandler hosts the admin-only user management endpoints.
type UserHandler struct {
	service userApplicationService
	logger  zerolog.Logger
}

func NewUserHandler(service *services.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

type createUserRequest struct {
	Email              string `json:"email"`
	Name               string `json:"name"`
	Password           string `json:"password"`
	Avatar             string `json:"avatar"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.service.CreateUser(c.Context(), actor, services.CreateUserInput{
		Email:              req.Email,
		Name:               req.Name,
		Password:           req.Password,
		Avatar:             req.Avatar,
		MustChangePassword: req.MustChangePassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized"})
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
		case errors.Is(err, services.ErrConflict):
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "User with this email already exists"})
		default:
			h.logger.Error().Err(err).Msg("user creation failed")
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to create user"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "userId": user.ID})
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	users, err := h.service.ListUsers(c.Context(), actor)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized"})
		}
		h.logger.Error().Err(err).Msg("user listing failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	userID := strings.TrimSpace(c.Params("id"))
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	if err := h.service.DeleteUser(c.Context(), actor, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized"})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		default:
			h.logger.Error().Err(err).Msg("user deletion failed")
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to delete user"})
		}
	}
	return c.JSON(fiber.Map{"success": true})
}
