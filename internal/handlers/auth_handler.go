package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/services"
)

type authApplicationService interface {
	Register(ctx context.Context, input services.RegisterInput) (*services.Credentials, error)
	Login(ctx context.Context, email, password string) (*services.Credentials, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UpdateProfile(ctx context.Context, userID, name, avatar string) (*models.User, error)
}

type AuthHandler struct {
	service authApplicationService
	logger  zerolog.Logger
}

func NewAuthHandler(service *services.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	creds, err := h.service.Register(c.Context(), services.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Password must be at least 6 characters and email must be valid"})
		case errors.Is(err, services.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already registered"})
		default:
			h.logger.Error().Err(err).Msg("registration failed")
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to create account"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(credentialsResponse(creds))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing email or password"})
	}

	creds, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"error": "Invalid email or password"})
		}
		h.logger.Error().Err(err).Msg("login failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to log in"})
	}

	return c.JSON(credentialsResponse(creds))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, ok := currentToken(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.service.Logout(c.Context(), token); err != nil {
		h.logger.Error().Err(err).Msg("logout failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to log out"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	return c.JSON(fiber.Map{"user": user})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.Avatar == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	updated, err := h.service.UpdateProfile(c.Context(), user.ID, req.Name, req.Avatar)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		default:
			h.logger.Error().Err(err).Msg("profile update failed")
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to update profile"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "user": updated})
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.ChangePassword(c.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Password must be at least 6 characters"})
		case errors.Is(err, services.ErrWrongPassword):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Current password is incorrect"})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		default:
			h.logger.Error().Err(err).Msg("password change failed")
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to change password"})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}

func credentialsResponse(creds *services.Credentials) fiber.Map {
	return fiber.Map{
		"success":    true,
		"token":      creds.Token,
		"expires_at": creds.ExpiresAt,
		"user":       creds.User,
	}
}
