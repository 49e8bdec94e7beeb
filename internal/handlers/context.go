package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/morses-code/football-training-planner/internal/models"
)

// currentUser reads the user the auth middleware attached.
func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("user").(*models.User)
	return user, ok && user != nil
}

func currentToken(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals("token").(string)
	return token, ok && token != ""
}
