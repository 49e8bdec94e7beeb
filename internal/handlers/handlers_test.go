package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/morses-code/football-training-planner/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:     "coach-1",
		Email:  "jo@example.com",
		Name:   "Jo",
		Avatar: "user-circle",
	}
}

// asUser injects a user the way the auth middleware would.
func asUser(user *models.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", user)
		c.Locals("token", "test-token")
		return c.Next()
	}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}
