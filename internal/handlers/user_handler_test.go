package handlers

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/morses-code/football-training-planner/internal/models"
	"github.com/morses-code/football-training-planner/internal/services"
)

type stubUserService struct {
	createFn func(ctx context.Context, actor *models.User, input services.CreateUserInput) (*models.User, error)
	listFn   func(ctx context.Context, actor *models.User) ([]models.User, error)
	deleteFn func(ctx context.Context, actor *models.User, userID string) error
}

func (s *stubUserService) CreateUser(ctx context.Context, actor *models.User, input services.CreateUserInput) (*models.User, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubUserService) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	return s.listFn(ctx, actor)
}

func (s *stubUserService) DeleteUser(ctx context.Context, actor *models.User, userID string) error {
	return s.deleteFn(ctx, actor, userID)
}

func userTestApp(stub *stubUserService, user *models.User) *fiber.App {
	handler := &UserHandler{service: stub, logger: zerolog.Nop()}
	app := fiber.New()
	group := app.Group("/api/v1/admin", asUser(user))
	group.Post("/users", handler.Create)
	group.Get("/users", handler.List)
	group.Delete("/users/:id", handler.Delete)
	return app
}

func TestUserCreate(t *testing.T) {
	stub := &stubUserService{
		createFn: func(_ context.Context, actor *models.User, input services.CreateUserInput) (*models.User, error) {
			if actor.ID != "coach-1" {
				t.Errorf("actor = %q, want coach-1", actor.ID)
			}
			if !input.MustChangePassword {
				t.Error("mustChangePassword flag not decoded")
			}
			return &models.User{ID: "user-2", Email: input.Email}, nil
		},
	}
	app := userTestApp(stub, testUser())

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/v1/admin/users", fiber.Map{
		"email":              "new@example.com",
		"name":               "New Coach",
		"password":           "secret123",
		"mustChangePassword": true,
	}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var body struct {
		Success bool   `json:"success"`
		UserID  string `json:"userId"`
	}
	decodeBody(t, resp, &body)
	if !body.Success || body.UserID != "user-2" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestUserCreateForbidden(t *testing.T) {
	stub := &stubUserService{
		createFn: func(context.Context, *models.User, services.CreateUserInput) (*models.User, error) {
			return nil, services.ErrForbidden
		},
	}
	app := userTestApp(stub, testUser())

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/v1/admin/users", fiber.Map{
		"email":    "new@example.com",
		"name":     "New Coach",
		"password": "secret123",
	}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestUserList(t *testing.T) {
	stub := &stubUserService{
		listFn: func(context.Context, *models.User) ([]models.User, error) {
			return []models.User{{ID: "coach-1"}, {ID: "user-2"}}, nil
		},
	}
	app := userTestApp(stub, testUser())

	resp, err := app.Test(jsonRequest(t, fiber.MethodGet, "/api/v1/admin/users", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Users []models.User `json:"users"`
	}
	decodeBody(t, resp, &body)
	if len(body.Users) != 2 {
		t.Errorf("expected 2 users, got %d", len(body.Users))
	}
}

func TestUserDeleteForbidden(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(context.Context, *models.User, string) error {
			return services.ErrForbidden
		},
	}
	app := userTestApp(stub, testUser())

	resp, err := app.Test(jsonRequest(t, fiber.MethodDelete, "/api/v1/admin/users/user-2", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestUserDeleteNotFound(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(context.Context, *models.User, string) error {
			return services.ErrNotFound
		},
	}
	app := userTestApp(stub, testUser())

	resp, err := app.Test(jsonRequest(t, fiber.MethodDelete, "/api/v1/admin/users/nope", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
