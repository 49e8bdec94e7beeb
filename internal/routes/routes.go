package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/morses-code/football-training-planner/internal/config"
	"github.com/morses-code/football-training-planner/internal/handlers"
	"github.com/morses-code/football-training-planner/internal/middleware"
	"github.com/morses-code/football-training-planner/internal/services"
	"github.com/morses-code/football-training-planner/internal/storage"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, store storage.Store, logger zerolog.Logger) {
	authService := services.NewAuthService(store)
	userService := services.NewUserService(store, cfg.AdminEmail)
	drillService := services.NewDrillService(store)
	sessionService := services.NewSessionService(store)
	assignmentService := services.NewAssignmentService(store)

	authHandler := handlers.NewAuthHandler(authService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	drillHandler := handlers.NewDrillHandler(drillService, logger)
	sessionHandler := handlers.NewSessionHandler(sessionService, logger)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService, logger)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", middleware.AuthRequired(authService), authHandler.Logout)
	auth.Get("/me", middleware.AuthRequired(authService), authHandler.Me)

	authProtected := api.Group("/v1", middleware.AuthRequired(authService))

	authProtected.Post("/profile", authHandler.UpdateProfile)
	authProtected.Post("/change-password", authHandler.ChangePassword)

	admin := authProtected.Group("/admin/users")
	admin.Post("", userHandler.Create)
	admin.Get("", userHandler.List)
	admin.Delete("/:id", userHandler.Delete)

	drills := authProtected.Group("/drills")
	drills.Post("", drillHandler.Create)
	drills.Get("", drillHandler.List)
	drills.Get("/:id", drillHandler.Get)
	drills.Put("/:id", drillHandler.Update)
	drills.Delete("/:id", drillHandler.Delete)

	sessions := authProtected.Group("/sessions")
	sessions.Post("", sessionHandler.Create)
	sessions.Get("", sessionHandler.List)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Put("/:id", sessionHandler.Replace)
	sessions.Delete("/:id", sessionHandler.Delete)

	authProtected.Get("/assignments", assignmentHandler.ListMine)
}
