package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/morses-code/football-training-planner/internal/config"
	"github.com/morses-code/football-training-planner/internal/database"
	applog "github.com/morses-code/football-training-planner/internal/log"
	"github.com/morses-code/football-training-planner/internal/routes"
	"github.com/morses-code/football-training-planner/internal/services"
	"github.com/morses-code/football-training-planner/internal/storage"
	"github.com/morses-code/football-training-planner/internal/storage/postgres"
	"github.com/morses-code/football-training-planner/internal/storage/redisstore"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := applog.New("production")
		bootLog.Fatal().Err(err).Msg("Failed to load config")
	}

	log := applog.New(cfg.AppEnv)

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.Close()
	log.Info().Str("driver", cfg.StorageDriver).Msg("Storage ready")

	userService := services.NewUserService(store, cfg.AdminEmail)
	if err := userService.EnsureAdmin(context.Background(), cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to provision admin user")
	}

	app := fiber.New()

	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	routes.RegisterRoutes(app, cfg, store, log)

	log.Info().Str("port", cfg.Port).Msg("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case "redis":
		return redisstore.NewStore(cfg.RedisURL)
	default:
		pool, err := database.Connect(cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(pool), nil
	}
}
