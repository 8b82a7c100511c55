package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"mentorlink/internal/config"
	"mentorlink/internal/database"
	dbpostgres "mentorlink/internal/database/postgres"
	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/delivery/http/routes"
	"mentorlink/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
	DB    database.DB
	Cache *cache.Redis
}

// Bootstrap connects the persistence collaborators and assembles the fiber
// app with its middleware and routes. The returned cleanup closes the DB.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	f.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(logger).Middleware())

	routes.Register(f, cfg, db, redisCache)

	app := &App{Fiber: f, DB: db, Cache: redisCache}
	cleanup := func() error {
		return db.Close()
	}
	return app, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
