package routes

import (
	"mentorlink/internal/config"
	"mentorlink/internal/database"
	v1 "mentorlink/internal/delivery/http/routes/v1"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(app *fiber.App, cfg config.Config, db database.DB, cache usecase.MatchCache) {
	if app == nil {
		return
	}

	app.Get("/health", func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	})

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), cfg, db, cache)
}
