package v1

import (
	"mentorlink/internal/config"
	"mentorlink/internal/database"
	"mentorlink/internal/delivery/http/handler"
	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/pkg/jwt"
	"mentorlink/internal/repository"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, cache usecase.MatchCache) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	tagRepo := repository.NewPostgresTagRepository(db)
	requestRepo := repository.NewPostgresRequestRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	profileUC := usecase.NewProfileUsecase(profileRepo, tagRepo, cache)
	matchUC := usecase.NewMatchUsecase(userRepo, profileRepo, cache)
	directoryUC := usecase.NewDirectoryUsecase(userRepo, profileRepo, requestRepo)
	requestUC := usecase.NewRequestUsecase(userRepo, requestRepo)

	authHandler := handler.NewAuthHandler(authUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	matchHandler := handler.NewMatchHandler(matchUC)
	directoryHandler := handler.NewDirectoryHandler(directoryUC)
	requestHandler := handler.NewRequestHandler(requestUC)

	authHandler.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", authMw.Middleware())

	profileHandler.RegisterRoutes(protected.Group("/profile"))
	matchHandler.RegisterRoutes(protected)
	directoryHandler.RegisterRoutes(protected)
	requestHandler.RegisterRoutes(protected)
}
