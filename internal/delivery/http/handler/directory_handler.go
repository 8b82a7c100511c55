package handler

import (
	"errors"

	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type DirectoryHandler struct {
	uc usecase.DirectoryUsecase
}

func NewDirectoryHandler(uc usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

func (h *DirectoryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/mentors", h.Mentors)
	r.Get("/discover", h.Discover)
}

func (h *DirectoryHandler) Mentors(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	mentors, err := h.uc.Mentors(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, mentors)
}

func (h *DirectoryHandler) Discover(c fiber.Ctx) error {
	users, err := h.uc.Discover(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, users)
}
