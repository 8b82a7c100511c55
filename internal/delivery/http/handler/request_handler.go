package handler

import (
	"errors"

	"mentorlink/internal/delivery/http/dto"
	"mentorlink/internal/delivery/http/middleware"
	"mentorlink/internal/domain/user"
	"mentorlink/internal/pkg/response"
	"mentorlink/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RequestHandler struct {
	uc usecase.RequestUsecase
}

type createRequestBody struct {
	MentorID uuid.UUID `json:"mentor_id"`
}

type transitionRequestBody struct {
	Status string `json:"status"`
}

func NewRequestHandler(uc usecase.RequestUsecase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

func (h *RequestHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/requests", h.Create)
	r.Get("/requests", h.List)
	r.Put("/requests/:request_id", h.Transition)
}

func (h *RequestHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var body createRequestBody
	if err := c.Bind().Body(&body); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if body.MentorID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing mentor_id", nil, nil)
	}

	req, err := h.uc.Create(c.Context(), userID, body.MentorID)
	if err != nil {
		return mapRequestUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewRequestResponse(req))
}

func (h *RequestHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapRequestUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequestDetailResponses(items))
}

func (h *RequestHandler) Transition(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	role, ok := c.Locals(middleware.CtxRoleKey).(user.Role)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	requestID, err := uuid.Parse(c.Params("request_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var body transitionRequestBody
	if err := c.Bind().Body(&body); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.Transition(c.Context(), requestID, userID, role, body.Status)
	if err != nil {
		return mapRequestUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewRequestDetailResponse(updated))
}

func mapRequestUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrMentorNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Mentor not found", nil, err)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Request not found", nil, err)
	case errors.Is(err, usecase.ErrDuplicateRequest):
		return middleware.NewAppError(fiber.StatusConflict, "An active or pending request already exists", nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	case errors.Is(err, usecase.ErrForbiddenTransition):
		return middleware.NewAppError(fiber.StatusForbidden, "Only mentors can accept or reject requests", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
