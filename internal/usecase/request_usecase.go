package usecase

import (
	"context"
	"errors"

	"mentorlink/internal/domain/request"
	"mentorlink/internal/domain/user"
	"mentorlink/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrMentorNotFound      = errors.New("mentor not found")
	ErrRequestNotFound     = errors.New("mentorship request not found")
	ErrDuplicateRequest    = errors.New("active or pending request already exists")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrForbiddenTransition = errors.New("role not permitted for this transition")
)

type RequestUsecase interface {
	Create(ctx context.Context, senderID, receiverID uuid.UUID) (request.Request, error)
	Transition(ctx context.Context, requestID, actorID uuid.UUID, actorRole user.Role, newStatus string) (request.WithParticipants, error)
	List(ctx context.Context, userID uuid.UUID) ([]request.WithParticipants, error)
}

type Requests struct {
	users    repository.UserRepository
	requests repository.RequestRepository
}

func NewRequestUsecase(users repository.UserRepository, requests repository.RequestRepository) *Requests {
	return &Requests{users: users, requests: requests}
}

// Create opens a PENDING request from sender to receiver. The receiver must
// be a mentor, and at most one open (PENDING or ACTIVE) request may exist per
// pair. The pre-check gives a clean error in the common case; the partial
// unique index at the storage layer decides when two creates race.
//
// The sender's role is not validated here; any authenticated user may send.
func (u *Requests) Create(ctx context.Context, senderID, receiverID uuid.UUID) (request.Request, error) {
	if senderID == uuid.Nil {
		return request.Request{}, ErrUnauthorized
	}

	receiver, err := u.users.GetByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return request.Request{}, ErrMentorNotFound
		}
		return request.Request{}, ErrInternal
	}
	if receiver.Role != user.RoleMentor {
		return request.Request{}, ErrMentorNotFound
	}

	exists, err := u.requests.ExistsOpenPair(ctx, senderID, receiverID)
	if err != nil {
		return request.Request{}, ErrInternal
	}
	if exists {
		return request.Request{}, ErrDuplicateRequest
	}

	req, err := u.requests.Create(ctx, senderID, receiverID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateOpenRequest) {
			return request.Request{}, ErrDuplicateRequest
		}
		return request.Request{}, ErrInternal
	}
	return req, nil
}

// Transition applies a status change on behalf of an actor. Actors that are
// not a participant get the same NotFound as a missing request, so request
// existence is not leaked. Role permissions come from the transition table:
// ACTIVE and REJECTED are mentor-only, COMPLETED is open to both sides.
func (u *Requests) Transition(ctx context.Context, requestID, actorID uuid.UUID, actorRole user.Role, newStatus string) (request.WithParticipants, error) {
	if actorID == uuid.Nil {
		return request.WithParticipants{}, ErrUnauthorized
	}

	status, err := request.ParseStatus(newStatus)
	if err != nil || !request.TransitionTarget(status) {
		return request.WithParticipants{}, ErrInvalidStatus
	}

	req, err := u.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, request.ErrNotFound) {
			return request.WithParticipants{}, ErrRequestNotFound
		}
		return request.WithParticipants{}, ErrInternal
	}

	if req.SenderID != actorID && req.ReceiverID != actorID {
		return request.WithParticipants{}, ErrRequestNotFound
	}

	if !request.TransitionAllowed(status, actorRole) {
		return request.WithParticipants{}, ErrForbiddenTransition
	}

	updated, err := u.requests.UpdateStatus(ctx, requestID, status)
	if err != nil {
		if errors.Is(err, request.ErrNotFound) {
			return request.WithParticipants{}, ErrRequestNotFound
		}
		return request.WithParticipants{}, ErrInternal
	}
	return updated, nil
}

func (u *Requests) List(ctx context.Context, userID uuid.UUID) ([]request.WithParticipants, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	out, err := u.requests.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
