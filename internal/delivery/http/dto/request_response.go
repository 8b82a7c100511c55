package dto

import (
	"time"

	"mentorlink/internal/domain/request"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

type RequestResponse struct {
	ID         uuid.UUID      `json:"id"`
	SenderID   uuid.UUID      `json:"sender_id"`
	ReceiverID uuid.UUID      `json:"receiver_id"`
	Status     request.Status `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
}

type ParticipantResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

type RequestDetailResponse struct {
	RequestResponse
	Sender   ParticipantResponse `json:"sender"`
	Receiver ParticipantResponse `json:"receiver"`
}

func NewRequestResponse(r request.Request) RequestResponse {
	return RequestResponse{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}

func NewRequestDetailResponse(r request.WithParticipants) RequestDetailResponse {
	return RequestDetailResponse{
		RequestResponse: NewRequestResponse(r.Request),
		Sender:          newParticipantResponse(r.Sender),
		Receiver:        newParticipantResponse(r.Receiver),
	}
}

func NewRequestDetailResponses(items []request.WithParticipants) []RequestDetailResponse {
	out := make([]RequestDetailResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewRequestDetailResponse(it))
	}
	return out
}

func newParticipantResponse(p request.Participant) ParticipantResponse {
	return ParticipantResponse{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role}
}
