package request

import (
	"errors"
	"time"

	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("mentorship request not found")
	ErrInvalidStatus = errors.New("invalid request status")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusActive, StatusCompleted, StatusRejected:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Terminal reports whether no further transition may leave the status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Request is a directed edge from a mentee (sender) to a mentor (receiver).
type Request struct {
	ID         uuid.UUID
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Participant is the minimal counterpart identity exposed alongside a
// request. It never carries credentials.
type Participant struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  user.Role
}

type WithParticipants struct {
	Request
	Sender   Participant
	Receiver Participant
}

// transitionRoles maps a target status to the actor roles allowed to apply
// it. Accepting or rejecting a request is reserved for mentors; either
// participant may mark a mentorship completed. Transitions are not gated on
// the prior status.
var transitionRoles = map[Status]map[user.Role]bool{
	StatusActive:    {user.RoleMentor: true},
	StatusRejected:  {user.RoleMentor: true},
	StatusCompleted: {user.RoleMentor: true, user.RoleMentee: true},
}

// TransitionTarget reports whether a status is a legal target of a
// transition request. PENDING is only ever set at creation.
func TransitionTarget(s Status) bool {
	_, ok := transitionRoles[s]
	return ok
}

// TransitionAllowed reports whether an actor with the given role may move a
// request into the target status.
func TransitionAllowed(to Status, actor user.Role) bool {
	return transitionRoles[to][actor]
}
