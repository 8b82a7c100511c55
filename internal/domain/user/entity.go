package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrInvalidRole = errors.New("invalid role")
)

type Role string

const (
	RoleMentor Role = "MENTOR"
	RoleMentee Role = "MENTEE"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMentor:
		return RoleMentor, nil
	case RoleMentee:
		return RoleMentee, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) Valid() bool {
	return r == RoleMentor || r == RoleMentee
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Tag is a deduplicated vocabulary entry shared across all profiles.
// Skills and interests live in separate vocabularies but share this shape.
type Tag struct {
	ID   uuid.UUID
	Name string
}

type Profile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Bio       string
	Skills    []Tag
	Interests []Tag
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithProfile pairs a user with its profile; Profile is nil when the user
// has not had one created yet.
type WithProfile struct {
	User
	Profile *Profile
}
