package dto

import (
	"time"

	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

// UserResponse is the outward shape of a user. The password hash is stripped
// here at the serialization boundary, regardless of what the store returned.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      user.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
