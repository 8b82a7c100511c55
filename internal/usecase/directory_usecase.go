package usecase

import (
	"context"

	"mentorlink/internal/domain/request"
	"mentorlink/internal/domain/user"
	"mentorlink/internal/repository"

	"github.com/google/uuid"
)

// MentorListing is a directory entry: mentor identity plus the status of the
// caller's most recent request toward them, when any exists.
type MentorListing struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Bio           string          `json:"bio"`
	Skills        []string        `json:"skills"`
	Interests     []string        `json:"interests"`
	RequestStatus *request.Status `json:"request_status"`
}

// DirectoryUser is a sanitized user record for the discover page.
type DirectoryUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      user.Role `json:"role"`
	Bio       string    `json:"bio"`
	Skills    []string  `json:"skills"`
	Interests []string  `json:"interests"`
}

type DirectoryUsecase interface {
	Mentors(ctx context.Context, callerID uuid.UUID) ([]MentorListing, error)
	Discover(ctx context.Context) ([]DirectoryUser, error)
}

type Directory struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	requests repository.RequestRepository
}

func NewDirectoryUsecase(users repository.UserRepository, profiles repository.ProfileRepository, requests repository.RequestRepository) *Directory {
	return &Directory{users: users, profiles: profiles, requests: requests}
}

func (u *Directory) Mentors(ctx context.Context, callerID uuid.UUID) ([]MentorListing, error) {
	if callerID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	mentors, err := u.users.ListByRole(ctx, user.RoleMentor, callerID)
	if err != nil {
		return nil, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(mentors))
	for _, m := range mentors {
		ids = append(ids, m.ID)
	}
	profiles, err := u.profiles.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	statuses, err := u.requests.LatestStatusesBySender(ctx, callerID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]MentorListing, 0, len(mentors))
	for _, m := range mentors {
		item := MentorListing{
			ID:        m.ID,
			Name:      m.Name,
			Skills:    []string{},
			Interests: []string{},
		}
		if prof, ok := profiles[m.ID]; ok {
			item.Bio = prof.Bio
			item.Skills = tagNames(prof.Skills)
			item.Interests = tagNames(prof.Interests)
		}
		if st, ok := statuses[m.ID]; ok {
			item.RequestStatus = &st
		}
		out = append(out, item)
	}
	return out, nil
}

func (u *Directory) Discover(ctx context.Context) ([]DirectoryUser, error) {
	users, err := u.users.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, usr := range users {
		ids = append(ids, usr.ID)
	}
	profiles, err := u.profiles.ListByUserIDs(ctx, ids)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]DirectoryUser, 0, len(users))
	for _, usr := range users {
		item := DirectoryUser{
			ID:        usr.ID,
			Name:      usr.Name,
			Email:     usr.Email,
			Role:      usr.Role,
			Skills:    []string{},
			Interests: []string{},
		}
		if prof, ok := profiles[usr.ID]; ok {
			item.Bio = prof.Bio
			item.Skills = tagNames(prof.Skills)
			item.Interests = tagNames(prof.Interests)
		}
		out = append(out, item)
	}
	return out, nil
}
