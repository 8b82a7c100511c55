package usecase

import (
	"context"
	"errors"
	"strings"

	"mentorlink/internal/domain/user"
	"mentorlink/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type ProfileView struct {
	Bio       string
	Skills    []string
	Interests []string
}

type UpdateProfileInput struct {
	Bio       string
	Skills    []string
	Interests []string
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (ProfileView, error)
	Update(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (ProfileView, error)
}

type Profile struct {
	profiles repository.ProfileRepository
	tags     repository.TagRepository
	cache    MatchCache
}

func NewProfileUsecase(profiles repository.ProfileRepository, tags repository.TagRepository, cache MatchCache) *Profile {
	return &Profile{profiles: profiles, tags: tags, cache: cache}
}

// Get returns the caller's profile, creating an empty one on first fetch.
func (u *Profile) Get(ctx context.Context, userID uuid.UUID) (ProfileView, error) {
	prof, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			prof, err = u.profiles.CreateEmpty(ctx, userID)
			if err != nil {
				return ProfileView{}, ErrInternal
			}
			return toProfileView(prof), nil
		}
		return ProfileView{}, ErrInternal
	}
	return toProfileView(prof), nil
}

// Update replaces the bio and both tag sets. Tag names go through the global
// vocabulary with connect-or-create semantics, so a name used by any profile
// before is reused rather than duplicated.
func (u *Profile) Update(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (ProfileView, error) {
	skillNames := normalizeTagNames(in.Skills)
	interestNames := normalizeTagNames(in.Interests)

	skills, err := u.tags.UpsertSkills(ctx, skillNames)
	if err != nil {
		return ProfileView{}, ErrInternal
	}
	interests, err := u.tags.UpsertInterests(ctx, interestNames)
	if err != nil {
		return ProfileView{}, ErrInternal
	}

	prof, err := u.profiles.Replace(ctx, userID, strings.TrimSpace(in.Bio), tagIDs(skills), tagIDs(interests))
	if err != nil {
		return ProfileView{}, ErrInternal
	}

	// Rankings depend on every profile in the pool, so any edit invalidates
	// all cached matches.
	if u.cache != nil {
		_ = u.cache.InvalidateMatches(ctx)
	}

	return toProfileView(prof), nil
}

func normalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func tagIDs(tags []user.Tag) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.ID)
	}
	return out
}

func toProfileView(p user.Profile) ProfileView {
	return ProfileView{
		Bio:       p.Bio,
		Skills:    tagNames(p.Skills),
		Interests: tagNames(p.Interests),
	}
}

func tagNames(tags []user.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Name)
	}
	return out
}
