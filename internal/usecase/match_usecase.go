package usecase

import (
	"context"
	"errors"

	"mentorlink/internal/domain/matching"
	"mentorlink/internal/domain/user"
	"mentorlink/internal/repository"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

// MentorMatch is one ranked candidate: sanitized mentor identity, profile
// highlights, and the compatibility score.
type MentorMatch struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       user.Role `json:"role"`
	Bio        string    `json:"bio"`
	Skills     []string  `json:"skills"`
	Interests  []string  `json:"interests"`
	MatchScore int       `json:"match_score"`
}

type MatchUsecase interface {
	RankedMentors(ctx context.Context, userID uuid.UUID) ([]MentorMatch, error)
}

type Match struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	cache    MatchCache
}

func NewMatchUsecase(users repository.UserRepository, profiles repository.ProfileRepository, cache MatchCache) *Match {
	return &Match{users: users, profiles: profiles, cache: cache}
}

// RankedMentors scores every mentor (excluding the requester) against the
// requester's tag sets and returns them sorted by descending score. Mentors
// without a profile score 0 but stay in the list.
func (u *Match) RankedMentors(ctx context.Context, userID uuid.UUID) ([]MentorMatch, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	cacheKey := "matches:" + userID.String()
	if u.cache != nil {
		var cached []MentorMatch
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	requesterProfile, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, ErrInternal
	}

	mentors, err := u.users.ListByRole(ctx, user.RoleMentor, userID)
	if err != nil {
		return nil, ErrInternal
	}

	mentorIDs := make([]uuid.UUID, 0, len(mentors))
	for _, m := range mentors {
		mentorIDs = append(mentorIDs, m.ID)
	}
	mentorProfiles, err := u.profiles.ListByUserIDs(ctx, mentorIDs)
	if err != nil {
		return nil, ErrInternal
	}

	requester := toTagSets(requesterProfile)
	candidates := make([]matching.Candidate, 0, len(mentors))
	for _, m := range mentors {
		c := matching.Candidate{ID: m.ID}
		if prof, ok := mentorProfiles[m.ID]; ok {
			c.Tags = toTagSets(prof)
		}
		candidates = append(candidates, c)
	}

	ranked := matching.Rank(requester, candidates)

	byID := make(map[uuid.UUID]user.User, len(mentors))
	for _, m := range mentors {
		byID[m.ID] = m
	}

	out := make([]MentorMatch, 0, len(ranked))
	for _, r := range ranked {
		m := byID[r.ID]
		item := MentorMatch{
			ID:         m.ID,
			Name:       m.Name,
			Email:      m.Email,
			Role:       m.Role,
			Skills:     []string{},
			Interests:  []string{},
			MatchScore: r.Score,
		}
		if prof, ok := mentorProfiles[m.ID]; ok {
			item.Bio = prof.Bio
			item.Skills = tagNames(prof.Skills)
			item.Interests = tagNames(prof.Interests)
		}
		out = append(out, item)
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, out, 0)
	}
	return out, nil
}

func toTagSets(p user.Profile) matching.TagSets {
	return matching.TagSets{
		Skills:    tagIDs(p.Skills),
		Interests: tagIDs(p.Interests),
	}
}
