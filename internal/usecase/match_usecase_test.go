package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"mentorlink/internal/domain/user"
	"mentorlink/internal/repository"

	"github.com/google/uuid"
)

type mockProfileRepo struct {
	byUser  map[uuid.UUID]user.Profile
	created map[uuid.UUID]bool
	err     error
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (user.Profile, error) {
	if m.err != nil {
		return user.Profile{}, m.err
	}
	p, ok := m.byUser[userID]
	if !ok {
		return user.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) CreateEmpty(_ context.Context, userID uuid.UUID) (user.Profile, error) {
	if m.created == nil {
		m.created = map[uuid.UUID]bool{}
	}
	m.created[userID] = true
	p := user.Profile{ID: uuid.New(), UserID: userID}
	if m.byUser == nil {
		m.byUser = map[uuid.UUID]user.Profile{}
	}
	m.byUser[userID] = p
	return p, nil
}

func (m *mockProfileRepo) Replace(_ context.Context, userID uuid.UUID, bio string, skillIDs, interestIDs []uuid.UUID) (user.Profile, error) {
	p := user.Profile{ID: uuid.New(), UserID: userID, Bio: bio}
	for _, id := range skillIDs {
		p.Skills = append(p.Skills, user.Tag{ID: id, Name: "skill-" + id.String()[:8]})
	}
	for _, id := range interestIDs {
		p.Interests = append(p.Interests, user.Tag{ID: id, Name: "interest-" + id.String()[:8]})
	}
	if m.byUser == nil {
		m.byUser = map[uuid.UUID]user.Profile{}
	}
	m.byUser[userID] = p
	return p, nil
}

func (m *mockProfileRepo) ListByUserIDs(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID]user.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := map[uuid.UUID]user.Profile{}
	for _, id := range userIDs {
		if p, ok := m.byUser[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type memoryCache struct {
	entries     map[string][]byte
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) InvalidateMatches(context.Context) error {
	c.invalidated++
	for k := range c.entries {
		delete(c.entries, k)
	}
	return nil
}

func tags(names ...string) []user.Tag {
	out := make([]user.Tag, 0, len(names))
	for _, n := range names {
		out = append(out, user.Tag{ID: uuid.New(), Name: n})
	}
	return out
}

func TestMatchUsecase_RankedMentors_Ordering(t *testing.T) {
	me := uuid.New()
	goTag := user.Tag{ID: uuid.New(), Name: "Go"}
	aiTag := user.Tag{ID: uuid.New(), Name: "AI"}

	perfect := user.User{ID: uuid.New(), Name: "Perfect", Email: "perfect@example.com", Role: user.RoleMentor}
	partial := user.User{ID: uuid.New(), Name: "Partial", Email: "partial@example.com", Role: user.RoleMentor}
	empty := user.User{ID: uuid.New(), Name: "Empty", Email: "empty@example.com", Role: user.RoleMentor}

	users := mockUserRepo{users: map[uuid.UUID]user.User{
		perfect.ID: perfect, partial.ID: partial, empty.ID: empty,
		me: {ID: me, Role: user.RoleMentee},
	}}
	profiles := &mockProfileRepo{byUser: map[uuid.UUID]user.Profile{
		me:         {UserID: me, Skills: []user.Tag{goTag}, Interests: []user.Tag{aiTag}},
		perfect.ID: {UserID: perfect.ID, Bio: "all of it", Skills: []user.Tag{goTag}, Interests: []user.Tag{aiTag}},
		partial.ID: {UserID: partial.ID, Skills: []user.Tag{goTag}, Interests: tags("Gaming")},
	}}

	uc := NewMatchUsecase(users, profiles, newMemoryCache())
	out, err := uc.RankedMentors(context.Background(), me)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 mentors, got %d", len(out))
	}
	if out[0].ID != perfect.ID || out[0].MatchScore != 100 {
		t.Fatalf("expected perfect overlap first at 100, got %s at %d", out[0].Name, out[0].MatchScore)
	}
	if out[1].ID != partial.ID {
		t.Fatalf("expected partial overlap second, got %s", out[1].Name)
	}
	if out[2].ID != empty.ID || out[2].MatchScore != 0 {
		t.Fatalf("expected profileless mentor last at 0, got %s at %d", out[2].Name, out[2].MatchScore)
	}
	if out[2].Skills == nil || out[2].Interests == nil {
		t.Fatalf("tag lists must be empty slices, not nil")
	}
}

func TestMatchUsecase_RankedMentors_RequesterProfileMissing(t *testing.T) {
	me := uuid.New()
	users := mockUserRepo{users: map[uuid.UUID]user.User{me: {ID: me, Role: user.RoleMentee}}}
	uc := NewMatchUsecase(users, &mockProfileRepo{}, newMemoryCache())

	if _, err := uc.RankedMentors(context.Background(), me); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestMatchUsecase_RankedMentors_CacheHit(t *testing.T) {
	me := uuid.New()
	mentor := user.User{ID: uuid.New(), Name: "Mentor", Role: user.RoleMentor}
	shared := user.Tag{ID: uuid.New(), Name: "Go"}
	users := mockUserRepo{users: map[uuid.UUID]user.User{
		mentor.ID: mentor,
		me:        {ID: me, Role: user.RoleMentee},
	}}
	profiles := &mockProfileRepo{byUser: map[uuid.UUID]user.Profile{
		me:        {UserID: me, Skills: []user.Tag{shared}},
		mentor.ID: {UserID: mentor.ID, Skills: []user.Tag{shared}},
	}}
	cache := newMemoryCache()
	uc := NewMatchUsecase(users, profiles, cache)

	first, err := uc.RankedMentors(context.Background(), me)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}

	// The second call must come from cache even after the backing data
	// changes underneath it.
	profiles.err = errors.New("db down")
	second, err := uc.RankedMentors(context.Background(), me)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(second) != len(first) || second[0].ID != first[0].ID || second[0].MatchScore != first[0].MatchScore {
		t.Fatalf("cached result differs from original")
	}
}
