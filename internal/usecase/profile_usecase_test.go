package usecase

import (
	"context"
	"testing"

	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

// mockTagRepo behaves like the vocabulary tables: one row per distinct name,
// reused across calls.
type mockTagRepo struct {
	skills    map[string]uuid.UUID
	interests map[string]uuid.UUID
}

func newMockTagRepo() *mockTagRepo {
	return &mockTagRepo{skills: map[string]uuid.UUID{}, interests: map[string]uuid.UUID{}}
}

func (m *mockTagRepo) UpsertSkills(_ context.Context, names []string) ([]user.Tag, error) {
	return upsertNames(m.skills, names), nil
}

func (m *mockTagRepo) UpsertInterests(_ context.Context, names []string) ([]user.Tag, error) {
	return upsertNames(m.interests, names), nil
}

func upsertNames(vocab map[string]uuid.UUID, names []string) []user.Tag {
	out := make([]user.Tag, 0, len(names))
	for _, n := range names {
		id, ok := vocab[n]
		if !ok {
			id = uuid.New()
			vocab[n] = id
		}
		out = append(out, user.Tag{ID: id, Name: n})
	}
	return out
}

func TestProfileUsecase_Get_CreatesEmptyOnFirstFetch(t *testing.T) {
	userID := uuid.New()
	profiles := &mockProfileRepo{}
	uc := NewProfileUsecase(profiles, newMockTagRepo(), newMemoryCache())

	view, err := uc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !profiles.created[userID] {
		t.Fatalf("expected empty profile to be created")
	}
	if view.Bio != "" || len(view.Skills) != 0 || len(view.Interests) != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
	if view.Skills == nil || view.Interests == nil {
		t.Fatalf("tag lists must be empty slices, not nil")
	}
}

func TestProfileUsecase_Update_NormalizesTagNames(t *testing.T) {
	userID := uuid.New()
	tagsRepo := newMockTagRepo()
	uc := NewProfileUsecase(&mockProfileRepo{}, tagsRepo, newMemoryCache())

	view, err := uc.Update(context.Background(), userID, UpdateProfileInput{
		Bio:       "  backend engineer ",
		Skills:    []string{" Go ", "Go", "Rust", ""},
		Interests: []string{"Open Source"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if view.Bio != "backend engineer" {
		t.Fatalf("expected trimmed bio, got %q", view.Bio)
	}
	if len(view.Skills) != 2 {
		t.Fatalf("expected 2 deduplicated skills, got %v", view.Skills)
	}
	if len(tagsRepo.skills) != 2 {
		t.Fatalf("expected 2 vocabulary entries, got %d", len(tagsRepo.skills))
	}
}

func TestProfileUsecase_Update_ReusesVocabularyAcrossUsers(t *testing.T) {
	tagsRepo := newMockTagRepo()
	uc := NewProfileUsecase(&mockProfileRepo{}, tagsRepo, newMemoryCache())

	if _, err := uc.Update(context.Background(), uuid.New(), UpdateProfileInput{Skills: []string{"Go"}}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	firstID := tagsRepo.skills["Go"]

	if _, err := uc.Update(context.Background(), uuid.New(), UpdateProfileInput{Skills: []string{"Go"}}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if tagsRepo.skills["Go"] != firstID {
		t.Fatalf("expected the same vocabulary entry to be reused")
	}
	if len(tagsRepo.skills) != 1 {
		t.Fatalf("expected a single vocabulary entry, got %d", len(tagsRepo.skills))
	}
}

func TestProfileUsecase_Update_InvalidatesMatchCache(t *testing.T) {
	cache := newMemoryCache()
	cache.entries["matches:"+uuid.New().String()] = []byte(`[]`)
	uc := NewProfileUsecase(&mockProfileRepo{}, newMockTagRepo(), cache)

	if _, err := uc.Update(context.Background(), uuid.New(), UpdateProfileInput{Bio: "updated"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected one invalidation, got %d", cache.invalidated)
	}
	if len(cache.entries) != 0 {
		t.Fatalf("expected cached matches to be dropped")
	}
}
