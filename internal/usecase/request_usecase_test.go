package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mentorlink/internal/domain/request"
	"mentorlink/internal/domain/user"
	"mentorlink/internal/repository"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	users map[uuid.UUID]user.User
	err   error
}

func (m mockUserRepo) CreateWithProfile(context.Context, user.User) error { return nil }
func (m mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (m mockUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (m mockUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (m mockUserRepo) ListByRole(_ context.Context, role user.Role, excluding uuid.UUID) ([]user.User, error) {
	var out []user.User
	for _, u := range m.users {
		if u.Role == role && u.ID != excluding {
			out = append(out, u)
		}
	}
	return out, nil
}
func (m mockUserRepo) ListAll(context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

// fakeRequestRepo mirrors the storage-level guarantee the partial unique
// index gives: inserting a second open request for the same pair fails
// atomically, no matter how the callers interleave.
type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]request.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[uuid.UUID]request.Request{}}
}

func (f *fakeRequestRepo) Create(_ context.Context, senderID, receiverID uuid.UUID) (request.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.requests {
		if r.SenderID == senderID && r.ReceiverID == receiverID && !r.Status.Terminal() {
			return request.Request{}, repository.ErrDuplicateOpenRequest
		}
	}
	req := request.Request{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     request.StatusPending,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) ExistsOpenPair(_ context.Context, senderID, receiverID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.SenderID == senderID && r.ReceiverID == receiverID && !r.Status.Terminal() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id uuid.UUID) (request.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return request.Request{}, request.ErrNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id uuid.UUID, status request.Status) (request.WithParticipants, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return request.WithParticipants{}, request.ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	f.requests[id] = r
	return request.WithParticipants{Request: r}, nil
}

func (f *fakeRequestRepo) ListByParticipant(_ context.Context, userID uuid.UUID) ([]request.WithParticipants, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []request.WithParticipants
	for _, r := range f.requests {
		if r.SenderID == userID || r.ReceiverID == userID {
			out = append(out, request.WithParticipants{Request: r})
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) LatestStatusesBySender(_ context.Context, senderID uuid.UUID) (map[uuid.UUID]request.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID]request.Status{}
	for _, r := range f.requests {
		if r.SenderID == senderID {
			out[r.ReceiverID] = r.Status
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if !r.Status.Terminal() {
			n++
		}
	}
	return n
}

func testParticipants() (mentee, mentor user.User, users mockUserRepo) {
	mentee = user.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", Role: user.RoleMentee}
	mentor = user.User{ID: uuid.New(), Name: "John", Email: "john@example.com", Role: user.RoleMentor}
	users = mockUserRepo{users: map[uuid.UUID]user.User{mentee.ID: mentee, mentor.ID: mentor}}
	return mentee, mentor, users
}

func TestRequestUsecase_Create_Pending(t *testing.T) {
	mentee, mentor, users := testParticipants()
	uc := NewRequestUsecase(users, newFakeRequestRepo())

	req, err := uc.Create(context.Background(), mentee.ID, mentor.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if req.Status != request.StatusPending {
		t.Fatalf("expected PENDING, got %s", req.Status)
	}
	if req.SenderID != mentee.ID || req.ReceiverID != mentor.ID {
		t.Fatalf("participants not recorded")
	}
}

func TestRequestUsecase_Create_ReceiverNotMentor(t *testing.T) {
	mentee, _, users := testParticipants()
	otherMentee := user.User{ID: uuid.New(), Role: user.RoleMentee}
	users.users[otherMentee.ID] = otherMentee
	uc := NewRequestUsecase(users, newFakeRequestRepo())

	if _, err := uc.Create(context.Background(), mentee.ID, otherMentee.ID); !errors.Is(err, ErrMentorNotFound) {
		t.Fatalf("expected ErrMentorNotFound, got %v", err)
	}
	if _, err := uc.Create(context.Background(), mentee.ID, uuid.New()); !errors.Is(err, ErrMentorNotFound) {
		t.Fatalf("expected ErrMentorNotFound for unknown receiver, got %v", err)
	}
}

func TestRequestUsecase_Create_DuplicateOpenPair(t *testing.T) {
	mentee, mentor, users := testParticipants()
	repo := newFakeRequestRepo()
	uc := NewRequestUsecase(users, repo)

	if _, err := uc.Create(context.Background(), mentee.ID, mentor.ID); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := uc.Create(context.Background(), mentee.ID, mentor.ID); !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
}

func TestRequestUsecase_Create_AllowedAfterTerminal(t *testing.T) {
	mentee, mentor, users := testParticipants()
	repo := newFakeRequestRepo()
	uc := NewRequestUsecase(users, repo)

	first, err := uc.Create(context.Background(), mentee.ID, mentor.ID)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := uc.Transition(context.Background(), first.ID, mentor.ID, user.RoleMentor, "REJECTED"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if _, err := uc.Create(context.Background(), mentee.ID, mentor.ID); err != nil {
		t.Fatalf("create after terminal status should succeed, got %v", err)
	}
}

// Racing creates for the same pair must yield exactly one PENDING request.
// The usecase pre-check cannot see in-flight inserts, so the repository's
// uniqueness guarantee has to hold the line.
func TestRequestUsecase_Create_ConcurrentSinglePending(t *testing.T) {
	mentee, mentor, users := testParticipants()
	repo := newFakeRequestRepo()
	uc := NewRequestUsecase(users, repo)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Create(context.Background(), mentee.ID, mentor.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrDuplicateRequest):
		default:
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly 1 successful create, got %d", succeeded)
	}
	if got := repo.openCount(); got != 1 {
		t.Fatalf("expected 1 open request, got %d", got)
	}
}

func TestRequestUsecase_Transition_MentorAccepts(t *testing.T) {
	mentee, mentor, users := testParticipants()
	repo := newFakeRequestRepo()
	uc := NewRequestUsecase(users, repo)

	req, err := uc.Create(context.Background(), mentee.ID, mentor.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := uc.Transition(context.Background(), req.ID, mentor.ID, user.RoleMentor, "ACTIVE")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != request.StatusActive {
		t.Fatalf("expected ACTIVE, got %s", updated.Status)
	}
}

func TestRequestUsecase_Transition_MenteeCannotAccept(t *testing.T) {
	mentee, mentor, users := testParticipants()
	repo := newFakeRequestRepo()
	uc := NewRequestUsecase(users, repo)

	req, err := uc.Create(context.Background(), mentee.ID, mentor.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, target := range []string{"ACTIVE", "REJECTED"} {
		if _, err := uc.Transition(context.Background(), req.ID, mentee.ID, user.RoleMentee, target); !errors.Is(err, ErrForbiddenTransition) {
			t.Fatalf("target %s: expected ErrForbiddenTransition, got %v", target, err)
		}
	}
}

func TestRequestUsecase_Transition_EitherSideCompletes(t *testing.T) {
	mentee, mentor, users := testParticipants()

	for _, tc := range []struct {
		name    string
		actorID uuid.UUID
		role    user.Role
	}{
		{"mentor", mentor.ID, user.RoleMentor},
		{"mentee", mentee.ID, user.RoleMentee},
	} {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRequestRepo()
			uc := NewRequestUsecase(users, repo)
			req, err := uc.Create(context.Background(), mentee.ID, mentor.ID)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			updated, err := uc.Transition(context.Background(), req.ID, tc.actorID, tc.role, "COMPLETED")
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if updated.Status != request.StatusCompleted {
				t.Fatalf("expected COMPLETED, got %s", updated.Status)
			}
		})
	}
}

func TestRequestUsecase_Transition_NonParticipant(t *testing.T) {
	mentee, mentor, users := testParticipants()
	outsider := user.User{ID: uuid.New(), Role: user.RoleMentor}
	users.users[outsider.ID] = outsider
	repo := newFakeRequestRepo()
	uc := NewRequestUsecase(users, repo)

	req, err := uc.Create(context.Background(), mentee.ID, mentor.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// An uninvolved mentor gets NotFound, not Forbidden, so the request's
	// existence is not revealed.
	if _, err := uc.Transition(context.Background(), req.ID, outsider.ID, user.RoleMentor, "ACTIVE"); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestRequestUsecase_Transition_InvalidTarget(t *testing.T) {
	mentee, mentor, users := testParticipants()
	repo := newFakeRequestRepo()
	uc := NewRequestUsecase(users, repo)

	req, err := uc.Create(context.Background(), mentee.ID, mentor.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, target := range []string{"PENDING", "active", "DONE", ""} {
		if _, err := uc.Transition(context.Background(), req.ID, mentor.ID, user.RoleMentor, target); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("target %q: expected ErrInvalidStatus, got %v", target, err)
		}
	}
}

func TestRequestUsecase_Transition_UnknownRequest(t *testing.T) {
	_, mentor, users := testParticipants()
	uc := NewRequestUsecase(users, newFakeRequestRepo())

	if _, err := uc.Transition(context.Background(), uuid.New(), mentor.ID, user.RoleMentor, "ACTIVE"); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}
