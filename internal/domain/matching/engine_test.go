package matching

import (
	"testing"

	"github.com/google/uuid"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestScore_AsymmetricDenominator(t *testing.T) {
	// Requester: 4 skills, 2 interests. Candidate: 2 skills, 1 interest.
	// 1 common skill, 0 common interests.
	// raw = (2*1 + 0) / (2*max(4,2) + max(2,1)) = 2/9 -> 22
	shared := uuid.New()

	requester := TagSets{
		Skills:    append(ids(3), shared),
		Interests: ids(2),
	}
	candidate := TagSets{
		Skills:    append(ids(1), shared),
		Interests: ids(1),
	}

	if got := Score(requester, candidate); got != 22 {
		t.Fatalf("expected score 22, got %d", got)
	}

	if rev := Score(candidate, requester); rev != 22 {
		t.Fatalf("expected symmetric score 22, got %d", rev)
	}
}

func TestScore_BothSidesEmpty(t *testing.T) {
	if got := Score(TagSets{}, TagSets{}); got != 0 {
		t.Fatalf("expected 0 for empty sets, got %d", got)
	}
}

func TestScore_IdenticalSets(t *testing.T) {
	skills := ids(3)
	interests := ids(2)
	a := TagSets{Skills: skills, Interests: interests}

	if got := Score(a, a); got != 100 {
		t.Fatalf("expected 100 for identical sets, got %d", got)
	}
}

func TestScore_DuplicateIDsCountOnce(t *testing.T) {
	shared := uuid.New()
	a := TagSets{Skills: []uuid.UUID{shared, shared}}
	b := TagSets{Skills: []uuid.UUID{shared}}

	// |skills| on both sides is 1 after dedup: raw = 2/2 -> 100.
	if got := Score(a, b); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestRank_StableDescending(t *testing.T) {
	skills := ids(3)
	requester := TagSets{Skills: skills}

	// first and second tie on score, third outranks both.
	first := Candidate{ID: uuid.New(), Tags: TagSets{Skills: append(ids(2), skills[0])}}
	second := Candidate{ID: uuid.New(), Tags: TagSets{Skills: append(ids(2), skills[1])}}
	third := Candidate{ID: uuid.New(), Tags: TagSets{Skills: skills}}

	ranked := Rank(requester, []Candidate{first, second, third})
	if len(ranked) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(ranked))
	}
	if ranked[0].ID != third.ID {
		t.Fatalf("expected highest scorer first")
	}
	if ranked[1].ID != first.ID || ranked[2].ID != second.ID {
		t.Fatalf("tied candidates must keep their incoming order")
	}
	if ranked[1].Score != ranked[2].Score {
		t.Fatalf("expected a tie, got %d vs %d", ranked[1].Score, ranked[2].Score)
	}
}

func TestRank_NoProfileCandidateKept(t *testing.T) {
	requester := TagSets{Skills: ids(2), Interests: ids(1)}
	empty := Candidate{ID: uuid.New()}

	ranked := Rank(requester, []Candidate{empty})
	if len(ranked) != 1 {
		t.Fatalf("candidate without tags must stay in the output")
	}
	if ranked[0].Score != 0 {
		t.Fatalf("expected score 0, got %d", ranked[0].Score)
	}
}
