package matching

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// SkillWeight is how much a shared skill counts relative to a shared
// interest. Shared competency is a stronger mentor-fit signal than shared
// curiosity, hence the 2:1 ratio.
const SkillWeight = 2

type TagSets struct {
	Skills    []uuid.UUID
	Interests []uuid.UUID
}

type Candidate struct {
	ID   uuid.UUID
	Tags TagSets
}

type Match struct {
	ID    uuid.UUID
	Score int
}

// Score computes the compatibility between a requester and a candidate as an
// integer in [0,100]:
//
//	raw = (SkillWeight*|commonSkills| + |commonInterests|) /
//	      (SkillWeight*max(|rSkills|,|cSkills|) + max(|rInterests|,|cInterests|))
//
// rounded to the nearest percent. When both sides have empty skill and
// interest sets the denominator is zero and the score is defined as 0.
// Normalizing by the larger side's set sizes makes the score symmetric.
func Score(requester, candidate TagSets) int {
	rSkills := toSet(requester.Skills)
	cSkills := toSet(candidate.Skills)
	rInterests := toSet(requester.Interests)
	cInterests := toSet(candidate.Interests)

	denom := SkillWeight*max(len(rSkills), len(cSkills)) + max(len(rInterests), len(cInterests))
	if denom == 0 {
		return 0
	}

	common := SkillWeight*intersectionSize(rSkills, cSkills) + intersectionSize(rInterests, cInterests)
	raw := float64(common) / float64(denom)
	return int(math.Round(raw * 100))
}

// Rank scores every candidate against the requester and returns the pool
// sorted by descending score. The sort is stable: ties keep the incoming
// relative order. Candidates with empty tag sets (including those without a
// profile) score 0 and stay in the output.
func Rank(requester TagSets, candidates []Candidate) []Match {
	out := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Match{ID: c.ID, Score: Score(requester, c.Tags)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

func intersectionSize(a, b map[uuid.UUID]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for id := range a {
		if _, ok := b[id]; ok {
			n++
		}
	}
	return n
}
