package retrieval

import (
	"math"
	"testing"

	"device-support-be/internal/entity"

	"github.com/google/uuid"
)

func doc(title string) *entity.RagDocument {
	return &entity.RagDocument{Id: uuid.New(), Title: title}
}

func TestScorerKeepsMaxVectorComponent(t *testing.T) {
	d := doc("paper jam")
	scorer := NewScorer()

	scorer.AddVector(d, 0.5, "vector")
	scorer.AddVector(d, 0.9, "vector")
	scorer.AddVector(d, 0.7, "vector")

	ranked := scorer.Ranked(10)
	if len(ranked) != 1 {
		t.Fatalf("got %d matches, want 1", len(ranked))
	}
	want := 0.9 * VectorWeight
	if math.Abs(ranked[0].Score-want) > 1e-9 {
		t.Fatalf("got score %f, want %f", ranked[0].Score, want)
	}
}

func TestScorerAccumulatesBonuses(t *testing.T) {
	d := doc("router reset")
	scorer := NewScorer()

	scorer.AddVector(d, 0.8, "vector")
	scorer.AddBonus(d, PrimaryCategoryBonus, "category")
	scorer.AddBonus(d, 2*KeywordMatchBonus, "keyword")
	scorer.AddBonus(d, UrgencyBoost, "urgency")

	ranked := scorer.Ranked(10)
	want := 0.8*VectorWeight + PrimaryCategoryBonus + 2*KeywordMatchBonus + UrgencyBoost
	if math.Abs(ranked[0].Score-want) > 1e-9 {
		t.Fatalf("got score %f, want %f", ranked[0].Score, want)
	}
}

// Adding any strategy contribution can only raise a document's score.
func TestScorerMergeIsMonotonic(t *testing.T) {
	d := doc("fridge not cooling")

	base := NewScorer()
	base.AddVector(d, 0.6, "vector")
	baseScore := base.Ranked(1)[0].Score

	withMore := NewScorer()
	withMore.AddVector(d, 0.6, "vector")
	withMore.AddVector(d, 0.2, "vector")
	withMore.AddBonus(d, KeywordMatchBonus, "keyword")
	moreScore := withMore.Ranked(1)[0].Score

	if moreScore < baseScore {
		t.Fatalf("score decreased from %f to %f after adding contributions", baseScore, moreScore)
	}
}

func TestScorerRankingIsDeterministic(t *testing.T) {
	docs := []*entity.RagDocument{doc("a"), doc("b"), doc("c")}

	run := func() []uuid.UUID {
		scorer := NewScorer()
		// b and c tie; insertion order must break the tie the same way
		// every run.
		scorer.AddVector(docs[1], 0.5, "vector")
		scorer.AddVector(docs[2], 0.5, "vector")
		scorer.AddVector(docs[0], 0.9, "vector")

		ids := make([]uuid.UUID, 0, 3)
		for _, match := range scorer.Ranked(3) {
			ids = append(ids, match.Document.Id)
		}
		return ids
	}

	first := run()
	for i := 0; i < 10; i++ {
		again := run()
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("ranking changed between runs: %v vs %v", first, again)
			}
		}
	}

	if first[0] != docs[0].Id {
		t.Fatalf("highest score did not rank first")
	}
	if first[1] != docs[1].Id || first[2] != docs[2].Id {
		t.Fatalf("tie not broken by insertion order: %v", first)
	}
}

func TestScorerCapsAtLimit(t *testing.T) {
	scorer := NewScorer()
	for i := 0; i < 10; i++ {
		scorer.AddVector(doc("d"), float64(i)/10, "vector")
	}

	ranked := scorer.Ranked(3)
	if len(ranked) != 3 {
		t.Fatalf("got %d matches, want 3", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatal("matches are not in descending order")
		}
	}
}

func TestScorerEmptyIsValid(t *testing.T) {
	scorer := NewScorer()
	if ranked := scorer.Ranked(5); len(ranked) != 0 {
		t.Fatalf("got %d matches, want 0", len(ranked))
	}
}
