package retrieval

import (
	"sort"

	"device-support-be/internal/entity"

	"github.com/google/uuid"
)

// Scoring weights. The vector component takes the maximum across strategies,
// bonuses accumulate, so adding a strategy can only raise a document's score.
const (
	VectorWeight           = 0.6
	KeywordMatchBonus      = 0.1
	PrimaryCategoryBonus   = 0.3
	SecondaryCategoryBonus = 0.15
	UrgencyBoost           = 0.25
)

// Match is a retrieved document with its combined relevance score.
type Match struct {
	Document  *entity.RagDocument
	Score     float64
	Vector    float64
	Bonus     float64
	MatchedBy []string
}

// Scorer merges the per-strategy contributions for each document. Insertion
// order is preserved so equal scores rank deterministically.
type Scorer struct {
	order   []uuid.UUID
	matches map[uuid.UUID]*Match
}

func NewScorer() *Scorer {
	return &Scorer{matches: make(map[uuid.UUID]*Match)}
}

func (s *Scorer) get(doc *entity.RagDocument) *Match {
	if match, ok := s.matches[doc.Id]; ok {
		return match
	}
	match := &Match{Document: doc}
	s.matches[doc.Id] = match
	s.order = append(s.order, doc.Id)
	return match
}

// AddVector records a weighted similarity contribution. When several
// strategies produce a vector component only the largest is kept.
func (s *Scorer) AddVector(doc *entity.RagDocument, similarity float64, strategy string) {
	match := s.get(doc)
	weighted := similarity * VectorWeight
	if weighted > match.Vector {
		match.Vector = weighted
	}
	match.MatchedBy = appendUnique(match.MatchedBy, strategy)
}

// AddBonus records an additive contribution from a non-vector strategy.
func (s *Scorer) AddBonus(doc *entity.RagDocument, bonus float64, strategy string) {
	if bonus <= 0 {
		return
	}
	match := s.get(doc)
	match.Bonus += bonus
	match.MatchedBy = appendUnique(match.MatchedBy, strategy)
}

// Ranked returns the merged matches sorted by score descending, capped at
// limit. Ties keep insertion order, so repeated runs over the same inputs
// produce the same ranking.
func (s *Scorer) Ranked(limit int) []*Match {
	ranked := make([]*Match, 0, len(s.order))
	for _, id := range s.order {
		match := s.matches[id]
		match.Score = match.Vector + match.Bonus
		ranked = append(ranked, match)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
