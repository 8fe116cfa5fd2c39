package retrieval

import (
	"context"
	"strings"

	"device-support-be/internal/constant"
	"device-support-be/internal/entity"
	"device-support-be/internal/pkg/logger"
	"device-support-be/internal/repository/contract"
	"device-support-be/internal/repository/specification"
	"device-support-be/pkg/extractor"
)

const (
	strategyVector   = "vector"
	strategyKeyword  = "keyword"
	strategyCategory = "category"
	strategyUrgency  = "urgency"
)

// Config carries the per-request retrieval tuning, loaded from the matched
// analysis prompt row or falling back to the pipeline defaults.
type Config struct {
	SimilarityThreshold float64
	TopK                int
}

// Retriever ranks troubleshooting documents against an extracted context
// using vector similarity plus keyword, category and urgency heuristics.
type Retriever struct {
	documentRepo contract.DocumentRepository
	logger       logger.ILogger
}

func NewRetriever(documentRepo contract.DocumentRepository, logger logger.ILogger) *Retriever {
	return &Retriever{documentRepo: documentRepo, logger: logger}
}

// Retrieve merges the three strategies and returns the top matches. A failed
// strategy is logged and skipped, never fatal, and an empty result is valid.
func (r *Retriever) Retrieve(ctx context.Context, extracted extractor.ExtractedContext, queryEmbedding []float32, cfg Config) []*Match {
	scorer := NewScorer()

	r.applyVectorStrategy(ctx, scorer, extracted, queryEmbedding, cfg)
	r.applyKeywordStrategy(ctx, scorer, extracted, cfg)
	r.applyUrgencyStrategy(ctx, scorer, extracted, cfg)

	return scorer.Ranked(cfg.TopK)
}

func (r *Retriever) applyVectorStrategy(ctx context.Context, scorer *Scorer, extracted extractor.ExtractedContext, queryEmbedding []float32, cfg Config) {
	if len(queryEmbedding) == 0 {
		return
	}

	category := extracted.PrimaryCategory
	if category == constant.DefaultCategory {
		category = ""
	}

	scored, err := r.documentRepo.SearchSimilarWithScore(ctx, queryEmbedding, cfg.TopK*2, category, cfg.SimilarityThreshold)
	if err != nil {
		r.logger.Warn("retrieval", "vector search failed, continuing with other strategies", map[string]interface{}{"error": err.Error()})
		return
	}
	for _, result := range scored {
		scorer.AddVector(result.Document, result.Similarity, strategyVector)
	}
}

func (r *Retriever) applyKeywordStrategy(ctx context.Context, scorer *Scorer, extracted extractor.ExtractedContext, cfg Config) {
	categories := make([]string, 0, len(extracted.SecondaryCategories)+1)
	if extracted.PrimaryCategory != "" {
		categories = append(categories, extracted.PrimaryCategory)
	}
	categories = append(categories, extracted.SecondaryCategories...)
	if len(categories) == 0 && len(extracted.Keywords) == 0 {
		return
	}

	candidates := make([]*entity.RagDocument, 0)
	if len(categories) > 0 {
		byCategory, err := r.documentRepo.FindAll(ctx,
			specification.ActiveOnly{},
			specification.ByCategories{Categories: categories},
			specification.Pagination{Limit: cfg.TopK * 4},
		)
		if err != nil {
			r.logger.Warn("retrieval", "category lookup failed", map[string]interface{}{"error": err.Error()})
		} else {
			candidates = append(candidates, byCategory...)
		}
	}
	if len(extracted.Keywords) > 0 {
		byTag, err := r.documentRepo.FindAll(ctx,
			specification.ActiveOnly{},
			specification.ByAnyTag{Tags: extracted.Keywords},
			specification.Pagination{Limit: cfg.TopK * 4},
		)
		if err != nil {
			r.logger.Warn("retrieval", "tag lookup failed", map[string]interface{}{"error": err.Error()})
		} else {
			candidates = append(candidates, byTag...)
		}
	}

	secondary := make(map[string]bool, len(extracted.SecondaryCategories))
	for _, category := range extracted.SecondaryCategories {
		secondary[category] = true
	}

	seen := make(map[string]bool, len(candidates))
	for _, doc := range candidates {
		if seen[doc.Id.String()] {
			continue
		}
		seen[doc.Id.String()] = true

		if doc.Category == extracted.PrimaryCategory {
			scorer.AddBonus(doc, PrimaryCategoryBonus, strategyCategory)
		} else if secondary[doc.Category] {
			scorer.AddBonus(doc, SecondaryCategoryBonus, strategyCategory)
		}

		if matches := countKeywordMatches(doc, extracted.Keywords); matches > 0 {
			scorer.AddBonus(doc, float64(matches)*KeywordMatchBonus, strategyKeyword)
		}
	}
}

func (r *Retriever) applyUrgencyStrategy(ctx context.Context, scorer *Scorer, extracted extractor.ExtractedContext, cfg Config) {
	if extracted.UrgencyLevel != constant.UrgencyHigh && extracted.UrgencyLevel != constant.UrgencyCritical {
		return
	}

	safetyDocs, err := r.documentRepo.FindAll(ctx,
		specification.ActiveOnly{},
		specification.ByAnyTag{Tags: constant.SafetyTags},
		specification.Pagination{Limit: cfg.TopK * 2},
	)
	if err != nil {
		r.logger.Warn("retrieval", "safety document lookup failed", map[string]interface{}{"error": err.Error()})
		return
	}
	for _, doc := range safetyDocs {
		scorer.AddBonus(doc, UrgencyBoost, strategyUrgency)
	}
}

// countKeywordMatches counts distinct keywords appearing in the document's
// title, content or tags, case-insensitive.
func countKeywordMatches(doc *entity.RagDocument, keywords []string) int {
	if len(keywords) == 0 {
		return 0
	}

	haystack := strings.ToLower(doc.Title + " " + doc.Content)
	tags := make(map[string]bool, len(doc.Tags))
	for _, tag := range doc.Tags {
		tags[strings.ToLower(tag)] = true
	}

	matches := 0
	for _, keyword := range keywords {
		keyword = strings.ToLower(keyword)
		if keyword == "" {
			continue
		}
		if tags[keyword] || strings.Contains(haystack, keyword) {
			matches++
		}
	}
	return matches
}
