package contract

import (
	"context"

	"device-support-be/internal/entity"
	"device-support-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocument wraps a RagDocument with its cosine similarity score
type ScoredDocument struct {
	Document   *entity.RagDocument
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.RagDocument) error
	Update(ctx context.Context, doc *entity.RagDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RagDocument, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RagDocument, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore runs pgvector cosine search over active documents,
	// keeping only results at or above threshold. An empty category disables
	// the category filter.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, category string, threshold float64) ([]*ScoredDocument, error)
}
