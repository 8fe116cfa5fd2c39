package embedding

import (
	"context"
	"errors"
)

// TargetDimensions is the fixed width of the similarity index. Vectors from
// the provider are padded or truncated to this length (see Normalize).
const TargetDimensions = 1408

// ErrEmbeddingFailed is returned once the bounded retry budget is exhausted.
var ErrEmbeddingFailed = errors.New("embedding generation failed")

// Provider generates fixed-width embedding vectors from image bytes or text.
type Provider interface {
	EmbedImage(ctx context.Context, data []byte, mimeType string) ([]float32, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
}
