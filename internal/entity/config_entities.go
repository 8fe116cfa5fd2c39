package entity

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	Id          uuid.UUID
	Key         string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// AnalysisPrompt is a configured route variant of the pipeline. Different
// prompts carry their own similarity threshold and top-k because the source
// routes never agreed on a single value.
type AnalysisPrompt struct {
	Id                  uuid.UUID
	Key                 string
	Name                string
	Instruction         string
	SimilarityThreshold float64
	TopK                int
	IsActive            bool
	CreatedAt           time.Time
}
