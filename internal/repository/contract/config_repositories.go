package contract

import (
	"context"

	"device-support-be/internal/entity"
	"device-support-be/internal/repository/specification"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error)
}

type AnalysisPromptRepository interface {
	Create(ctx context.Context, prompt *entity.AnalysisPrompt) error
	FindOneByKey(ctx context.Context, key string) (*entity.AnalysisPrompt, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisPrompt, error)
}

type PipelineEventRepository interface {
	Create(ctx context.Context, event *entity.PipelineEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PipelineEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
