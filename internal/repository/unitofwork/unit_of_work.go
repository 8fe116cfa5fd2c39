package unitofwork

import (
	"context"

	"device-support-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	SessionRepository() contract.SessionRepository
	SessionTurnRepository() contract.SessionTurnRepository
	CategoryRepository() contract.CategoryRepository
	AnalysisPromptRepository() contract.AnalysisPromptRepository
	PipelineEventRepository() contract.PipelineEventRepository
}
