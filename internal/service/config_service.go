package service

import (
	"context"
	"time"

	"device-support-be/internal/dto"
	"device-support-be/internal/pkg/apperrors"
	"device-support-be/internal/repository/specification"
	"device-support-be/internal/repository/unitofwork"
	"device-support-be/pkg/telemetry"

	gocache "github.com/patrickmn/go-cache"
)

const (
	cacheKeyCategories = "config:categories"
	cacheKeyPrompts    = "config:prompts"
)

type IConfigService interface {
	ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error)
	ListPrompts(ctx context.Context) ([]*dto.AnalysisPromptResponse, error)
	Stats(ctx context.Context) (*dto.SystemStatsResponse, error)
}

// configService serves the read-only configuration surface. Categories and
// prompts change rarely, so both sit behind a TTL cache.
type configService struct {
	uowFactory unitofwork.RepositoryFactory
	ring       *telemetry.RingSink
	cache      *gocache.Cache
}

func NewConfigService(uowFactory unitofwork.RepositoryFactory, ring *telemetry.RingSink) IConfigService {
	return &configService{
		uowFactory: uowFactory,
		ring:       ring,
		cache:      gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *configService) ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	if cached, ok := s.cache.Get(cacheKeyCategories); ok {
		return cached.([]*dto.CategoryResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	categories, err := uow.CategoryRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "name"},
	)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list categories", err)
	}

	responses := make([]*dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, &dto.CategoryResponse{
			Id:          category.Id,
			Key:         category.Key,
			Name:        category.Name,
			Description: category.Description,
		})
	}

	s.cache.Set(cacheKeyCategories, responses, gocache.DefaultExpiration)
	return responses, nil
}

func (s *configService) ListPrompts(ctx context.Context) ([]*dto.AnalysisPromptResponse, error) {
	if cached, ok := s.cache.Get(cacheKeyPrompts); ok {
		return cached.([]*dto.AnalysisPromptResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	prompts, err := uow.AnalysisPromptRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "key"},
	)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list analysis prompts", err)
	}

	responses := make([]*dto.AnalysisPromptResponse, 0, len(prompts))
	for _, prompt := range prompts {
		responses = append(responses, &dto.AnalysisPromptResponse{
			Id:                  prompt.Id,
			Key:                 prompt.Key,
			Name:                prompt.Name,
			SimilarityThreshold: prompt.SimilarityThreshold,
			TopK:                prompt.TopK,
		})
	}

	s.cache.Set(cacheKeyPrompts, responses, gocache.DefaultExpiration)
	return responses, nil
}

// Stats is computed fresh on each call; the counts are cheap and the route
// is operator-facing.
func (s *configService) Stats(ctx context.Context) (*dto.SystemStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docRepo := uow.DocumentRepository()

	total, err := docRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to count documents", err)
	}
	active, err := docRepo.Count(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to count active documents", err)
	}

	byCategory := make(map[string]int64)
	categories, err := uow.CategoryRepository().FindAll(ctx, specification.ActiveOnly{})
	if err == nil {
		for _, category := range categories {
			count, err := docRepo.Count(ctx, specification.ByCategory{Category: category.Key})
			if err != nil {
				continue
			}
			byCategory[category.Key] = count
		}
	}

	sessions, err := uow.SessionRepository().Count(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to count sessions", err)
	}

	embedded, err := docRepo.Count(ctx, specification.WithEmbedding{})
	if err != nil {
		embedded = 0
	}

	buffered := 0
	if s.ring != nil {
		buffered = s.ring.Len()
	}

	return &dto.SystemStatsResponse{
		TotalDocuments:      total,
		ActiveDocuments:     active,
		EmbeddedDocuments:   embedded,
		DocumentsByCategory: byCategory,
		TotalSessions:       sessions,
		BufferedStageEvents: buffered,
	}, nil
}
