package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"device-support-be/internal/entity"
	"device-support-be/internal/model"
	"device-support-be/internal/repository/contract"
	"device-support-be/internal/repository/specification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CategoryRepositoryImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) contract.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *entity.Category) error {
	m := &model.Category{
		Id:          category.Id,
		Key:         category.Key,
		Name:        category.Name,
		Description: category.Description,
		IsActive:    category.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	category.Id = m.Id
	category.CreatedAt = m.CreatedAt
	return nil
}

func (r *CategoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	var models []*model.Category
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	categories := make([]*entity.Category, len(models))
	for i, m := range models {
		categories[i] = &entity.Category{
			Id:          m.Id,
			Key:         m.Key,
			Name:        m.Name,
			Description: m.Description,
			IsActive:    m.IsActive,
			CreatedAt:   m.CreatedAt,
		}
	}
	return categories, nil
}

type AnalysisPromptRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalysisPromptRepository(db *gorm.DB) contract.AnalysisPromptRepository {
	return &AnalysisPromptRepositoryImpl{db: db}
}

func (r *AnalysisPromptRepositoryImpl) Create(ctx context.Context, prompt *entity.AnalysisPrompt) error {
	m := promptToModel(prompt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	prompt.Id = m.Id
	prompt.CreatedAt = m.CreatedAt
	return nil
}

func (r *AnalysisPromptRepositoryImpl) FindOneByKey(ctx context.Context, key string) (*entity.AnalysisPrompt, error) {
	var m model.AnalysisPrompt
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return promptToEntity(&m), nil
}

func (r *AnalysisPromptRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisPrompt, error) {
	var models []*model.AnalysisPrompt
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	prompts := make([]*entity.AnalysisPrompt, len(models))
	for i, m := range models {
		prompts[i] = promptToEntity(m)
	}
	return prompts, nil
}

func promptToEntity(m *model.AnalysisPrompt) *entity.AnalysisPrompt {
	return &entity.AnalysisPrompt{
		Id:                  m.Id,
		Key:                 m.Key,
		Name:                m.Name,
		Instruction:         m.Instruction,
		SimilarityThreshold: m.SimilarityThreshold,
		TopK:                m.TopK,
		IsActive:            m.IsActive,
		CreatedAt:           m.CreatedAt,
	}
}

func promptToModel(e *entity.AnalysisPrompt) *model.AnalysisPrompt {
	return &model.AnalysisPrompt{
		Id:                  e.Id,
		Key:                 e.Key,
		Name:                e.Name,
		Instruction:         e.Instruction,
		SimilarityThreshold: e.SimilarityThreshold,
		TopK:                e.TopK,
		IsActive:            e.IsActive,
	}
}

type PipelineEventRepositoryImpl struct {
	db *gorm.DB
}

func NewPipelineEventRepository(db *gorm.DB) contract.PipelineEventRepository {
	return &PipelineEventRepositoryImpl{db: db}
}

func (r *PipelineEventRepositoryImpl) Create(ctx context.Context, event *entity.PipelineEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		payload = []byte("{}")
	}
	m := &model.PipelineEvent{
		Id:           event.Id,
		SessionToken: event.SessionToken,
		Stage:        event.Stage,
		Payload:      datatypes.JSON(payload),
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	event.Id = m.Id
	event.CreatedAt = m.CreatedAt
	return nil
}

func (r *PipelineEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PipelineEvent, error) {
	var models []*model.PipelineEvent
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	events := make([]*entity.PipelineEvent, len(models))
	for i, m := range models {
		var payload map[string]interface{}
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			payload = map[string]interface{}{}
		}
		events[i] = &entity.PipelineEvent{
			Id:           m.Id,
			SessionToken: m.SessionToken,
			Stage:        m.Stage,
			Payload:      payload,
			CreatedAt:    m.CreatedAt,
		}
	}
	return events, nil
}

func (r *PipelineEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	err := query.Model(&model.PipelineEvent{}).Count(&count).Error
	return count, err
}
