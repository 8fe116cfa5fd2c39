package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"device-support-be/internal/constant"
	"device-support-be/internal/dto"
	"device-support-be/internal/entity"
	"device-support-be/internal/pkg/apperrors"
	"device-support-be/internal/pkg/logger"
	"device-support-be/internal/repository/specification"
	"device-support-be/internal/repository/unitofwork"
	"device-support-be/pkg/embedding"
	"device-support-be/pkg/extractor"
	"device-support-be/pkg/genai"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Register(ctx context.Context, request *dto.RegisterDocumentRequest) (*dto.RegisterDocumentResponse, error)
	Update(ctx context.Context, request *dto.UpdateDocumentRequest) (*dto.UpdateDocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	List(ctx context.Context, request *dto.ListDocumentsRequest) ([]*dto.ShowDocumentResponse, error)
}

// documentEnrichment is the AI-assisted metadata extracted during
// registration when the caller supplies a reference image or leaves the
// structured fields blank.
type documentEnrichment struct {
	Tags             []string `json:"tags"`
	VisualIndicators []string `json:"visual_indicators"`
	IssueType        string   `json:"issue_type"`
	SeverityLevel    string   `json:"severity_level"`
}

type documentService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   embedding.Provider
	generator  *genai.Client
	logger     logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	provider embedding.Provider,
	generator *genai.Client,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory: uowFactory,
		provider:   provider,
		generator:  generator,
		logger:     log,
	}
}

// Register stores a new troubleshooting document. The embedding is required;
// enrichment is best-effort.
func (s *documentService) Register(ctx context.Context, request *dto.RegisterDocumentRequest) (*dto.RegisterDocumentResponse, error) {
	if s.provider == nil {
		return nil, apperrors.NewConfigurationError("document registration is not configured, missing generative API key")
	}

	var imageData []byte
	if request.ImageBase64 != "" {
		if !constant.SupportedImageMimeTypes[request.MimeType] {
			return nil, apperrors.NewValidationError("mime_type", "unsupported image type")
		}
		decoded, err := base64.StdEncoding.DecodeString(request.ImageBase64)
		if err != nil {
			return nil, apperrors.NewValidationError("image_base64", "invalid base64 image data")
		}
		imageData = decoded
	}

	doc := &entity.RagDocument{
		Id:               uuid.New(),
		Title:            request.Title,
		Content:          request.Content,
		Category:         defaultString(request.Category, constant.DefaultCategory),
		Subcategory:      request.Subcategory,
		IssueType:        request.IssueType,
		SeverityLevel:    request.SeverityLevel,
		UrgencyLevel:     defaultString(request.UrgencyLevel, constant.DefaultUrgency),
		Difficulty:       request.Difficulty,
		EstimatedTime:    request.EstimatedTime,
		ToolsRequired:    request.ToolsRequired,
		SafetyWarnings:   request.SafetyWarnings,
		VisualIndicators: request.VisualIndicators,
		Tags:             normalizeTags(request.Tags),
		Metadata:         request.Metadata,
		IsActive:         true,
	}

	if len(doc.Tags) == 0 || len(doc.VisualIndicators) == 0 {
		s.enrich(ctx, doc, imageData, request.MimeType)
	}

	// Unlike the analysis pipeline, registration cannot degrade: a document
	// without an embedding would never match a vector search.
	vector, err := s.provider.EmbedText(ctx, doc.Title+"\n\n"+doc.Content)
	if err != nil {
		return nil, apperrors.NewUpstreamServiceError("embedding", err.Error())
	}
	doc.Embedding = vector

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperrors.NewStoreError("failed to open transaction", err)
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, apperrors.NewStoreError("failed to store document", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperrors.NewStoreError("failed to commit document", err)
	}

	return &dto.RegisterDocumentResponse{Id: doc.Id}, nil
}

// enrich asks the model for tags and indicators. Failures leave the document
// as submitted.
func (s *documentService) enrich(ctx context.Context, doc *entity.RagDocument, imageData []byte, mimeType string) {
	if s.generator == nil {
		return
	}
	prompt := fmt.Sprintf("%s\n\n<document>\nTitle: %s\n\n%s\n</document>", constant.DocumentEnrichmentPromptV1, doc.Title, doc.Content)

	var contents []*genai.Content
	if len(imageData) > 0 {
		contents = []*genai.Content{genai.ImageContent(prompt, imageData, mimeType)}
	} else {
		contents = []*genai.Content{genai.TextContent(genai.RoleUser, prompt)}
	}

	result, err := s.generator.GenerateContent(ctx, contents)
	if err != nil || result.Blocked || result.Empty {
		s.logger.Warn("document", "enrichment call failed, keeping submitted fields", nil)
		return
	}

	candidate := extractor.FirstJsonObject(result.Text)
	if candidate == "" {
		return
	}
	var enrichment documentEnrichment
	if err := json.Unmarshal([]byte(candidate), &enrichment); err != nil {
		return
	}

	if len(doc.Tags) == 0 {
		doc.Tags = normalizeTags(enrichment.Tags)
	}
	if len(doc.VisualIndicators) == 0 {
		doc.VisualIndicators = enrichment.VisualIndicators
	}
	if doc.IssueType == "" {
		doc.IssueType = enrichment.IssueType
	}
	if doc.SeverityLevel == "" {
		doc.SeverityLevel = enrichment.SeverityLevel
	}
}

func (s *documentService) Update(ctx context.Context, request *dto.UpdateDocumentRequest) (*dto.UpdateDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: request.Id})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load document", err)
	}
	if doc == nil {
		return nil, apperrors.NewValidationError("id", "document not found")
	}

	contentChanged := doc.Title != request.Title || doc.Content != request.Content

	doc.Title = request.Title
	doc.Content = request.Content
	doc.Category = defaultString(request.Category, constant.DefaultCategory)
	doc.Subcategory = request.Subcategory
	doc.IssueType = request.IssueType
	doc.SeverityLevel = request.SeverityLevel
	doc.UrgencyLevel = defaultString(request.UrgencyLevel, constant.DefaultUrgency)
	doc.Difficulty = request.Difficulty
	doc.EstimatedTime = request.EstimatedTime
	doc.ToolsRequired = request.ToolsRequired
	doc.SafetyWarnings = request.SafetyWarnings
	doc.VisualIndicators = request.VisualIndicators
	doc.Tags = normalizeTags(request.Tags)
	doc.Metadata = request.Metadata
	if request.IsActive != nil {
		doc.IsActive = *request.IsActive
	}

	if contentChanged {
		if s.provider == nil {
			return nil, apperrors.NewConfigurationError("document embedding is not configured, missing generative API key")
		}
		vector, err := s.provider.EmbedText(ctx, doc.Title+"\n\n"+doc.Content)
		if err != nil {
			return nil, apperrors.NewUpstreamServiceError("embedding", err.Error())
		}
		doc.Embedding = vector
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperrors.NewStoreError("failed to open transaction", err)
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, apperrors.NewStoreError("failed to update document", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperrors.NewStoreError("failed to commit document", err)
	}

	return &dto.UpdateDocumentResponse{Id: doc.Id}, nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperrors.NewStoreError("failed to open transaction", err)
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return apperrors.NewStoreError("failed to delete document", err)
	}
	return uow.Commit()
}

func (s *documentService) Deactivate(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperrors.NewStoreError("failed to open transaction", err)
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Deactivate(ctx, id); err != nil {
		return apperrors.NewStoreError("failed to deactivate document", err)
	}
	return uow.Commit()
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load document", err)
	}
	if doc == nil {
		return nil, apperrors.NewValidationError("id", "document not found")
	}
	return toShowDocumentResponse(doc), nil
}

func (s *documentService) List(ctx context.Context, request *dto.ListDocumentsRequest) ([]*dto.ShowDocumentResponse, error) {
	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if request.Category != "" {
		specs = append(specs, specification.ByCategory{Category: request.Category})
	}
	if request.Tag != "" {
		specs = append(specs, specification.ByAnyTag{Tags: []string{request.Tag}})
	}

	pageSize := request.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	page := request.Page
	if page < 1 {
		page = 1
	}
	specs = append(specs, specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to list documents", err)
	}

	responses := make([]*dto.ShowDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, toShowDocumentResponse(doc))
	}
	return responses, nil
}

func toShowDocumentResponse(doc *entity.RagDocument) *dto.ShowDocumentResponse {
	return &dto.ShowDocumentResponse{
		Id:               doc.Id,
		Title:            doc.Title,
		Content:          doc.Content,
		Category:         doc.Category,
		Subcategory:      doc.Subcategory,
		IssueType:        doc.IssueType,
		SeverityLevel:    doc.SeverityLevel,
		UrgencyLevel:     doc.UrgencyLevel,
		Difficulty:       doc.Difficulty,
		EstimatedTime:    doc.EstimatedTime,
		ToolsRequired:    doc.ToolsRequired,
		SafetyWarnings:   doc.SafetyWarnings,
		VisualIndicators: doc.VisualIndicators,
		Tags:             doc.Tags,
		HasEmbedding:     len(doc.Embedding) > 0,
		IsActive:         doc.IsActive,
		Metadata:         doc.Metadata,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
}

func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	return normalized
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
