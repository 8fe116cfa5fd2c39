package service

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"device-support-be/internal/config"
	"device-support-be/internal/constant"
	"device-support-be/internal/dto"
	"device-support-be/internal/entity"
	"device-support-be/internal/pkg/apperrors"
	"device-support-be/internal/pkg/logger"
	"device-support-be/internal/repository/specification"
	"device-support-be/internal/repository/unitofwork"
	"device-support-be/pkg/embedding"
	"device-support-be/pkg/extractor"
	"device-support-be/pkg/retrieval"
	"device-support-be/pkg/synthesis"
	"device-support-be/pkg/telemetry"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type IAnalysisService interface {
	Analyze(ctx context.Context, request *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
}

// analysisService runs the end-to-end pipeline: extract context from the
// image, embed it, retrieve grounding documents and synthesize the reply.
// Extraction, embedding and retrieval all degrade instead of failing; only
// validation, configuration and the final generation call can abort a
// request.
type analysisService struct {
	uowFactory   unitofwork.RepositoryFactory
	extractor    *extractor.Extractor
	provider     embedding.Provider
	retriever    *retrieval.Retriever
	synthesizer  *synthesis.Synthesizer
	recorder     *telemetry.Recorder
	sessionCache *gocache.Cache
	pipelineCfg  config.PipelineConfig
	logger       logger.ILogger
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	ext *extractor.Extractor,
	provider embedding.Provider,
	retriever *retrieval.Retriever,
	synthesizer *synthesis.Synthesizer,
	recorder *telemetry.Recorder,
	sessionCache *gocache.Cache,
	pipelineCfg config.PipelineConfig,
	log logger.ILogger,
) IAnalysisService {
	return &analysisService{
		uowFactory:   uowFactory,
		extractor:    ext,
		provider:     provider,
		retriever:    retriever,
		synthesizer:  synthesizer,
		recorder:     recorder,
		sessionCache: sessionCache,
		pipelineCfg:  pipelineCfg,
		logger:       log,
	}
}

func (s *analysisService) Analyze(ctx context.Context, request *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	started := time.Now()

	if s.extractor == nil || s.synthesizer == nil {
		return nil, apperrors.NewConfigurationError("image analysis is not configured, missing generative API key")
	}
	if !constant.SupportedImageMimeTypes[request.MimeType] {
		return nil, apperrors.NewValidationError("mime_type", "unsupported image type")
	}
	imageData, err := base64.StdEncoding.DecodeString(request.ImageBase64)
	if err != nil || len(imageData) == 0 {
		return nil, apperrors.NewValidationError("image_base64", "invalid base64 image data")
	}

	sessionToken := request.SessionToken
	if sessionToken == "" {
		sessionToken = uuid.NewString()
	}

	s.recorder.RecordStage(ctx, sessionToken, telemetry.StageStart, map[string]interface{}{
		"mime_type": request.MimeType,
		"category":  request.Category,
	})

	// Stage 1: context extraction. Never fails, degrades to fallback.
	parseResult := s.extractor.Extract(ctx, imageData, request.MimeType, request.UserText)
	extracted := parseResult.Context
	if request.Category != "" {
		extracted.PrimaryCategory = request.Category
	}
	s.recorder.RecordStage(ctx, sessionToken, telemetry.StageContextExtracted, map[string]interface{}{
		"primary_category": extracted.PrimaryCategory,
		"urgency_level":    extracted.UrgencyLevel,
		"source":           string(parseResult.Outcome),
	})

	// Stage 2: embedding. Failure or an unconfigured provider degrades
	// retrieval to the non-vector strategies.
	var queryEmbedding []float32
	if s.provider != nil {
		queryEmbedding, err = s.provider.EmbedImage(ctx, imageData, request.MimeType)
		if err != nil {
			if !errors.Is(err, embedding.ErrEmbeddingFailed) {
				s.logger.Warn("analysis", "embedding failed with unexpected error", map[string]interface{}{"error": err.Error()})
			} else {
				s.logger.Warn("analysis", "embedding unavailable, retrieval degrades to keyword strategies", map[string]interface{}{"error": err.Error()})
			}
			queryEmbedding = nil
		}
	}

	// Stage 3: retrieval. Empty result is a valid outcome.
	retrievalCfg := s.resolveRetrievalConfig(ctx, request.PromptKey)
	matches := s.retriever.Retrieve(ctx, extracted, queryEmbedding, retrievalCfg)
	s.recorder.RecordStage(ctx, sessionToken, telemetry.StageDocumentsRetrieved, map[string]interface{}{
		"match_count": len(matches),
	})

	history, _ := s.loadHistory(ctx, sessionToken)

	// Stage 4: synthesis. The one stage with no safe default.
	reply, err := s.synthesizer.Synthesize(ctx, extracted, request.UserText, matches, history)
	if err != nil {
		s.recorder.RecordStage(ctx, sessionToken, telemetry.StageFailed, map[string]interface{}{
			"error": err.Error(),
		})
		return nil, apperrors.NewUpstreamServiceError("gemini", err.Error())
	}

	if err := s.appendTurns(ctx, sessionToken, request, reply); err != nil {
		s.logger.Warn("analysis", "failed to persist session turns", map[string]interface{}{"error": err.Error()})
	} else if s.sessionCache != nil {
		s.sessionCache.Delete(sessionToken)
	}

	s.recorder.RecordStage(ctx, sessionToken, telemetry.StageCompleted, map[string]interface{}{
		"match_count":        len(matches),
		"processing_time_ms": time.Since(started).Milliseconds(),
	})

	return &dto.AnalyzeResponse{
		Response:           reply,
		ExtractedContext:   toExtractedContextResponse(extracted, parseResult.Outcome),
		RetrievedDocuments: toRetrievedDocumentResponses(matches),
		MatchCount:         len(matches),
		ProcessingTimeMs:   time.Since(started).Milliseconds(),
		SessionToken:       sessionToken,
	}, nil
}

// resolveRetrievalConfig looks up the prompt row for per-route thresholds,
// falling back to the pipeline defaults when the key is absent or unknown.
func (s *analysisService) resolveRetrievalConfig(ctx context.Context, promptKey string) retrieval.Config {
	cfg := retrieval.Config{
		SimilarityThreshold: s.pipelineCfg.SimilarityThreshold,
		TopK:                s.pipelineCfg.RetrievalTopK,
	}
	if promptKey == "" {
		return cfg
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	prompt, err := uow.AnalysisPromptRepository().FindOneByKey(ctx, promptKey)
	if err != nil || prompt == nil || !prompt.IsActive {
		return cfg
	}
	cfg.SimilarityThreshold = prompt.SimilarityThreshold
	cfg.TopK = prompt.TopK
	return cfg
}

func (s *analysisService) loadHistory(ctx context.Context, sessionToken string) ([]*entity.SessionTurn, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByToken{Token: sessionToken})
	if err != nil || session == nil {
		return nil, err
	}
	return uow.SessionTurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "position"},
	)
}

// appendTurns records the user turn and the model reply, creating the session
// row on first use.
func (s *analysisService) appendTurns(ctx context.Context, sessionToken string, request *dto.AnalyzeRequest, reply string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByToken{Token: sessionToken})
	if err != nil {
		return err
	}
	if session == nil {
		session = &entity.AnalysisSession{
			Id:    uuid.New(),
			Token: sessionToken,
		}
		if err := uow.SessionRepository().Create(ctx, session); err != nil {
			return err
		}
	}

	position, err := uow.SessionTurnRepository().MaxPosition(ctx, session.Id)
	if err != nil {
		return err
	}

	userText := request.UserText
	if userText == "" {
		userText = "[image analysis request]"
	}

	turns := []*entity.SessionTurn{
		{
			Id:        uuid.New(),
			SessionId: session.Id,
			Position:  position + 1,
			Role:      constant.ChatMessageRoleUser,
			Text:      userText,
		},
		{
			Id:        uuid.New(),
			SessionId: session.Id,
			Position:  position + 2,
			Role:      constant.ChatMessageRoleModel,
			Text:      reply,
		},
	}
	if err := uow.SessionTurnRepository().CreateBulk(ctx, turns); err != nil {
		return err
	}

	return uow.Commit()
}

func toExtractedContextResponse(extracted extractor.ExtractedContext, outcome extractor.ParseOutcome) dto.ExtractedContextResponse {
	return dto.ExtractedContextResponse{
		PrimaryCategory:     extracted.PrimaryCategory,
		SecondaryCategories: extracted.SecondaryCategories,
		DetectedIssues:      extracted.DetectedIssues,
		VisualIndicators:    extracted.VisualIndicators,
		UrgencyLevel:        extracted.UrgencyLevel,
		Keywords:            extracted.Keywords,
		DeviceType:          extracted.DeviceType,
		ProblemType:         extracted.ProblemType,
		Source:              string(outcome),
	}
}

func toRetrievedDocumentResponses(matches []*retrieval.Match) []dto.RetrievedDocumentResponse {
	responses := make([]dto.RetrievedDocumentResponse, 0, len(matches))
	for _, match := range matches {
		responses = append(responses, dto.RetrievedDocumentResponse{
			Id:        match.Document.Id,
			Title:     match.Document.Title,
			Category:  match.Document.Category,
			Score:     match.Score,
			MatchedBy: match.MatchedBy,
		})
	}
	return responses
}
