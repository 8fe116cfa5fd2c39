package service

import (
	"context"
	"time"

	"device-support-be/internal/dto"
	"device-support-be/internal/entity"
	"device-support-be/internal/pkg/apperrors"
	"device-support-be/internal/repository/specification"
	"device-support-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type ISessionService interface {
	Show(ctx context.Context, token string) (*dto.ShowSessionResponse, error)
	Put(ctx context.Context, request *dto.PutSessionRequest) (*dto.ShowSessionResponse, error)
	Delete(ctx context.Context, token string) error
}

// sessionService persists conversations keyed by the caller-supplied token.
// A short-lived read cache absorbs the polling the UI does between turns.
// The cache is shared with the analysis pipeline, which invalidates a token
// after appending turns.
type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, cache *gocache.Cache) ISessionService {
	if cache == nil {
		cache = gocache.New(30*time.Second, 5*time.Minute)
	}
	return &sessionService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *sessionService) Show(ctx context.Context, token string) (*dto.ShowSessionResponse, error) {
	if cached, ok := s.cache.Get(token); ok {
		return cached.(*dto.ShowSessionResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByToken{Token: token})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load session", err)
	}
	if session == nil {
		return nil, apperrors.NewValidationError("token", "session not found")
	}

	turns, err := uow.SessionTurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: session.Id},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load session turns", err)
	}

	response := toShowSessionResponse(session, turns)
	s.cache.Set(token, response, gocache.DefaultExpiration)
	return response, nil
}

// Put replaces the session's turns with the submitted list, creating the
// session when the token is new.
func (s *sessionService) Put(ctx context.Context, request *dto.PutSessionRequest) (*dto.ShowSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, apperrors.NewStoreError("failed to open transaction", err)
	}
	defer uow.Rollback()

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByToken{Token: request.Token})
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load session", err)
	}
	if session == nil {
		session = &entity.AnalysisSession{
			Id:    uuid.New(),
			Token: request.Token,
		}
		if err := uow.SessionRepository().Create(ctx, session); err != nil {
			return nil, apperrors.NewStoreError("failed to create session", err)
		}
	} else if err := uow.SessionTurnRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		return nil, apperrors.NewStoreError("failed to clear session turns", err)
	}

	turns := make([]*entity.SessionTurn, 0, len(request.Turns))
	for i, payload := range request.Turns {
		turns = append(turns, &entity.SessionTurn{
			Id:        uuid.New(),
			SessionId: session.Id,
			Position:  i,
			Role:      payload.Role,
			Text:      payload.Text,
			ImageRef:  payload.ImageRef,
			Metadata:  payload.Metadata,
		})
	}
	if len(turns) > 0 {
		if err := uow.SessionTurnRepository().CreateBulk(ctx, turns); err != nil {
			return nil, apperrors.NewStoreError("failed to store session turns", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, apperrors.NewStoreError("failed to commit session", err)
	}

	s.cache.Delete(request.Token)
	return toShowSessionResponse(session, turns), nil
}

func (s *sessionService) Delete(ctx context.Context, token string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByToken{Token: token})
	if err != nil {
		return apperrors.NewStoreError("failed to load session", err)
	}
	if session == nil {
		return apperrors.NewValidationError("token", "session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return apperrors.NewStoreError("failed to open transaction", err)
	}
	defer uow.Rollback()

	if err := uow.SessionTurnRepository().DeleteBySessionId(ctx, session.Id); err != nil {
		return apperrors.NewStoreError("failed to delete session turns", err)
	}
	if err := uow.SessionRepository().Delete(ctx, session.Id); err != nil {
		return apperrors.NewStoreError("failed to delete session", err)
	}
	if err := uow.Commit(); err != nil {
		return apperrors.NewStoreError("failed to commit session delete", err)
	}

	s.cache.Delete(token)
	return nil
}

func toShowSessionResponse(session *entity.AnalysisSession, turns []*entity.SessionTurn) *dto.ShowSessionResponse {
	turnResponses := make([]dto.SessionTurnResponse, 0, len(turns))
	for _, turn := range turns {
		turnResponses = append(turnResponses, dto.SessionTurnResponse{
			Position: turn.Position,
			Role:     turn.Role,
			Text:     turn.Text,
			ImageRef: turn.ImageRef,
			Metadata: turn.Metadata,
		})
	}
	return &dto.ShowSessionResponse{
		Token:     session.Token,
		Turns:     turnResponses,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}
