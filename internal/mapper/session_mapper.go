package mapper

import (
	"time"

	"device-support-be/internal/entity"
	"device-support-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.AnalysisSession) *entity.AnalysisSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.AnalysisSession{
		Id:        s.Id,
		Token:     s.Token,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.AnalysisSession) *model.AnalysisSession {
	if s == nil {
		return nil
	}
	return &model.AnalysisSession{
		Id:        s.Id,
		Token:     s.Token,
		CreatedAt: s.CreatedAt,
	}
}

func (m *SessionMapper) TurnToEntity(t *model.SessionTurn) *entity.SessionTurn {
	if t == nil {
		return nil
	}
	return &entity.SessionTurn{
		Id:        t.Id,
		SessionId: t.SessionId,
		Position:  t.Position,
		Role:      t.Role,
		Text:      t.Text,
		ImageRef:  t.ImageRef,
		Metadata:  jsonToMap(t.Metadata),
		CreatedAt: t.CreatedAt,
	}
}

func (m *SessionMapper) TurnToModel(t *entity.SessionTurn) *model.SessionTurn {
	if t == nil {
		return nil
	}
	return &model.SessionTurn{
		Id:        t.Id,
		SessionId: t.SessionId,
		Position:  t.Position,
		Role:      t.Role,
		Text:      t.Text,
		ImageRef:  t.ImageRef,
		Metadata:  mapToJSON(t.Metadata),
		CreatedAt: t.CreatedAt,
	}
}

func (m *SessionMapper) TurnsToEntities(turns []*model.SessionTurn) []*entity.SessionTurn {
	entities := make([]*entity.SessionTurn, len(turns))
	for i, t := range turns {
		entities[i] = m.TurnToEntity(t)
	}
	return entities
}
