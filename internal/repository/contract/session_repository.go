package contract

import (
	"context"

	"device-support-be/internal/entity"
	"device-support-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.AnalysisSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type SessionTurnRepository interface {
	Create(ctx context.Context, turn *entity.SessionTurn) error
	CreateBulk(ctx context.Context, turns []*entity.SessionTurn) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionTurn, error)
	// MaxPosition returns the highest turn position in the session, -1 when empty.
	MaxPosition(ctx context.Context, sessionId uuid.UUID) (int, error)
}
