package entity

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisSession is keyed by a caller-supplied token; turns are ordered by
// position within the session.
type AnalysisSession struct {
	Id        uuid.UUID
	Token     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type SessionTurn struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Position  int
	Role      string
	Text      string
	ImageRef  string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
