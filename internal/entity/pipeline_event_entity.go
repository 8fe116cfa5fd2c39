package entity

import (
	"time"

	"github.com/google/uuid"
)

// PipelineEvent is one stage-boundary telemetry record. Persistence is
// best-effort; the pipeline never waits on it.
type PipelineEvent struct {
	Id           uuid.UUID
	SessionToken string
	Stage        string
	Payload      map[string]interface{}
	CreatedAt    time.Time
}
