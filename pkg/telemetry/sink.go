package telemetry

import (
	"sync"
	"time"
)

// Pipeline stage names recorded at stage boundaries.
const (
	StageStart              = "pipeline_start"
	StageContextExtracted   = "context_extracted"
	StageDocumentsRetrieved = "documents_retrieved"
	StageCompleted          = "pipeline_completed"
	StageFailed             = "pipeline_failed"
)

// StageEvent is one stage-boundary record.
type StageEvent struct {
	SessionToken string                 `json:"session_token"`
	Stage        string                 `json:"stage"`
	Payload      map[string]interface{} `json:"payload"`
	OccurredAt   time.Time              `json:"occurred_at"`
}

// Sink receives stage events. Implementations must not block; a slow or
// failing sink must never stall the pipeline.
type Sink interface {
	Record(event StageEvent)
}

// RingSink keeps the most recent events in a fixed-size buffer, evicting the
// oldest once full. Safe for concurrent use.
type RingSink struct {
	mu       sync.Mutex
	events   []StageEvent
	capacity int
	next     int
	full     bool
}

func NewRingSink(capacity int) *RingSink {
	if capacity <= 0 {
		capacity = 1000
	}
	return &RingSink{
		events:   make([]StageEvent, capacity),
		capacity: capacity,
	}
}

func (s *RingSink) Record(event StageEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[s.next] = event
	s.next = (s.next + 1) % s.capacity
	if s.next == 0 {
		s.full = true
	}
}

// Snapshot returns the buffered events in arrival order, oldest first.
func (s *RingSink) Snapshot() []StageEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.full {
		out := make([]StageEvent, s.next)
		copy(out, s.events[:s.next])
		return out
	}

	out := make([]StageEvent, 0, s.capacity)
	out = append(out, s.events[s.next:]...)
	out = append(out, s.events[:s.next]...)
	return out
}

// Len returns the number of buffered events.
func (s *RingSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.full {
		return s.capacity
	}
	return s.next
}
