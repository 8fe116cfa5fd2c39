package telemetry

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"device-support-be/pkg/events"
	pktNats "device-support-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Recorder fans stage events out to the injected sinks, the in-process
// pubsub topic (for async persistence) and, when configured, NATS. Every
// path is fire-and-forget; a telemetry failure never reaches the caller.
type Recorder struct {
	sinks     []Sink
	pubSub    *gochannel.GoChannel
	topicName string
	natsPub   *pktNats.Publisher
}

func NewRecorder(pubSub *gochannel.GoChannel, topicName string, natsPub *pktNats.Publisher, sinks ...Sink) *Recorder {
	return &Recorder{
		sinks:     sinks,
		pubSub:    pubSub,
		topicName: topicName,
		natsPub:   natsPub,
	}
}

// RecordStage records one stage boundary.
func (r *Recorder) RecordStage(ctx context.Context, sessionToken, stage string, payload map[string]interface{}) {
	event := StageEvent{
		SessionToken: sessionToken,
		Stage:        stage,
		Payload:      payload,
		OccurredAt:   time.Now().UTC(),
	}

	for _, sink := range r.sinks {
		sink.Record(event)
	}

	if r.pubSub != nil {
		eventJson, err := json.Marshal(event)
		if err != nil {
			log.Printf("[WARN] Failed to marshal stage event: %v", err)
		} else if err := r.pubSub.Publish(r.topicName, message.NewMessage(watermill.NewUUID(), eventJson)); err != nil {
			log.Printf("[WARN] Failed to publish stage event: %v", err)
		}
	}

	if r.natsPub != nil {
		evt := events.BaseEvent{
			Type: stage,
			Data: map[string]interface{}{
				"session_token": event.SessionToken,
				"stage":         event.Stage,
				"payload":       event.Payload,
				"occurred_at":   event.OccurredAt.Format(time.RFC3339),
			},
			OccurredAt: event.OccurredAt,
		}
		if err := r.natsPub.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish stage event to NATS: %v", err)
		}
	}
}
