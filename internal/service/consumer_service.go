package service

import (
	"context"
	"encoding/json"
	"log"

	"device-support-be/internal/entity"
	"device-support-be/internal/repository/unitofwork"
	"device-support-be/pkg/telemetry"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the telemetry topic and persists stage events to
// pipeline_events. Persistence is best-effort; a failed insert is logged and
// the message acked so the buffer never backs up into the pipeline.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event telemetry.StageEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Printf("[ERROR] Failed to unmarshal stage event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	record := &entity.PipelineEvent{
		Id:           uuid.New(),
		SessionToken: event.SessionToken,
		Stage:        event.Stage,
		Payload:      event.Payload,
		CreatedAt:    event.OccurredAt,
	}
	if err := uow.PipelineEventRepository().Create(ctx, record); err != nil {
		log.Printf("[WARN] Failed to persist stage event for session %s: %v", event.SessionToken, err)
	}

	msg.Ack()
}
