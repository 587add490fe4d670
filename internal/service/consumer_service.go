package service

import (
	"context"
	"encoding/json"

	"journal-be/internal/pkg/logger"
	"journal-be/internal/repository/unitofwork"
	"journal-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the activity topic in the background and
// persists each event to the system_logs table.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     logger,
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
	var evt events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal activity event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads never become valid, drop them
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SystemLogRepository().Append(ctx, "INFO", "activity", evt.Type, evt.Data); err != nil {
		cs.logger.Error("consumer", "Failed to persist activity event", map[string]interface{}{
			"event": evt.Type,
			"error": err.Error(),
		})
		msg.Nack() // storage errors are retriable
		return
	}

	cs.logger.Debug("consumer", "Activity event persisted", map[string]interface{}{
		"event": evt.Type,
	})
	msg.Ack()
}
