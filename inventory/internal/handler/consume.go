package handler

import (
	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// Consumer applies command messages through the same dispatch path as the
// board form.
type Consumer struct {
	catalogSvc CatalogService
	lendingSvc LendingService
	log        *zap.Logger
}

func NewConsumer(catalogSvc CatalogService, lendingSvc LendingService, log *zap.Logger) *Consumer {
	return &Consumer{
		catalogSvc: catalogSvc,
		lendingSvc: lendingSvc,
		log:        log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			consumer.handle(session, message)
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// handle never fails the claim: a command that cannot be applied is logged and
// skipped, so one bad message does not block the partition.
func (consumer *Consumer) handle(session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	log := consumer.log.With(
		zap.String("topic", message.Topic),
		zap.Int32("partition", message.Partition),
		zap.Int64("offset", message.Offset))

	var msg model.CommandMessage
	if err := jsoniter.Unmarshal(message.Value, &msg); err != nil {
		log.Error("decode command", zap.Error(err))
		return
	}
	cmd, err := msg.Command()
	if err != nil {
		log.Error("command", zap.Error(err))
		return
	}
	d := NewDispatcher(consumer.catalogSvc, consumer.lendingSvc)
	if err := cmd.Execute(session.Context(), d); err != nil {
		log.Warn("command refused", zap.String("action", string(cmd.Action())), zap.Error(err))
		return
	}
	log.Debug("command applied", zap.String("action", string(cmd.Action())), zap.String("note", d.Note()))
}

var _ sarama.ConsumerGroupHandler = (*Consumer)(nil)
