package events

import (
	"context"
	"strconv"
	"time"

	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	"github.com/Astemirdum/inventory-service/inventory/internal/service/lending"
	"github.com/Astemirdum/inventory-service/pkg/circuit_breaker"
	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher writes lending events to a topic, keyed by item so that events
// of one item stay ordered within a partition.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

func NewPublisher(producer sarama.SyncProducer, topic string, log *zap.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		cb:       circuit_breaker.New(20, 5*time.Second, 0.5, 2),
		log:      log.Named("events"),
	}
}

func (p *Publisher) Publish(ctx context.Context, event model.LendingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(strconv.FormatInt(event.ItemID, 10)),
		Value:     sarama.ByteEncoder(data),
		Timestamp: event.OccurredAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(event.Type)},
		},
	}

	err = p.cb.Call(func() error {
		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return err
		}
		p.log.Debug("event sent",
			zap.String("id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
		return nil
	})
	if errors.Is(err, circuit_breaker.ErrOpenCB) {
		return errors.Wrapf(err, "drop event %s", event.ID)
	}
	return errors.Wrap(err, "SendMessage")
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// Nop drops every event. It stands in when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, model.LendingEvent) error { return nil }

var (
	_ lending.Publisher = (*Publisher)(nil)
	_ lending.Publisher = Nop{}
)
