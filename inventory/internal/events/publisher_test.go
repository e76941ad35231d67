package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/Astemirdum/inventory-service/inventory/internal/events"
	"github.com/Astemirdum/inventory-service/inventory/internal/model"
	"github.com/Astemirdum/inventory-service/pkg/circuit_breaker"
	"github.com/Astemirdum/inventory-service/pkg/kafka"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var event = model.LendingEvent{
	ID:         "5f0c8a6e-3f55-4b43-9d1b-5a0a8f6f7c11",
	Type:       model.EventBorrowed,
	BorrowID:   3,
	StudentID:  1,
	ItemID:     2,
	OccurredAt: time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC),
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != kafka.LendingTopic {
			return errors.Errorf("topic %q", msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "2" {
			return errors.Errorf("key %q", key)
		}
		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var got model.LendingEvent
		if err := jsoniter.Unmarshal(value, &got); err != nil {
			return err
		}
		if got.ID != event.ID || got.Type != event.Type || got.BorrowID != event.BorrowID {
			return errors.Errorf("event %+v", got)
		}
		return nil
	})

	p := events.NewPublisher(producer, kafka.LendingTopic, zap.NewNop())
	require.NoError(t, p.Publish(context.Background(), event))
	require.NoError(t, p.Close())
}

func TestPublisher_PublishFails(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := events.NewPublisher(producer, kafka.LendingTopic, zap.NewNop())
	err := p.Publish(context.Background(), event)
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestPublisher_OpensCircuit(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	// half of a 20 call window
	const failures = 10
	for i := 0; i < failures; i++ {
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	}

	p := events.NewPublisher(producer, kafka.LendingTopic, zap.NewNop())
	for i := 0; i < failures; i++ {
		require.Error(t, p.Publish(context.Background(), event))
	}
	err := p.Publish(context.Background(), event)
	require.ErrorIs(t, err, circuit_breaker.ErrOpenCB)
	require.NoError(t, p.Close())
}

func TestPublisher_CanceledContext(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	p := events.NewPublisher(producer, kafka.LendingTopic, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, p.Publish(ctx, event), context.Canceled)
	require.NoError(t, p.Close())
}

func TestNop(t *testing.T) {
	t.Parallel()
	require.NoError(t, events.Nop{}.Publish(context.Background(), event))
}
