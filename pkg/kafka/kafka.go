package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	LendingTopic  = "inventory.lending"
	CommandsTopic = "inventory.commands"

	InventoryConsumerGroup = "inventory"
)

type Config struct {
	Addrs         []string `envconfig:"KAFKA_ADDRS"`
	LendingTopic  string   `envconfig:"KAFKA_LENDING_TOPIC" default:"inventory.lending"`
	CommandsTopic string   `envconfig:"KAFKA_COMMANDS_TOPIC" default:"inventory.commands"`
	Group         string   `envconfig:"KAFKA_GROUP" default:"inventory"`
	// ConsumeCommands starts the command consumer when brokers are configured.
	ConsumeCommands bool `envconfig:"KAFKA_CONSUME_COMMANDS" default:"true"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Partitioner = sarama.NewHashPartitioner

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	defaultCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	defaultCfg.Consumer.Return.Errors = true

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume blocks until ctx is done, rejoining the group after every rebalance.
func Consume(ctx context.Context, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, log *zap.Logger, topics ...string) {
	go func() {
		for err := range group.Errors() {
			log.Error("kafka consumer group", zap.Error(err))
		}
	}()
	for {
		if err := group.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			log.Error("group.Consume", zap.Error(err))
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}
