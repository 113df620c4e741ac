package kafka

import (
	"Fanscope/internal/api/config"
	"Fanscope/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	relationConsumer sarama.ConsumerGroup
	relationHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, importSvc service.ImportService) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	relationConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaRelationConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	relationHandler := NewRelationImportHandler(importSvc)

	return &ConsumerManager{
		relationConsumer: relationConsumer,
		relationHandler:  relationHandler,
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaRelationConsumer.Topic
		log.Info("Relation import consumer started", "topic", topic)
		for {
			if err := m.relationConsumer.Consume(ctx, []string{topic}, m.relationHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.relationConsumer.Close(); err != nil {
		log.Error("Failed to close relation consumer", "err", err)
	}

	return nil
}
