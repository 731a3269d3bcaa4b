package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
)

type Producer interface {
	Publish(ctx context.Context, notification *OrderNotification) error
	Close() error
}

type ProducerConfig struct {
	Brokers         []string
	Topic           string
	RetryMax        int
	Timeout         time.Duration
	MaxMessageBytes int
}

func DefaultProducerConfig(brokers []string, topic string) *ProducerConfig {
	return &ProducerConfig{
		Brokers:         brokers,
		Topic:           topic,
		RetryMax:        3,
		Timeout:         10 * time.Second,
		MaxMessageBytes: 1000000,
	}
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
}

func NewKafkaProducer(config *ProducerConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps one order on one partition.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaProducer{producer: producer, config: config}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, notification *OrderNotification) error {
	payload, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.Topic,
		Key:       sarama.StringEncoder(notification.PartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: notification.CreatedAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("notification_id"), Value: []byte(notification.ID.String())},
			{Key: []byte("notification_type"), Value: []byte(notification.Type)},
			{Key: []byte("order_id"), Value: []byte(notification.OrderID)},
			{Key: []byte("recipient_email"), Value: []byte(notification.RecipientEmail)},
		},
	}

	if _, _, err := p.producer.SendMessage(message); err != nil {
		return fmt.Errorf("failed to send notification to Kafka: %w", err)
	}
	return nil
}

func (p *kafkaProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}
