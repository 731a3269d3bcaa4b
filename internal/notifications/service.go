package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ticketly/internal/orders"
	"ticketly/internal/shared/config"
	"ticketly/pkg/logger"
)

// Service publishes order lifecycle notifications to Kafka and runs the
// email delivery workers. When Kafka is disabled it degrades to a no-op
// publisher so bookings keep working without the broker.
type Service struct {
	cfg      *config.Config
	producer Producer
	consumer *Consumer
	log      *logger.Logger
}

func NewService(cfg *config.Config, log *logger.Logger) (*Service, error) {
	s := &Service{cfg: cfg, log: log}

	if !cfg.Kafka.Enabled {
		log.Info("notifications disabled, orders will not produce Kafka events")
		return s, nil
	}

	producer, err := NewKafkaProducer(DefaultProducerConfig(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic))
	if err != nil {
		return nil, err
	}
	s.producer = producer

	email := NewSMTPEmailService(cfg.Email, log)
	consumer, err := NewKafkaConsumer(
		DefaultConsumerConfig(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic, cfg.Kafka.ConsumerGroupID, cfg.Kafka.ConsumerWorkers),
		email,
		log,
	)
	if err != nil {
		producer.Close()
		return nil, err
	}
	s.consumer = consumer

	return s, nil
}

// Start launches the consumer workers when Kafka is enabled.
func (s *Service) Start(ctx context.Context) {
	if s.consumer != nil {
		s.consumer.Start(ctx)
	}
}

// Stop shuts down the producer and consumer.
func (s *Service) Stop() {
	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			s.log.Error("failed to stop notification consumer", "error", err.Error())
		}
	}
	if s.producer != nil {
		if err := s.producer.Close(); err != nil {
			s.log.Error("failed to close notification producer", "error", err.Error())
		}
	}
}

func (s *Service) OrderCreated(ctx context.Context, order *orders.Order) {
	s.publish(ctx, EventTypeOrderCreated, order)
}

func (s *Service) OrderConfirmed(ctx context.Context, order *orders.Order) {
	s.publish(ctx, EventTypeOrderConfirmed, order)
}

func (s *Service) publish(ctx context.Context, eventType EventType, order *orders.Order) {
	if s.producer == nil {
		return
	}

	notification := &OrderNotification{
		ID:             uuid.New(),
		Type:           eventType,
		OrderID:        order.ID.String(),
		OrderNumber:    order.OrderNumber,
		UserID:         order.UserID.String(),
		EventID:        order.EventID.String(),
		RecipientEmail: order.CustomerEmail,
		RecipientName:  order.CustomerName,
		TotalAmount:    order.TotalAmount.StringFixed(2),
		CreatedAt:      time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.producer.Publish(ctx, notification); err != nil {
		s.log.Error("failed to publish order notification",
			"type", string(eventType),
			"order_number", order.OrderNumber,
			"error", err.Error(),
		)
	}
}
