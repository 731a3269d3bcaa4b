package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"ticketly/pkg/logger"
)

type ConsumerConfig struct {
	Brokers       []string
	Topic         string
	GroupID       string
	Workers       int
	RetryAttempts int
	RetryBackoff  time.Duration
}

func DefaultConsumerConfig(brokers []string, topic, groupID string, workers int) ConsumerConfig {
	if workers <= 0 {
		workers = 3
	}
	return ConsumerConfig{
		Brokers:       brokers,
		Topic:         topic,
		GroupID:       groupID,
		Workers:       workers,
		RetryAttempts: 3,
		RetryBackoff:  2 * time.Second,
	}
}

// Consumer reads order notifications from Kafka and delivers them by email.
type Consumer struct {
	cfg    ConsumerConfig
	group  sarama.ConsumerGroup
	email  EmailService
	log    *logger.Logger
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewKafkaConsumer(cfg ConsumerConfig, email EmailService, log *logger.Logger) (*Consumer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaCfg.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		cfg:   cfg,
		group: group,
		email: email,
		log:   log,
	}, nil
}

// Start launches the consumer workers. It returns immediately, workers run
// until Stop is called or the parent context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for err := range c.group.Errors() {
			c.log.Error("consumer group error", "error", err.Error())
		}
	}()

	for i := 0; i < c.cfg.Workers; i++ {
		c.wg.Add(1)
		go c.runWorker(ctx, i)
	}

	c.log.Info("notification consumer started",
		"topic", c.cfg.Topic,
		"group_id", c.cfg.GroupID,
		"workers", c.cfg.Workers,
	)
}

func (c *Consumer) runWorker(ctx context.Context, id int) {
	defer c.wg.Done()

	handler := &notificationHandler{consumer: c, workerID: id}
	for {
		if err := c.group.Consume(ctx, []string{c.cfg.Topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			c.log.Error("consumer worker error", "worker_id", id, "error", err.Error())
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	err := c.group.Close()
	c.wg.Wait()
	c.log.Info("notification consumer stopped")
	return err
}

type notificationHandler struct {
	consumer *Consumer
	workerID int
}

func (h *notificationHandler) Setup(session sarama.ConsumerGroupSession) error {
	h.consumer.log.Info("consumer session started",
		"worker_id", h.workerID,
		"member_id", session.MemberID(),
	)
	return nil
}

func (h *notificationHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *notificationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			h.processMessage(session.Context(), message)
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *notificationHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	var notification OrderNotification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		// Malformed payloads are dropped, retrying cannot fix them.
		h.consumer.log.Error("failed to unmarshal notification",
			"partition", message.Partition,
			"offset", message.Offset,
			"error", err.Error(),
		)
		return
	}

	cfg := h.consumer.cfg
	var lastErr error
	for attempt := 1; attempt <= cfg.RetryAttempts; attempt++ {
		lastErr = h.consumer.email.SendOrderNotification(ctx, &notification)
		if lastErr == nil {
			h.consumer.log.Info("notification delivered",
				"notification_id", notification.ID,
				"type", string(notification.Type),
				"order_number", notification.OrderNumber,
			)
			return
		}

		if attempt < cfg.RetryAttempts {
			backoff := cfg.RetryBackoff * time.Duration(attempt)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return
			}
		}
	}

	h.consumer.log.Error("notification delivery failed, giving up",
		"notification_id", notification.ID,
		"order_number", notification.OrderNumber,
		"attempts", cfg.RetryAttempts,
		"error", lastErr.Error(),
	)
}
