package notifications

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly/internal/orders"
	"ticketly/internal/shared/config"
	"ticketly/pkg/logger"
)

func sampleNotification(eventType EventType) *OrderNotification {
	return &OrderNotification{
		ID:             uuid.New(),
		Type:           eventType,
		OrderID:        uuid.NewString(),
		OrderNumber:    "ORD-20260101120000-ABC123",
		RecipientEmail: "somchai@example.com",
		RecipientName:  "Somchai Jaidee",
		TotalAmount:    "3000.00",
	}
}

func TestNotificationRoundTrip(t *testing.T) {
	original := sampleNotification(EventTypeOrderCreated)

	payload, err := original.ToJSON()
	require.NoError(t, err)

	var decoded OrderNotification
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Type, decoded.Type)
	assert.Equal(t, original.OrderNumber, decoded.OrderNumber)
}

func TestPartitionKeyIsOrderID(t *testing.T) {
	n := sampleNotification(EventTypeOrderCreated)
	assert.Equal(t, n.OrderID, n.PartitionKey())
}

func TestSubjectAndBodyPerEventType(t *testing.T) {
	created := sampleNotification(EventTypeOrderCreated)
	assert.Contains(t, created.Subject(), "received")
	assert.Contains(t, created.Body(), "Complete the payment")
	assert.Contains(t, created.Body(), created.RecipientName)

	confirmed := sampleNotification(EventTypeOrderConfirmed)
	assert.Contains(t, confirmed.Subject(), "confirmed")
	assert.Contains(t, confirmed.Body(), "ready for check-in")
}

func TestDisabledServiceIsNoOp(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enabled = false

	svc, err := NewService(cfg, logger.GetDefault())
	require.NoError(t, err)

	order := &orders.Order{
		ID:            uuid.New(),
		OrderNumber:   "ORD-20260101120000-ABC123",
		UserID:        uuid.New(),
		EventID:       uuid.New(),
		CustomerName:  "Somchai Jaidee",
		CustomerEmail: "somchai@example.com",
		TotalAmount:   decimal.RequireFromString("3000.00"),
	}

	// Must not panic or block without a broker.
	svc.OrderCreated(context.Background(), order)
	svc.OrderConfirmed(context.Background(), order)
	svc.Start(context.Background())
	svc.Stop()
}
