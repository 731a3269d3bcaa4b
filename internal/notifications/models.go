package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTypeOrderCreated   EventType = "ORDER_CREATED"
	EventTypeOrderConfirmed EventType = "ORDER_CONFIRMED"
)

// OrderNotification is the message published for every order lifecycle event
// and consumed by the email workers.
type OrderNotification struct {
	ID             uuid.UUID `json:"id"`
	Type           EventType `json:"type"`
	OrderID        string    `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	UserID         string    `json:"user_id"`
	EventID        string    `json:"event_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`
	TotalAmount    string    `json:"total_amount"`
	CreatedAt      time.Time `json:"created_at"`
}

func (n *OrderNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// PartitionKey keys messages by order so events for one order stay ordered.
func (n *OrderNotification) PartitionKey() string {
	return n.OrderID
}

func (n *OrderNotification) Subject() string {
	switch n.Type {
	case EventTypeOrderCreated:
		return fmt.Sprintf("Order %s received", n.OrderNumber)
	case EventTypeOrderConfirmed:
		return fmt.Sprintf("Order %s confirmed - your tickets are ready", n.OrderNumber)
	default:
		return fmt.Sprintf("Update on order %s", n.OrderNumber)
	}
}

func (n *OrderNotification) Body() string {
	switch n.Type {
	case EventTypeOrderCreated:
		return fmt.Sprintf("Hi %s,\n\nWe received your order %s for a total of %s. Complete the payment to get your tickets issued.\n\nThe Ticketly team",
			n.RecipientName, n.OrderNumber, n.TotalAmount)
	case EventTypeOrderConfirmed:
		return fmt.Sprintf("Hi %s,\n\nYour payment for order %s (%s) is confirmed. Your tickets are attached to your account and ready for check-in.\n\nThe Ticketly team",
			n.RecipientName, n.OrderNumber, n.TotalAmount)
	default:
		return fmt.Sprintf("Hi %s,\n\nThere is an update on your order %s.\n\nThe Ticketly team",
			n.RecipientName, n.OrderNumber)
	}
}
