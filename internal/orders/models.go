package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ticketly/internal/shared/utils/pagination"
	"ticketly/internal/tickets"
)

type Order struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber   string          `json:"order_number" gorm:"uniqueIndex;not null;size:30"`
	UserID        uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	EventID       uuid.UUID       `json:"event_id" gorm:"type:uuid;not null;index"`
	CustomerName  string          `json:"customer_name" gorm:"not null;size:255"`
	CustomerEmail string          `json:"customer_email" gorm:"not null;size:255"`
	CustomerPhone string          `json:"customer_phone" gorm:"size:30"`
	Subtotal      decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"type:varchar(20);not null"`
	PaymentStatus PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`
	TransactionID string          `json:"transaction_id" gorm:"size:100"`
	PaidAt        *time.Time      `json:"paid_at"`
	Notes         string          `json:"notes" gorm:"type:text"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusCompleted
}

// TotalQuantity sums the units across all items.
func (o *Order) TotalQuantity() int {
	total := 0
	for i := range o.Items {
		total += o.Items[i].Quantity
	}
	return total
}

type OrderItem struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	TicketTypeID *uuid.UUID      `json:"ticket_type_id" gorm:"type:uuid"`
	SeatID       *uuid.UUID      `json:"seat_id" gorm:"type:uuid"`
	Description  string          `json:"description" gorm:"not null;size:150"`
	Quantity     int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Subtotal     decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// CreateOrderRequest is the booking payload. Each line is tagged with a kind
// so a line can never carry both a ticket type and a seat.
type CreateOrderRequest struct {
	EventID       string             `json:"event_id" binding:"required,uuid"`
	CustomerName  string             `json:"customer_name" binding:"required,min=2,max=255"`
	CustomerEmail string             `json:"customer_email" binding:"required,email"`
	CustomerPhone string             `json:"customer_phone" binding:"omitempty,max=30"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=credit_card bank_transfer e_wallet cash"`
	Notes         string             `json:"notes" binding:"omitempty,max=1000"`
	Items         []OrderLineRequest `json:"items" binding:"required,min=1,max=20,dive"`
}

type OrderLineRequest struct {
	Kind         string `json:"kind" binding:"required,oneof=ticket_type seat"`
	TicketTypeID string `json:"ticket_type_id" binding:"omitempty,uuid"`
	SeatID       string `json:"seat_id" binding:"omitempty,uuid"`
	Quantity     int    `json:"quantity" binding:"omitempty,min=1,max=10"`
}

type ConfirmPaymentRequest struct {
	TransactionID string `json:"transaction_id" binding:"required,min=4,max=100"`
}

type ListQuery struct {
	pagination.Params
	Status        string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	PaymentStatus string `form:"payment_status" binding:"omitempty,oneof=pending completed failed refunded cancelled"`
	EventID       string `form:"event_id" binding:"omitempty,uuid"`
}

// BookingLine is a validated order line handed to the repository.
type BookingLine struct {
	TicketTypeID *uuid.UUID
	SeatID       *uuid.UUID
	Quantity     int
}

type ItemResponse struct {
	ID           string          `json:"id"`
	TicketTypeID *string         `json:"ticket_type_id,omitempty"`
	SeatID       *string         `json:"seat_id,omitempty"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type Response struct {
	ID            string             `json:"id"`
	OrderNumber   string             `json:"order_number"`
	UserID        string             `json:"user_id"`
	EventID       string             `json:"event_id"`
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod PaymentMethod      `json:"payment_method"`
	PaymentStatus PaymentStatus      `json:"payment_status"`
	TransactionID string             `json:"transaction_id,omitempty"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Status        OrderStatus        `json:"status"`
	Items         []ItemResponse     `json:"items"`
	Tickets       []tickets.Response `json:"tickets,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func (o *Order) ToResponse(issued []tickets.Ticket) Response {
	items := make([]ItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]

		var ticketTypeID, seatID *string
		if item.TicketTypeID != nil {
			s := item.TicketTypeID.String()
			ticketTypeID = &s
		}
		if item.SeatID != nil {
			s := item.SeatID.String()
			seatID = &s
		}

		items[i] = ItemResponse{
			ID:           item.ID.String(),
			TicketTypeID: ticketTypeID,
			SeatID:       seatID,
			Description:  item.Description,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			Subtotal:     item.Subtotal,
		}
	}

	var ticketResponses []tickets.Response
	for i := range issued {
		ticketResponses = append(ticketResponses, issued[i].ToResponse())
	}

	return Response{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID.String(),
		EventID:       o.EventID.String(),
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		CustomerPhone: o.CustomerPhone,
		Subtotal:      o.Subtotal,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		TransactionID: o.TransactionID,
		PaidAt:        o.PaidAt,
		Notes:         o.Notes,
		Status:        o.Status,
		Items:         items,
		Tickets:       ticketResponses,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
