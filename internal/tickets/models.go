package tickets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusUsed      Status = "used"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusUsed, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

type Ticket struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TicketCode  string    `json:"ticket_code" gorm:"uniqueIndex;not null;size:40"`
	OrderID     uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	OrderItemID uuid.UUID `json:"order_item_id" gorm:"type:uuid;not null"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	EventID     uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`

	// Exactly one of the two describes what was bought.
	TicketTypeName string `json:"ticket_type_name" gorm:"size:100"`
	SeatInfo       string `json:"seat_info" gorm:"size:100"`

	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Status      Status          `json:"status" gorm:"type:varchar(20);default:'active';index"`
	CheckedInAt *time.Time      `json:"checked_in_at"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Ticket) TableName() string {
	return "tickets"
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type Response struct {
	ID             string          `json:"id"`
	TicketCode     string          `json:"ticket_code"`
	OrderID        string          `json:"order_id"`
	EventID        string          `json:"event_id"`
	TicketTypeName string          `json:"ticket_type_name,omitempty"`
	SeatInfo       string          `json:"seat_info,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Status         Status          `json:"status"`
	CheckedInAt    *time.Time      `json:"checked_in_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (t *Ticket) ToResponse() Response {
	return Response{
		ID:             t.ID.String(),
		TicketCode:     t.TicketCode,
		OrderID:        t.OrderID.String(),
		EventID:        t.EventID.String(),
		TicketTypeName: t.TicketTypeName,
		SeatInfo:       t.SeatInfo,
		Price:          t.Price,
		Status:         t.Status,
		CheckedInAt:    t.CheckedInAt,
		CreatedAt:      t.CreatedAt,
	}
}

type VerifyResponse struct {
	Valid  bool     `json:"valid"`
	Reason string   `json:"reason,omitempty"`
	Ticket *Response `json:"ticket,omitempty"`
}
