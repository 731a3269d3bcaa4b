package tickettypes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusSoldOut  Status = "sold_out"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusSoldOut, StatusInactive:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

type TicketType struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	EventID           uuid.UUID       `json:"event_id" gorm:"type:uuid;not null;index"`
	Name              string          `json:"name" gorm:"not null;size:100"`
	Description       string          `json:"description" gorm:"type:text"`
	Price             decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	QuantityAvailable int             `json:"quantity_available" gorm:"not null;check:quantity_available > 0"`
	QuantitySold      int             `json:"quantity_sold" gorm:"default:0;check:quantity_sold >= 0"`
	MinPurchase       int             `json:"min_purchase" gorm:"default:1"`
	MaxPurchase       int             `json:"max_purchase" gorm:"default:10"`
	SaleStartsAt      *time.Time      `json:"sale_starts_at"`
	SaleEndsAt        *time.Time      `json:"sale_ends_at"`
	Status            Status          `json:"status" gorm:"type:varchar(20);default:'active'"`
	CreatedAt         time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TicketType) TableName() string {
	return "ticket_types"
}

func (t *TicketType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Remaining reports the units still purchasable.
func (t *TicketType) Remaining() int {
	remaining := t.QuantityAvailable - t.QuantitySold
	if remaining < 0 {
		return 0
	}
	return remaining
}

type Response struct {
	ID                string          `json:"id"`
	EventID           string          `json:"event_id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int             `json:"quantity_available"`
	QuantitySold      int             `json:"quantity_sold"`
	Remaining         int             `json:"remaining"`
	MinPurchase       int             `json:"min_purchase"`
	MaxPurchase       int             `json:"max_purchase"`
	SaleStartsAt      *time.Time      `json:"sale_starts_at"`
	SaleEndsAt        *time.Time      `json:"sale_ends_at"`
	Status            Status          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (t *TicketType) ToResponse() Response {
	return Response{
		ID:                t.ID.String(),
		EventID:           t.EventID.String(),
		Name:              t.Name,
		Description:       t.Description,
		Price:             t.Price,
		QuantityAvailable: t.QuantityAvailable,
		QuantitySold:      t.QuantitySold,
		Remaining:         t.Remaining(),
		MinPurchase:       t.MinPurchase,
		MaxPurchase:       t.MaxPurchase,
		SaleStartsAt:      t.SaleStartsAt,
		SaleEndsAt:        t.SaleEndsAt,
		Status:            t.Status,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

type CreateTicketTypeRequest struct {
	Name              string          `json:"name" binding:"required,min=2,max=100"`
	Description       string          `json:"description" binding:"max=2000"`
	Price             decimal.Decimal `json:"price" binding:"required"`
	QuantityAvailable int             `json:"quantity_available" binding:"required,min=1,max=500000"`
	MinPurchase       int             `json:"min_purchase" binding:"omitempty,min=1"`
	MaxPurchase       int             `json:"max_purchase" binding:"omitempty,min=1"`
	SaleStartsAt      *time.Time      `json:"sale_starts_at"`
	SaleEndsAt        *time.Time      `json:"sale_ends_at"`
}

type UpdateTicketTypeRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=2,max=100"`
	Description       *string          `json:"description" binding:"omitempty,max=2000"`
	Price             *decimal.Decimal `json:"price"`
	QuantityAvailable *int             `json:"quantity_available" binding:"omitempty,min=1,max=500000"`
	MinPurchase       *int             `json:"min_purchase" binding:"omitempty,min=1"`
	MaxPurchase       *int             `json:"max_purchase" binding:"omitempty,min=1"`
	SaleStartsAt      *time.Time       `json:"sale_starts_at"`
	SaleEndsAt        *time.Time       `json:"sale_ends_at"`
	Status            *string          `json:"status" binding:"omitempty,oneof=active sold_out inactive"`
}
