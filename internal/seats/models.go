package seats

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusBooked    Status = "booked"
	StatusBlocked   Status = "blocked"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusBooked, StatusBlocked:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

type Seat struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	EventID    uuid.UUID       `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_seats_position"`
	Section    string          `json:"section" gorm:"not null;size:50;uniqueIndex:idx_seats_position"`
	RowLabel   string          `json:"row_label" gorm:"not null;size:10;uniqueIndex:idx_seats_position"`
	SeatNumber int             `json:"seat_number" gorm:"not null;uniqueIndex:idx_seats_position"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Status     Status          `json:"status" gorm:"type:varchar(20);default:'available';index"`
	OrderID    *uuid.UUID      `json:"order_id" gorm:"type:uuid"`
	BookedAt   *time.Time      `json:"booked_at"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Label formats the seat position, e.g. "VIP-A-12".
func (s *Seat) Label() string {
	return fmt.Sprintf("%s-%s-%d", s.Section, s.RowLabel, s.SeatNumber)
}

type Response struct {
	ID         string          `json:"id"`
	EventID    string          `json:"event_id"`
	Section    string          `json:"section"`
	RowLabel   string          `json:"row_label"`
	SeatNumber int             `json:"seat_number"`
	Label      string          `json:"label"`
	Price      decimal.Decimal `json:"price"`
	Status     Status          `json:"status"`
	BookedAt   *time.Time      `json:"booked_at,omitempty"`
}

func (s *Seat) ToResponse() Response {
	return Response{
		ID:         s.ID.String(),
		EventID:    s.EventID.String(),
		Section:    s.Section,
		RowLabel:   s.RowLabel,
		SeatNumber: s.SeatNumber,
		Label:      s.Label(),
		Price:      s.Price,
		Status:     s.Status,
		BookedAt:   s.BookedAt,
	}
}

type BulkCreateSeatsRequest struct {
	Section     string          `json:"section" binding:"required,min=1,max=50"`
	Rows        []string        `json:"rows" binding:"required,min=1,dive,min=1,max=10"`
	SeatsPerRow int             `json:"seats_per_row" binding:"required,min=1,max=500"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

type ListQuery struct {
	Section string `form:"section"`
	Status  string `form:"status" binding:"omitempty,oneof=available reserved booked blocked"`
}
