package events

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticketly/internal/shared/utils/pagination"
)

type Event struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title         string    `json:"title" gorm:"not null;size:255"`
	Slug          string    `json:"slug" gorm:"uniqueIndex;not null;size:280"`
	Description   string    `json:"description" gorm:"type:text"`
	Category      Category  `json:"category" gorm:"type:varchar(20);default:'other'"`
	VenueName     string    `json:"venue_name" gorm:"not null;size:255"`
	VenueAddress  string    `json:"venue_address" gorm:"size:500"`
	VenueCity     string    `json:"venue_city" gorm:"size:100;index"`
	StartsAt      time.Time `json:"starts_at" gorm:"not null;index"`
	EndsAt        time.Time `json:"ends_at" gorm:"not null"`
	ImageURL      string    `json:"image_url" gorm:"size:500"`
	BannerURL     string    `json:"banner_url" gorm:"size:500"`
	IsFeatured    bool      `json:"is_featured" gorm:"default:false"`
	TotalCapacity int       `json:"total_capacity" gorm:"not null;check:total_capacity > 0"`
	TicketsSold   int       `json:"tickets_sold" gorm:"default:0;check:tickets_sold >= 0"`
	Status        Status    `json:"status" gorm:"type:varchar(20);default:'draft'"`

	OrganizerID uuid.UUID `json:"organizer_id" gorm:"type:uuid;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type Response struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	Category         Category  `json:"category"`
	VenueName        string    `json:"venue_name"`
	VenueAddress     string    `json:"venue_address"`
	VenueCity        string    `json:"venue_city"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	ImageURL         string    `json:"image_url"`
	BannerURL        string    `json:"banner_url"`
	IsFeatured       bool      `json:"is_featured"`
	TotalCapacity    int       `json:"total_capacity"`
	TicketsSold      int       `json:"tickets_sold"`
	AvailableTickets int       `json:"available_tickets"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (e *Event) ToResponse() Response {
	available := e.TotalCapacity - e.TicketsSold
	if available < 0 {
		available = 0
	}

	return Response{
		ID:               e.ID.String(),
		Title:            e.Title,
		Slug:             e.Slug,
		Description:      e.Description,
		Category:         e.Category,
		VenueName:        e.VenueName,
		VenueAddress:     e.VenueAddress,
		VenueCity:        e.VenueCity,
		StartsAt:         e.StartsAt,
		EndsAt:           e.EndsAt,
		ImageURL:         e.ImageURL,
		BannerURL:        e.BannerURL,
		IsFeatured:       e.IsFeatured,
		TotalCapacity:    e.TotalCapacity,
		TicketsSold:      e.TicketsSold,
		AvailableTickets: available,
		Status:           e.Status,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

type CreateEventRequest struct {
	Title         string    `json:"title" binding:"required,min=3,max=255"`
	Description   string    `json:"description" binding:"max=5000"`
	Category      string    `json:"category" binding:"omitempty,oneof=concert sports theater conference festival workshop other"`
	VenueName     string    `json:"venue_name" binding:"required,min=2,max=255"`
	VenueAddress  string    `json:"venue_address" binding:"max=500"`
	VenueCity     string    `json:"venue_city" binding:"max=100"`
	StartsAt      time.Time `json:"starts_at" binding:"required"`
	EndsAt        time.Time `json:"ends_at" binding:"required"`
	ImageURL      string    `json:"image_url" binding:"omitempty,url"`
	BannerURL     string    `json:"banner_url" binding:"omitempty,url"`
	IsFeatured    bool      `json:"is_featured"`
	TotalCapacity int       `json:"total_capacity" binding:"required,min=1,max=500000"`
}

type UpdateEventRequest struct {
	Title         *string    `json:"title" binding:"omitempty,min=3,max=255"`
	Description   *string    `json:"description" binding:"omitempty,max=5000"`
	Category      *string    `json:"category" binding:"omitempty,oneof=concert sports theater conference festival workshop other"`
	VenueName     *string    `json:"venue_name" binding:"omitempty,min=2,max=255"`
	VenueAddress  *string    `json:"venue_address" binding:"omitempty,max=500"`
	VenueCity     *string    `json:"venue_city" binding:"omitempty,max=100"`
	StartsAt      *time.Time `json:"starts_at"`
	EndsAt        *time.Time `json:"ends_at"`
	ImageURL      *string    `json:"image_url" binding:"omitempty,url"`
	BannerURL     *string    `json:"banner_url" binding:"omitempty,url"`
	IsFeatured    *bool      `json:"is_featured"`
	TotalCapacity *int       `json:"total_capacity" binding:"omitempty,min=1,max=500000"`
	Status        *string    `json:"status" binding:"omitempty,oneof=draft published ongoing completed cancelled"`
}

type ListQuery struct {
	pagination.Params
	Category string `form:"category" binding:"omitempty,oneof=concert sports theater conference festival workshop other"`
	City     string `form:"city"`
	Status   string `form:"status" binding:"omitempty,oneof=draft published ongoing completed cancelled"`
	Featured *bool  `form:"featured"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Search   string `form:"search"`
}
