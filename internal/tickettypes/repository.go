package tickettypes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticketly/internal/shared/apperrors"
)

type Repository interface {
	Create(ctx context.Context, tt *TicketType) error
	GetByID(ctx context.Context, id uuid.UUID) (*TicketType, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID, availableOnly bool) ([]TicketType, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*TicketType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tt *TicketType) error {
	return r.db.WithContext(ctx).Create(tt).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*TicketType, error) {
	var tt TicketType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("ticket type not found")
		}
		return nil, err
	}
	return &tt, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID, availableOnly bool) ([]TicketType, error) {
	var list []TicketType

	db := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if availableOnly {
		db = db.Where("status = ?", StatusActive)
	}

	err := db.Order("price ASC").Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*TicketType, error) {
	tt, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(tt).Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TicketType{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("ticket type not found")
	}
	return nil
}
