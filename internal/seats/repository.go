package seats

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticketly/internal/shared/apperrors"
)

type Repository interface {
	CreateBatch(ctx context.Context, seats []Seat) error
	GetByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID, query ListQuery) ([]Seat, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBatch(ctx context.Context, seats []Seat) error {
	if err := r.db.WithContext(ctx).CreateInBatches(seats, 200).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("one or more seats already exist at this position")
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("seat not found")
		}
		return nil, err
	}
	return &seat, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID uuid.UUID, query ListQuery) ([]Seat, error) {
	var list []Seat

	db := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if query.Section != "" {
		db = db.Where("section = ?", query.Section)
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	err := db.Order("section ASC, row_label ASC, seat_number ASC").Find(&list).Error
	return list, err
}

func (r *repository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Seat{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
