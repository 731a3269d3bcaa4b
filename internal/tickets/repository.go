package tickets

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/utils/pagination"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Ticket, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]Ticket, int64, error)
	CheckIn(ctx context.Context, code string) (*Ticket, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).Where("ticket_code = ?", code).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("ticket not found")
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]Ticket, int64, error) {
	var list []Ticket
	var total int64

	base := r.db.WithContext(ctx).Model(&Ticket{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&list).Error

	return list, total, err
}

// CheckIn flips an active ticket to used. The conditional update makes a
// second scan of the same code fail instead of double admitting.
func (r *repository) CheckIn(ctx context.Context, code string) (*Ticket, error) {
	now := time.Now()

	res := r.db.WithContext(ctx).Model(&Ticket{}).
		Where("ticket_code = ? AND status = ?", code, StatusActive).
		Updates(map[string]interface{}{
			"status":        StatusUsed,
			"checked_in_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		ticket, err := r.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		return nil, apperrors.Conflict("ticket is %s and cannot be checked in", ticket.Status)
	}

	return r.GetByCode(ctx, code)
}
