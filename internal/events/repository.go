package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticketly/internal/shared/apperrors"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, query ListQuery) ([]Event, int64, error)
	GetUpcoming(ctx context.Context, limit int) ([]Event, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("event slug %q already exists", event.Slug)
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("event not found")
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("event not found")
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(event).Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes the event together with its ticket types and seats. Orders
// and issued tickets are kept as history.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM ticket_types WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM seats WHERE event_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&Event{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("event not found")
		}
		return nil
	})
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Event, int64, error) {
	var list []Event
	var total int64

	db := r.db.WithContext(ctx).Model(&Event{})

	if query.Category != "" {
		db = db.Where("category = ?", query.Category)
	}
	if query.City != "" {
		db = db.Where("LOWER(venue_city) = ?", strings.ToLower(query.City))
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Featured != nil {
		db = db.Where("is_featured = ?", *query.Featured)
	}
	if query.Search != "" {
		term := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}
	if query.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("starts_at >= ?", from)
		}
	}
	if query.DateTo != "" {
		if to, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			// include the whole end day
			db = db.Where("starts_at < ?", to.Add(24*time.Hour))
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("starts_at ASC").
		Offset(query.Offset()).
		Limit(query.Size).
		Find(&list).Error

	return list, total, err
}

func (r *repository) GetUpcoming(ctx context.Context, limit int) ([]Event, error) {
	var list []Event
	err := r.db.WithContext(ctx).
		Where("starts_at > ? AND status = ?", time.Now(), StatusPublished).
		Order("starts_at ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Event{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
