package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ticketly/internal/events"
	"ticketly/internal/orders"
	"ticketly/internal/shared/apperrors"
	"ticketly/internal/tickets"
)

type Repository interface {
	CountOrders(ctx context.Context) (int64, error)
	CountOrdersSince(ctx context.Context, since time.Time) (int64, error)
	SumCompletedRevenue(ctx context.Context) (decimal.Decimal, error)
	SumCompletedRevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
	CountLiveTickets(ctx context.Context) (int64, error)
	RecentOrders(ctx context.Context, limit int) ([]orders.Order, error)
	GetEventStats(ctx context.Context, eventID uuid.UUID) (*EventStats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&orders.Order{}).Count(&count).Error
	return count, err
}

func (r *repository) CountOrdersSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&orders.Order{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *repository) SumCompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	return r.sumRevenue(ctx, nil)
}

func (r *repository) SumCompletedRevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	return r.sumRevenue(ctx, &since)
}

func (r *repository) sumRevenue(ctx context.Context, since *time.Time) (decimal.Decimal, error) {
	db := r.db.WithContext(ctx).Model(&orders.Order{}).
		Where("payment_status = ?", orders.PaymentStatusCompleted)
	if since != nil {
		db = db.Where("paid_at >= ?", *since)
	}

	var result struct {
		Total decimal.Decimal
	}
	err := db.Select("COALESCE(SUM(total_amount), 0) AS total").Scan(&result).Error
	return result.Total, err
}

// CountLiveTickets counts tickets that admit or have admitted someone.
func (r *repository) CountLiveTickets(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&tickets.Ticket{}).
		Where("status IN ?", []tickets.Status{tickets.StatusActive, tickets.StatusUsed}).
		Count(&count).Error
	return count, err
}

func (r *repository) RecentOrders(ctx context.Context, limit int) ([]orders.Order, error) {
	var list []orders.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *repository) GetEventStats(ctx context.Context, eventID uuid.UUID) (*EventStats, error) {
	var event events.Event
	err := r.db.WithContext(ctx).Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("event not found")
		}
		return nil, err
	}

	var revenue struct {
		Total decimal.Decimal
	}
	err = r.db.WithContext(ctx).Model(&orders.Order{}).
		Where("event_id = ? AND payment_status = ?", eventID, orders.PaymentStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	err = r.db.WithContext(ctx).Model(&tickets.Ticket{}).
		Where("event_id = ?", eventID).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64, len(counts))
	for _, sc := range counts {
		byStatus[sc.Status] = sc.Count
	}

	utilization := 0.0
	if event.TotalCapacity > 0 {
		utilization = float64(event.TicketsSold) / float64(event.TotalCapacity) * 100
	}

	return &EventStats{
		EventID:             event.ID.String(),
		Title:               event.Title,
		TotalCapacity:       event.TotalCapacity,
		TicketsSold:         event.TicketsSold,
		CapacityUtilization: utilization,
		Revenue:             revenue.Total,
		TicketsByStatus:     byStatus,
	}, nil
}
