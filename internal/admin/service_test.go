package admin

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ticketly/internal/events"
	"ticketly/internal/orders"
	"ticketly/internal/seats"
	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/utils/pagination"
	"ticketly/internal/tickets"
	"ticketly/internal/tickettypes"
	"ticketly/internal/users"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&tickettypes.TicketType{},
		&seats.Seat{},
		&orders.Order{},
		&orders.OrderItem{},
		&tickets.Ticket{},
	))

	svc := NewService(
		NewRepository(db),
		orders.NewRepository(db),
		users.NewRepository(db),
		events.NewRepository(db),
	)
	return svc, db
}

func seedBookedEvent(t *testing.T, db *gorm.DB) (*events.Event, *orders.Order) {
	t.Helper()
	ctx := context.Background()

	event := &events.Event{
		Title:         "Stats Concert",
		Slug:          "stats-concert-" + uuid.NewString()[:8],
		VenueName:     "Impact Arena",
		StartsAt:      time.Now().Add(24 * time.Hour),
		EndsAt:        time.Now().Add(28 * time.Hour),
		TotalCapacity: 100,
		Status:        events.StatusPublished,
		OrganizerID:   uuid.New(),
	}
	require.NoError(t, db.Create(event).Error)

	tt := &tickettypes.TicketType{
		EventID:           event.ID,
		Name:              "General Admission",
		Price:             decimal.RequireFromString("1000.00"),
		QuantityAvailable: 50,
		MinPurchase:       1,
		MaxPurchase:       10,
		Status:            tickettypes.StatusActive,
	}
	require.NoError(t, db.Create(tt).Error)

	repo := orders.NewRepository(db)
	order := &orders.Order{
		UserID:        uuid.New(),
		EventID:       event.ID,
		CustomerName:  "Somchai Jaidee",
		CustomerEmail: "somchai@example.com",
		PaymentMethod: orders.PaymentMethodCreditCard,
	}
	ttID := tt.ID
	_, err := repo.CreateOrderWithInventory(ctx, order, []orders.BookingLine{
		{TicketTypeID: &ttID, Quantity: 2},
	})
	require.NoError(t, err)

	_, err = repo.ConfirmPayment(ctx, order.ID, "txn-stats-1")
	require.NoError(t, err)

	return event, order
}

func TestGetDashboardStats(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	event, _ := seedBookedEvent(t, db)

	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.OrdersToday)
	assert.Equal(t, int64(2), stats.TicketsSold)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("2000.00")))
	assert.True(t, stats.RevenueThisMonth.Equal(decimal.RequireFromString("2000.00")))
	require.Len(t, stats.UpcomingEvents, 1)
	assert.Equal(t, event.ID.String(), stats.UpcomingEvents[0].ID)
	require.Len(t, stats.RecentOrders, 1)
}

func TestGetEventStats(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	event, _ := seedBookedEvent(t, db)

	stats, err := svc.GetEventStats(ctx, event.ID)
	require.NoError(t, err)

	assert.Equal(t, event.ID.String(), stats.EventID)
	assert.Equal(t, 100, stats.TotalCapacity)
	assert.Equal(t, 2, stats.TicketsSold)
	assert.InDelta(t, 2.0, stats.CapacityUtilization, 0.001)
	assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("2000.00")))
	assert.Equal(t, int64(2), stats.TicketsByStatus["active"])

	_, err = svc.GetEventStats(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, order := seedBookedEvent(t, db)

	resp, err := svc.UpdateOrderStatus(ctx, order.ID, UpdateOrderStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, orders.OrderStatusCancelled, resp.Status)

	_, err = svc.UpdateOrderStatus(ctx, uuid.New(), UpdateOrderStatusRequest{Status: "confirmed"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListAllOrdersAndUsers(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedBookedEvent(t, db)
	seedBookedEvent(t, db)

	username := "somchai"
	email := "somchai@example.com"
	require.NoError(t, db.Create(&users.User{
		Username:     &username,
		Email:        &email,
		PasswordHash: "x",
		FullName:     "Somchai Jaidee",
		Role:         users.RoleCustomer,
		Status:       users.StatusActive,
	}).Error)

	page, err := svc.ListAllOrders(ctx, orders.ListQuery{Params: pagination.Params{Page: 1, Size: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	confirmed, err := svc.ListAllOrders(ctx, orders.ListQuery{
		Params: pagination.Params{Page: 1, Size: 10},
		Status: string(orders.OrderStatusConfirmed),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), confirmed.Total)

	userPage, err := svc.ListUsers(ctx, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), userPage.Total)
}
