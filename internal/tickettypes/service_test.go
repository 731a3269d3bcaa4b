package tickettypes

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
	"ticketly/internal/shared/apperrors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&events.Event{}, &TicketType{}))
	return db
}

func createTestEvent(t *testing.T, db *gorm.DB, capacity int) *events.Event {
	t.Helper()

	event := &events.Event{
		Title:         "Test Event",
		Slug:          "test-event-" + uuid.NewString()[:8],
		VenueName:     "Test Venue",
		StartsAt:      time.Now().Add(48 * time.Hour),
		EndsAt:        time.Now().Add(52 * time.Hour),
		TotalCapacity: capacity,
		Status:        events.StatusPublished,
		OrganizerID:   uuid.New(),
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func validRequest(quantity int) CreateTicketTypeRequest {
	return CreateTicketTypeRequest{
		Name:              "General Admission",
		Price:             decimal.RequireFromString("900.00"),
		QuantityAvailable: quantity,
	}
}

func TestCreateTicketTypeDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), events.NewRepository(db))
	ctx := context.Background()

	event := createTestEvent(t, db, 100)

	resp, err := svc.CreateTicketType(ctx, event.ID, validRequest(50))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.MinPurchase)
	assert.Equal(t, 10, resp.MaxPurchase)
	assert.Equal(t, StatusActive, resp.Status)
	assert.Equal(t, 50, resp.Remaining)
}

func TestCreateTicketTypeAllocationCap(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), events.NewRepository(db))
	ctx := context.Background()

	event := createTestEvent(t, db, 100)

	_, err := svc.CreateTicketType(ctx, event.ID, validRequest(80))
	require.NoError(t, err)

	// The second tier would push total allocation past event capacity.
	req := validRequest(30)
	req.Name = "VIP"
	_, err = svc.CreateTicketType(ctx, event.ID, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateTicketTypeValidations(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), events.NewRepository(db))
	ctx := context.Background()

	event := createTestEvent(t, db, 100)

	req := validRequest(10)
	req.MinPurchase = 5
	req.MaxPurchase = 2
	_, err := svc.CreateTicketType(ctx, event.ID, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	req = validRequest(10)
	req.Price = decimal.RequireFromString("-1.00")
	_, err = svc.CreateTicketType(ctx, event.ID, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	starts := time.Now().Add(2 * time.Hour)
	ends := starts.Add(-time.Hour)
	req = validRequest(10)
	req.SaleStartsAt = &starts
	req.SaleEndsAt = &ends
	_, err = svc.CreateTicketType(ctx, event.ID, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.CreateTicketType(ctx, uuid.New(), validRequest(10))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateTicketTypeQuantityGuard(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), events.NewRepository(db))
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	resp, err := svc.CreateTicketType(ctx, event.ID, validRequest(50))
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, db.Model(&TicketType{}).Where("id = ?", id).Update("quantity_sold", 20).Error)

	below := 10
	_, err = svc.UpdateTicketType(ctx, id, UpdateTicketTypeRequest{QuantityAvailable: &below})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err), "allocation cannot drop below units already sold")

	above := 60
	updated, err := svc.UpdateTicketType(ctx, id, UpdateTicketTypeRequest{QuantityAvailable: &above})
	require.NoError(t, err)
	assert.Equal(t, 60, updated.QuantityAvailable)
}

func TestUpdateReopensSoldOutTier(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), events.NewRepository(db))
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	resp, err := svc.CreateTicketType(ctx, event.ID, validRequest(20))
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, db.Model(&TicketType{}).Where("id = ?", id).
		Updates(map[string]interface{}{"quantity_sold": 20, "status": StatusSoldOut}).Error)

	larger := 30
	updated, err := svc.UpdateTicketType(ctx, id, UpdateTicketTypeRequest{QuantityAvailable: &larger})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, updated.Status, "raising the allocation reopens sales")
}

func TestDeleteTicketTypeWithSalesRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), events.NewRepository(db))
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	resp, err := svc.CreateTicketType(ctx, event.ID, validRequest(20))
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, db.Model(&TicketType{}).Where("id = ?", id).Update("quantity_sold", 1).Error)
	err = svc.DeleteTicketType(ctx, id)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	require.NoError(t, db.Model(&TicketType{}).Where("id = ?", id).Update("quantity_sold", 0).Error)
	require.NoError(t, svc.DeleteTicketType(ctx, id))
}

func TestListForEventFiltersInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), events.NewRepository(db))
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	_, err := svc.CreateTicketType(ctx, event.ID, validRequest(20))
	require.NoError(t, err)

	hidden := validRequest(10)
	hidden.Name = "Unreleased"
	resp, err := svc.CreateTicketType(ctx, event.ID, hidden)
	require.NoError(t, err)
	require.NoError(t, db.Model(&TicketType{}).Where("id = ?", resp.ID).Update("status", StatusInactive).Error)

	visible, err := svc.ListForEvent(ctx, event.ID, false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := svc.ListForEvent(ctx, event.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
