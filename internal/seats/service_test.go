package seats

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

	require.NoError(t, db.AutoMigrate(&events.Event{}, &Seat{}))
	return db
}

func createTestEvent(t *testing.T, db *gorm.DB, capacity int) *events.Event {
	t.Helper()

	event := &events.Event{
		Title:         "Test Play",
		Slug:          "test-play-" + uuid.NewString()[:8],
		VenueName:     "Siam Playhouse",
		StartsAt:      time.Now().Add(48 * time.Hour),
		EndsAt:        time.Now().Add(51 * time.Hour),
		TotalCapacity: capacity,
		Status:        events.StatusPublished,
		OrganizerID:   uuid.New(),
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func TestBulkCreateSeatsBuildsGrid(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), events.NewRepository(db))
	ctx := context.Background()

	event := createTestEvent(t, db, 100)

	created, err := svc.BulkCreateSeats(ctx, event.ID, BulkCreateSeatsRequest{
		Section:     "ORCHESTRA",
		Rows:        []string{"A", "B"},
		SeatsPerRow: 10,
		Price:       decimal.RequireFromString("2200.00"),
	})
	require.NoError(t, err)
	assert.Len(t, created, 20)
	assert.Equal(t, "ORCHESTRA-A-1", created[0].Label)

	for _, seat := range created {
		assert.Equal(t, StatusAvailable, seat.Status)
	}
}

func TestBulkCreateSeatsCapacityGuard(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), events.NewRepository(db))
	ctx := context.Background()

	event := createTestEvent(t, db, 15)

	_, err := svc.BulkCreateSeats(ctx, event.ID, BulkCreateSeatsRequest{
		Section:     "ORCHESTRA",
		Rows:        []string{"A"},
		SeatsPerRow: 10,
		Price:       decimal.RequireFromString("2200.00"),
	})
	require.NoError(t, err)

	_, err = svc.BulkCreateSeats(ctx, event.ID, BulkCreateSeatsRequest{
		Section:     "BALCONY",
		Rows:        []string{"A"},
		SeatsPerRow: 10,
		Price:       decimal.RequireFromString("1400.00"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestBulkCreateSeatsRejectsDuplicatePositions(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db), events.NewRepository(db))
	ctx := context.Background()

	event := createTestEvent(t, db, 100)

	req := BulkCreateSeatsRequest{
		Section:     "ORCHESTRA",
		Rows:        []string{"A"},
		SeatsPerRow: 5,
		Price:       decimal.RequireFromString("2200.00"),
	}
	_, err := svc.BulkCreateSeats(ctx, event.ID, req)
	require.NoError(t, err)

	_, err = svc.BulkCreateSeats(ctx, event.ID, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestListForEventFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, events.NewRepository(db))
	ctx := context.Background()

	event := createTestEvent(t, db, 100)

	_, err := svc.BulkCreateSeats(ctx, event.ID, BulkCreateSeatsRequest{
		Section:     "ORCHESTRA",
		Rows:        []string{"A"},
		SeatsPerRow: 5,
		Price:       decimal.RequireFromString("2200.00"),
	})
	require.NoError(t, err)
	_, err = svc.BulkCreateSeats(ctx, event.ID, BulkCreateSeatsRequest{
		Section:     "BALCONY",
		Rows:        []string{"A"},
		SeatsPerRow: 5,
		Price:       decimal.RequireFromString("1400.00"),
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&Seat{}).
		Where("event_id = ? AND section = ? AND seat_number = ?", event.ID, "ORCHESTRA", 1).
		Update("status", StatusBooked).Error)

	all, err := svc.ListForEvent(ctx, event.ID, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 10)

	orchestra, err := svc.ListForEvent(ctx, event.ID, ListQuery{Section: "ORCHESTRA"})
	require.NoError(t, err)
	assert.Len(t, orchestra, 5)

	available, err := svc.ListForEvent(ctx, event.ID, ListQuery{Status: string(StatusAvailable)})
	require.NoError(t, err)
	assert.Len(t, available, 9)
}
