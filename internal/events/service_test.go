package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/utils/pagination"
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

	require.NoError(t, db.AutoMigrate(&Event{}))

	// Event deletion sweeps these sibling tables with raw SQL.
	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS ticket_types (id TEXT PRIMARY KEY, event_id TEXT)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS seats (id TEXT PRIMARY KEY, event_id TEXT)`).Error)

	return db
}

func validCreateRequest(title string) CreateEventRequest {
	starts := time.Now().Add(72 * time.Hour)
	return CreateEventRequest{
		Title:         title,
		Description:   "An evening of live music.",
		Category:      "concert",
		VenueName:     "Impact Arena",
		VenueCity:     "Bangkok",
		StartsAt:      starts,
		EndsAt:        starts.Add(4 * time.Hour),
		TotalCapacity: 500,
	}
}

func TestCreateEventGeneratesSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	resp, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest("Bangkok Summer Sounds 2026"))
	require.NoError(t, err)
	assert.Equal(t, "bangkok-summer-sounds-2026", resp.Slug)
	assert.Equal(t, StatusDraft, resp.Status)
	assert.Equal(t, 500, resp.AvailableTickets)
}

func TestCreateEventSlugCollisionGetsSuffix(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()
	organizerID := uuid.New()

	first, err := svc.CreateEvent(ctx, organizerID, validCreateRequest("Gopher Summit"))
	require.NoError(t, err)
	second, err := svc.CreateEvent(ctx, organizerID, validCreateRequest("Gopher Summit"))
	require.NoError(t, err)
	third, err := svc.CreateEvent(ctx, organizerID, validCreateRequest("Gopher Summit"))
	require.NoError(t, err)

	assert.Equal(t, "gopher-summit", first.Slug)
	assert.Equal(t, "gopher-summit-2", second.Slug)
	assert.Equal(t, "gopher-summit-3", third.Slug)
}

func TestCreateEventValidatesDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	req := validCreateRequest("Broken Time Event")
	req.EndsAt = req.StartsAt.Add(-time.Hour)
	_, err := svc.CreateEvent(ctx, uuid.New(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	req = validCreateRequest("Past Event")
	req.StartsAt = time.Now().Add(-24 * time.Hour)
	req.EndsAt = req.StartsAt.Add(2 * time.Hour)
	_, err = svc.CreateEvent(ctx, uuid.New(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetEventBySlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest("The Glass Lotus"))
	require.NoError(t, err)

	found, err := svc.GetEventBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetEventBySlug(ctx, "does-not-exist")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListEventsFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo)
	ctx := context.Background()
	organizerID := uuid.New()

	concert, err := svc.CreateEvent(ctx, organizerID, validCreateRequest("City Concert"))
	require.NoError(t, err)

	confReq := validCreateRequest("Dev Conference")
	confReq.Category = "conference"
	confReq.VenueCity = "Chiang Mai"
	conf, err := svc.CreateEvent(ctx, organizerID, confReq)
	require.NoError(t, err)

	// Only published events are listable by status filter.
	require.NoError(t, db.Model(&Event{}).Where("id IN ?", []string{concert.ID, conf.ID}).
		Update("status", StatusPublished).Error)

	page, err := svc.ListEvents(ctx, ListQuery{
		Params:   pagination.Params{Page: 1, Size: 10},
		Category: "conference",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, conf.ID, page.Items[0].ID)

	page, err = svc.ListEvents(ctx, ListQuery{
		Params: pagination.Params{Page: 1, Size: 10},
		City:   "chiang mai",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, conf.ID, page.Items[0].ID)

	page, err = svc.ListEvents(ctx, ListQuery{
		Params: pagination.Params{Page: 1, Size: 10},
		Search: "Concert",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, concert.ID, page.Items[0].ID)
}

func TestUpdateEventCapacityGuard(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest("Capacity Event"))
	require.NoError(t, err)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&Event{}).Where("id = ?", id).Update("tickets_sold", 100).Error)

	smaller := 50
	_, err = svc.UpdateEvent(ctx, id, UpdateEventRequest{TotalCapacity: &smaller})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err), "capacity cannot drop below tickets already sold")

	larger := 600
	resp, err := svc.UpdateEvent(ctx, id, UpdateEventRequest{TotalCapacity: &larger})
	require.NoError(t, err)
	assert.Equal(t, 600, resp.TotalCapacity)
}

func TestDeleteEventWithSalesRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, uuid.New(), validCreateRequest("Doomed Event"))
	require.NoError(t, err)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&Event{}).Where("id = ?", id).Update("tickets_sold", 1).Error)
	err = svc.DeleteEvent(ctx, id)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	require.NoError(t, db.Model(&Event{}).Where("id = ?", id).Update("tickets_sold", 0).Error)
	require.NoError(t, svc.DeleteEvent(ctx, id))

	_, err = svc.GetEventByID(ctx, id)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetUpcomingEvents(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()
	organizerID := uuid.New()

	soon, err := svc.CreateEvent(ctx, organizerID, validCreateRequest("Soon Event"))
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, organizerID, validCreateRequest("Draft Event"))
	require.NoError(t, err)

	// Only the published one qualifies as upcoming.
	require.NoError(t, db.Model(&Event{}).Where("id = ?", soon.ID).Update("status", StatusPublished).Error)

	upcoming, err := svc.GetUpcomingEvents(ctx, 5)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, soon.ID, upcoming[0].ID)
}
