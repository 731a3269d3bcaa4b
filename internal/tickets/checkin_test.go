package tickets

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/utils/pagination"
	"ticketly/pkg/logger"
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

	require.NoError(t, db.AutoMigrate(&Ticket{}))
	return db
}

func createTestTicket(t *testing.T, db *gorm.DB, userID uuid.UUID, code string, status Status) *Ticket {
	t.Helper()

	ticket := &Ticket{
		TicketCode:     code,
		OrderID:        uuid.New(),
		OrderItemID:    uuid.New(),
		UserID:         userID,
		EventID:        uuid.New(),
		TicketTypeName: "General Admission",
		Price:          decimal.RequireFromString("900.00"),
		Status:         status,
	}
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}

func TestCheckInMarksTicketUsedOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, logger.GetDefault())
	ctx := context.Background()

	createTestTicket(t, db, uuid.New(), "TKT-20260101120000-AAAA1111", StatusActive)

	resp, err := svc.CheckIn(ctx, "TKT-20260101120000-AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, StatusUsed, resp.Status)
	require.NotNil(t, resp.CheckedInAt)

	// A second scan of the same code must be rejected.
	_, err = svc.CheckIn(ctx, "TKT-20260101120000-AAAA1111")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCheckInRejectsCancelledTicket(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	createTestTicket(t, db, uuid.New(), "TKT-20260101120000-BBBB2222", StatusCancelled)

	_, err := repo.CheckIn(ctx, "TKT-20260101120000-BBBB2222")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "cancelled")
}

func TestCheckInUnknownCode(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.CheckIn(ctx, "TKT-20260101120000-UNKNOWN1")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestVerifyTicket(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, logger.GetDefault())
	ctx := context.Background()

	createTestTicket(t, db, uuid.New(), "TKT-20260101120000-CCCC3333", StatusActive)
	createTestTicket(t, db, uuid.New(), "TKT-20260101120000-DDDD4444", StatusUsed)

	resp, err := svc.VerifyTicket(ctx, "TKT-20260101120000-CCCC3333")
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	require.NotNil(t, resp.Ticket)

	resp, err = svc.VerifyTicket(ctx, "TKT-20260101120000-DDDD4444")
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, "ticket is used", resp.Reason)

	resp, err = svc.VerifyTicket(ctx, "TKT-00000000000000-MISSING0")
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, "ticket not found", resp.Reason)
}

func TestGetMyTicketHidesOtherUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, logger.GetDefault())
	ctx := context.Background()

	owner := uuid.New()
	createTestTicket(t, db, owner, "TKT-20260101120000-EEEE5555", StatusActive)

	resp, err := svc.GetMyTicket(ctx, owner, "TKT-20260101120000-EEEE5555")
	require.NoError(t, err)
	assert.Equal(t, "TKT-20260101120000-EEEE5555", resp.TicketCode)

	_, err = svc.GetMyTicket(ctx, uuid.New(), "TKT-20260101120000-EEEE5555")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListMyTickets(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, logger.GetDefault())
	ctx := context.Background()

	owner := uuid.New()
	createTestTicket(t, db, owner, "TKT-20260101120000-FFFF6666", StatusActive)
	createTestTicket(t, db, owner, "TKT-20260101120000-GGGG7777", StatusActive)
	createTestTicket(t, db, uuid.New(), "TKT-20260101120000-HHHH8888", StatusActive)

	page, err := svc.ListMyTickets(ctx, owner, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 2)
}
