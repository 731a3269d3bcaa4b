package orders

import (
	"context"
	"sync"
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
	"ticketly/internal/seats"
	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/utils/pagination"
	"ticketly/internal/tickets"
	"ticketly/internal/tickettypes"
	"ticketly/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Single connection so concurrent transactions serialize instead of
	// hitting separate empty in-memory databases.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&events.Event{},
		&tickettypes.TicketType{},
		&seats.Seat{},
		&Order{},
		&OrderItem{},
		&tickets.Ticket{},
	))

	return db
}

func createTestEvent(t *testing.T, db *gorm.DB, capacity int) *events.Event {
	t.Helper()

	event := &events.Event{
		Title:         "Test Concert",
		Slug:          "test-concert-" + uuid.NewString()[:8],
		Category:      events.CategoryConcert,
		VenueName:     "Test Arena",
		VenueCity:     "Bangkok",
		StartsAt:      time.Now().Add(48 * time.Hour),
		EndsAt:        time.Now().Add(52 * time.Hour),
		TotalCapacity: capacity,
		Status:        events.StatusPublished,
		OrganizerID:   uuid.New(),
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func createTestTicketType(t *testing.T, db *gorm.DB, eventID uuid.UUID, quantity int, price string) *tickettypes.TicketType {
	t.Helper()

	tt := &tickettypes.TicketType{
		EventID:           eventID,
		Name:              "General Admission",
		Price:             decimal.RequireFromString(price),
		QuantityAvailable: quantity,
		MinPurchase:       1,
		MaxPurchase:       10,
		Status:            tickettypes.StatusActive,
	}
	require.NoError(t, db.Create(tt).Error)
	return tt
}

func createTestSeat(t *testing.T, db *gorm.DB, eventID uuid.UUID, row string, number int, price string) *seats.Seat {
	t.Helper()

	seat := &seats.Seat{
		EventID:    eventID,
		Section:    "ORCHESTRA",
		RowLabel:   row,
		SeatNumber: number,
		Price:      decimal.RequireFromString(price),
		Status:     seats.StatusAvailable,
	}
	require.NoError(t, db.Create(seat).Error)
	return seat
}

func ticketTypeLine(id uuid.UUID, quantity int) BookingLine {
	return BookingLine{TicketTypeID: &id, Quantity: quantity}
}

func seatLine(id uuid.UUID) BookingLine {
	return BookingLine{SeatID: &id, Quantity: 1}
}

func newOrderFor(userID, eventID uuid.UUID) *Order {
	return &Order{
		UserID:        userID,
		EventID:       eventID,
		CustomerName:  "Somchai Jaidee",
		CustomerEmail: "somchai@example.com",
		PaymentMethod: PaymentMethodCreditCard,
	}
}

func TestCreateOrderIssuesTickets(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	tt := createTestTicketType(t, db, event.ID, 50, "1500.00")
	seat := createTestSeat(t, db, event.ID, "A", 1, "2200.00")

	userID := uuid.New()
	order := newOrderFor(userID, event.ID)

	issued, err := repo.CreateOrderWithInventory(ctx, order, []BookingLine{
		ticketTypeLine(tt.ID, 2),
		seatLine(seat.ID),
	})
	require.NoError(t, err)

	assert.Len(t, issued, 3)
	assert.Regexp(t, `^ORD-\d{14}-[A-Z0-9]{6}$`, order.OrderNumber)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("5200.00")))

	for _, ticket := range issued {
		assert.Regexp(t, `^TKT-\d{14}-[A-Z0-9]{8}$`, ticket.TicketCode)
		assert.Equal(t, tickets.StatusActive, ticket.Status)
		assert.Equal(t, userID, ticket.UserID)
	}

	var storedTT tickettypes.TicketType
	require.NoError(t, db.First(&storedTT, "id = ?", tt.ID).Error)
	assert.Equal(t, 2, storedTT.QuantitySold)
	assert.Equal(t, tickettypes.StatusActive, storedTT.Status)

	var storedSeat seats.Seat
	require.NoError(t, db.First(&storedSeat, "id = ?", seat.ID).Error)
	assert.Equal(t, seats.StatusBooked, storedSeat.Status)
	require.NotNil(t, storedSeat.OrderID)
	assert.Equal(t, order.ID, *storedSeat.OrderID)

	var storedEvent events.Event
	require.NoError(t, db.First(&storedEvent, "id = ?", event.ID).Error)
	assert.Equal(t, 3, storedEvent.TicketsSold)
}

func TestBookingFlipsTicketTypeToSoldOutAtBoundary(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	tt := createTestTicketType(t, db, event.ID, 2, "900.00")

	_, err := repo.CreateOrderWithInventory(ctx, newOrderFor(uuid.New(), event.ID), []BookingLine{ticketTypeLine(tt.ID, 2)})
	require.NoError(t, err)

	var storedTT tickettypes.TicketType
	require.NoError(t, db.First(&storedTT, "id = ?", tt.ID).Error)
	assert.Equal(t, tickettypes.StatusSoldOut, storedTT.Status)
	assert.Equal(t, 0, storedTT.Remaining())

	_, err = repo.CreateOrderWithInventory(ctx, newOrderFor(uuid.New(), event.ID), []BookingLine{ticketTypeLine(tt.ID, 1)})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestConcurrentBookingsOfLastUnit(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	tt := createTestTicketType(t, db, event.ID, 1, "900.00")

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.CreateOrderWithInventory(ctx, newOrderFor(uuid.New(), event.ID), []BookingLine{ticketTypeLine(tt.ID, 1)})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	conflicts := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else if apperrors.IsConflict(err) {
			conflicts++
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one booking must win the last unit")
	assert.Equal(t, 1, conflicts, "the losing booking must get a conflict")

	var storedTT tickettypes.TicketType
	require.NoError(t, db.First(&storedTT, "id = ?", tt.ID).Error)
	assert.Equal(t, 1, storedTT.QuantitySold)
}

func TestConcurrentBookingsOfSameSeat(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	seat := createTestSeat(t, db, event.ID, "A", 1, "2200.00")

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.CreateOrderWithInventory(ctx, newOrderFor(uuid.New(), event.ID), []BookingLine{seatLine(seat.ID)})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	conflicts := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else if apperrors.IsConflict(err) {
			conflicts++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicts)
}

func TestCancelOrderRestoresInventory(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	tt := createTestTicketType(t, db, event.ID, 2, "900.00")
	seat := createTestSeat(t, db, event.ID, "A", 1, "2200.00")

	order := newOrderFor(uuid.New(), event.ID)
	issued, err := repo.CreateOrderWithInventory(ctx, order, []BookingLine{
		ticketTypeLine(tt.ID, 2),
		seatLine(seat.ID),
	})
	require.NoError(t, err)
	require.Len(t, issued, 3)

	require.NoError(t, repo.CancelOrder(ctx, order.ID))

	var storedTT tickettypes.TicketType
	require.NoError(t, db.First(&storedTT, "id = ?", tt.ID).Error)
	assert.Equal(t, 0, storedTT.QuantitySold)
	assert.Equal(t, tickettypes.StatusActive, storedTT.Status, "sold out tier reopens once stock returns")

	var storedSeat seats.Seat
	require.NoError(t, db.First(&storedSeat, "id = ?", seat.ID).Error)
	assert.Equal(t, seats.StatusAvailable, storedSeat.Status)
	assert.Nil(t, storedSeat.OrderID)
	assert.Nil(t, storedSeat.BookedAt)

	var storedEvent events.Event
	require.NoError(t, db.First(&storedEvent, "id = ?", event.ID).Error)
	assert.Equal(t, 0, storedEvent.TicketsSold)

	var storedTickets []tickets.Ticket
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&storedTickets).Error)
	require.Len(t, storedTickets, 3)
	for _, ticket := range storedTickets {
		assert.Equal(t, tickets.StatusCancelled, ticket.Status)
	}

	err = repo.CancelOrder(ctx, order.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err), "double cancel must be rejected")
}

func TestBookingRejectedForUnpublishedEvent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	require.NoError(t, db.Model(&events.Event{}).Where("id = ?", event.ID).Update("status", events.StatusDraft).Error)
	tt := createTestTicketType(t, db, event.ID, 10, "900.00")

	_, err := repo.CreateOrderWithInventory(ctx, newOrderFor(uuid.New(), event.ID), []BookingLine{ticketTypeLine(tt.ID, 1)})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestBookingEnforcesPurchaseLimits(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	tt := createTestTicketType(t, db, event.ID, 50, "900.00")
	require.NoError(t, db.Model(&tickettypes.TicketType{}).Where("id = ?", tt.ID).
		Updates(map[string]interface{}{"min_purchase": 2, "max_purchase": 4}).Error)

	_, err := repo.CreateOrderWithInventory(ctx, newOrderFor(uuid.New(), event.ID), []BookingLine{ticketTypeLine(tt.ID, 1)})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = repo.CreateOrderWithInventory(ctx, newOrderFor(uuid.New(), event.ID), []BookingLine{ticketTypeLine(tt.ID, 5)})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestBookingRespectsSaleWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	tt := createTestTicketType(t, db, event.ID, 50, "900.00")
	ended := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&tickettypes.TicketType{}).Where("id = ?", tt.ID).Update("sale_ends_at", ended).Error)

	_, err := repo.CreateOrderWithInventory(ctx, newOrderFor(uuid.New(), event.ID), []BookingLine{ticketTypeLine(tt.ID, 1)})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestEventCapacityGuard(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	// Ticket type allocation exceeds what the event can still hold.
	event := createTestEvent(t, db, 3)
	tt := createTestTicketType(t, db, event.ID, 3, "900.00")

	_, err := repo.CreateOrderWithInventory(ctx, newOrderFor(uuid.New(), event.ID), []BookingLine{ticketTypeLine(tt.ID, 2)})
	require.NoError(t, err)

	_, err = repo.CreateOrderWithInventory(ctx, newOrderFor(uuid.New(), event.ID), []BookingLine{ticketTypeLine(tt.ID, 2)})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestConfirmPayment(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	tt := createTestTicketType(t, db, event.ID, 10, "900.00")

	order := newOrderFor(uuid.New(), event.ID)
	_, err := repo.CreateOrderWithInventory(ctx, order, []BookingLine{ticketTypeLine(tt.ID, 1)})
	require.NoError(t, err)

	paid, err := repo.ConfirmPayment(ctx, order.ID, "txn-12345")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusConfirmed, paid.Status)
	assert.Equal(t, PaymentStatusCompleted, paid.PaymentStatus)
	assert.Equal(t, "txn-12345", paid.TransactionID)
	require.NotNil(t, paid.PaidAt)

	_, err = repo.ConfirmPayment(ctx, order.ID, "txn-12345")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err), "double payment must be rejected")
}

func TestServiceOwnershipAndPaidCancelGuard(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, nil, logger.GetDefault())
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	tt := createTestTicketType(t, db, event.ID, 10, "900.00")

	userID := uuid.New()
	resp, err := svc.CreateOrder(ctx, userID, CreateOrderRequest{
		EventID:       event.ID.String(),
		CustomerName:  "Somchai Jaidee",
		CustomerEmail: "somchai@example.com",
		PaymentMethod: string(PaymentMethodCreditCard),
		Items: []OrderLineRequest{
			{Kind: "ticket_type", TicketTypeID: tt.ID.String(), Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Tickets, 2)

	orderID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	// Another user cannot see or cancel the order.
	stranger := uuid.New()
	_, err = svc.GetMyOrder(ctx, stranger, orderID)
	assert.True(t, apperrors.IsNotFound(err))
	err = svc.CancelMyOrder(ctx, stranger, orderID)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.ConfirmMyPayment(ctx, userID, orderID, ConfirmPaymentRequest{TransactionID: "txn-777"})
	require.NoError(t, err)

	err = svc.CancelMyOrder(ctx, userID, orderID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err), "paid orders must not be cancellable")
}

func TestListMyOrdersPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	svc := NewService(repo, nil, logger.GetDefault())
	ctx := context.Background()

	event := createTestEvent(t, db, 100)
	tt := createTestTicketType(t, db, event.ID, 50, "900.00")

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		_, err := repo.CreateOrderWithInventory(ctx, newOrderFor(userID, event.ID), []BookingLine{ticketTypeLine(tt.ID, 1)})
		require.NoError(t, err)
	}
	// An order of someone else must not leak into the listing.
	_, err := repo.CreateOrderWithInventory(ctx, newOrderFor(uuid.New(), event.ID), []BookingLine{ticketTypeLine(tt.ID, 1)})
	require.NoError(t, err)

	page, err := svc.ListMyOrders(ctx, userID, ListQuery{Params: pagination.Params{Page: 1, Size: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Pages)
}

func TestBuildLinesRejectsMixedLine(t *testing.T) {
	_, err := buildLines([]OrderLineRequest{
		{Kind: "ticket_type", TicketTypeID: uuid.NewString(), SeatID: uuid.NewString()},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = buildLines([]OrderLineRequest{
		{Kind: "seat", SeatID: uuid.NewString(), Quantity: 3},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = buildLines([]OrderLineRequest{
		{Kind: "voucher"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
