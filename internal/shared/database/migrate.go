package database

import (
	"ticketly/internal/events"
	"ticketly/internal/orders"
	"ticketly/internal/seats"
	"ticketly/internal/tickets"
	"ticketly/internal/tickettypes"
	"ticketly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&events.Event{},
		&tickettypes.TicketType{},
		&seats.Seat{},
		&orders.Order{},
		&orders.OrderItem{},
		&tickets.Ticket{},
	)
}

// MigrateIndexes adds indexes the hot query paths rely on.
func MigrateIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders (user_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_event_id ON orders (event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_user_id ON tickets (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_order_id ON tickets (order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ticket_types_event_id ON ticket_types (event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_seats_event_status ON seats (event_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_events_status_starts_at ON events (status, starts_at)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
