package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"ticketly/internal/events"
	"ticketly/internal/seats"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/tickettypes"
	"ticketly/internal/users"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Ticketly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"tickets",
		"order_items",
		"orders",
		"seats",
		"ticket_types",
		"events",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	eventIDs, err := s.SeedEvents(userIDs["admin"])
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	if err := s.SeedTicketTypes(eventIDs); err != nil {
		return fmt.Errorf("failed to seed ticket types: %w", err)
	}

	if err := s.SeedSeats(eventIDs["theater"]); err != nil {
		return fmt.Errorf("failed to seed seats: %w", err)
	}

	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates 1 admin and 2 customers
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// All seeded accounts share the password "qwerty"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key      string
		username string
		fullName string
		email    string
		phone    string
		role     users.Role
	}{
		{"admin", "admin", "Platform Admin", "admin@ticketly.dev", "+66800000001", users.RoleAdmin},
		{"customer1", "somchai", "Somchai Jaidee", "somchai@example.com", "+66800000002", users.RoleCustomer},
		{"customer2", "malee", "Malee Srisuk", "malee@example.com", "+66800000003", users.RoleCustomer},
	}

	for _, userData := range usersData {
		username := userData.username
		email := userData.email
		user := users.User{
			ID:            uuid.New(),
			Username:      &username,
			Email:         &email,
			PasswordHash:  string(hashedPassword),
			FullName:      userData.fullName,
			Phone:         userData.phone,
			Role:          userData.role,
			EmailVerified: true,
			Status:        users.StatusActive,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", userData.email, user.Role)
	}

	return userIDs, nil
}

// SeedEvents creates a mix of published events
func (s *Seeder) SeedEvents(adminID uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  🎫 Seeding events...")

	eventIDs := make(map[string]uuid.UUID)

	eventsData := []struct {
		key           string
		title         string
		description   string
		category      events.Category
		venueName     string
		venueCity     string
		startsIn      time.Duration
		duration      time.Duration
		totalCapacity int
		featured      bool
	}{
		{"concert", "Bangkok Summer Sounds 2026", "Open-air concert featuring regional headliners.", events.CategoryConcert, "Impact Arena", "Bangkok", 30 * 24 * time.Hour, 5 * time.Hour, 500, true},
		{"conference", "Gopher Summit Asia", "Two-day conference on backend engineering.", events.CategoryConference, "QSNCC", "Bangkok", 45 * 24 * time.Hour, 48 * time.Hour, 300, false},
		{"theater", "The Glass Lotus", "Award-winning stage play, limited run.", events.CategoryTheater, "Siam Playhouse", "Bangkok", 14 * 24 * time.Hour, 3 * time.Hour, 120, true},
	}

	for _, eventData := range eventsData {
		startsAt := time.Now().Add(eventData.startsIn)
		event := events.Event{
			ID:            uuid.New(),
			Title:         eventData.title,
			Slug:          slug.Make(eventData.title),
			Description:   eventData.description,
			Category:      eventData.category,
			VenueName:     eventData.venueName,
			VenueCity:     eventData.venueCity,
			StartsAt:      startsAt,
			EndsAt:        startsAt.Add(eventData.duration),
			IsFeatured:    eventData.featured,
			TotalCapacity: eventData.totalCapacity,
			Status:        events.StatusPublished,
			OrganizerID:   adminID,
		}

		if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
			return nil, fmt.Errorf("failed to create event %s: %w", event.Title, err)
		}

		eventIDs[eventData.key] = event.ID
		fmt.Printf("    ✅ Created event: %s\n", event.Title)
	}

	return eventIDs, nil
}

// SeedTicketTypes creates general admission tiers for each event
func (s *Seeder) SeedTicketTypes(eventIDs map[string]uuid.UUID) error {
	fmt.Println("  🎟️ Seeding ticket types...")

	typesData := []struct {
		eventKey    string
		name        string
		description string
		price       string
		quantity    int
		maxPurchase int
	}{
		{"concert", "General Admission", "Standing area access", "1500.00", 400, 6},
		{"concert", "VIP", "Front zone with lounge access", "4500.00", 100, 4},
		{"conference", "Standard Pass", "Both conference days", "2900.00", 250, 5},
		{"conference", "Workshop Pass", "Conference plus hands-on workshops", "5400.00", 50, 2},
	}

	for _, typeData := range typesData {
		price, err := decimal.NewFromString(typeData.price)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", typeData.price, err)
		}

		ticketType := tickettypes.TicketType{
			ID:                uuid.New(),
			EventID:           eventIDs[typeData.eventKey],
			Name:              typeData.name,
			Description:       typeData.description,
			Price:             price,
			QuantityAvailable: typeData.quantity,
			MinPurchase:       1,
			MaxPurchase:       typeData.maxPurchase,
			Status:            tickettypes.StatusActive,
		}

		if err := s.db.PostgreSQL.Create(&ticketType).Error; err != nil {
			return fmt.Errorf("failed to create ticket type %s: %w", typeData.name, err)
		}
		fmt.Printf("    ✅ Created ticket type: %s / %s\n", typeData.eventKey, typeData.name)
	}

	return nil
}

// SeedSeats builds a small reserved-seating map for the theater event
func (s *Seeder) SeedSeats(eventID uuid.UUID) error {
	fmt.Println("  💺 Seeding seats...")

	sections := []struct {
		name        string
		rows        []string
		seatsPerRow int
		price       string
	}{
		{"ORCHESTRA", []string{"A", "B", "C", "D"}, 20, "2200.00"},
		{"BALCONY", []string{"A", "B"}, 20, "1400.00"},
	}

	var batch []seats.Seat
	for _, section := range sections {
		price, err := decimal.NewFromString(section.price)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", section.price, err)
		}

		for _, row := range section.rows {
			for number := 1; number <= section.seatsPerRow; number++ {
				batch = append(batch, seats.Seat{
					ID:         uuid.New(),
					EventID:    eventID,
					Section:    section.name,
					RowLabel:   row,
					SeatNumber: number,
					Price:      price,
					Status:     seats.StatusAvailable,
				})
			}
		}
	}

	if err := s.db.PostgreSQL.CreateInBatches(batch, 200).Error; err != nil {
		return fmt.Errorf("failed to create seats: %w", err)
	}

	fmt.Printf("    ✅ Created %d seats for theater event\n", len(batch))
	return nil
}
