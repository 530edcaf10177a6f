package main

import (
	"fmt"
	"log"
	"time"

	"osspace/internal/classes"
	"osspace/internal/events"
	"osspace/internal/shared/config"
	"osspace/internal/shared/database"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting osspace database seeder...")

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
	fmt.Println("✅ Database cleaned")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded")

	fmt.Println("\n🎉 Seeding completed! Database is ready for local testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"notification_logs",
		"event_passes",
		"payments",
		"booking_status_history",
		"bookings",
		"space_requests",
		"admin_sessions",
		"class_sessions",
		"events",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

func (s *Seeder) SeedAll() error {
	if err := s.seedClassSessions(); err != nil {
		return fmt.Errorf("failed to seed class sessions: %w", err)
	}
	if err := s.seedEvents(); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}
	return nil
}

func (s *Seeder) seedClassSessions() error {
	now := time.Now()
	nextWeekday := func(days int, hour int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.Local).
			AddDate(0, 0, days)
	}

	sessions := []classes.ClassSession{
		{
			Title:       "Hatha Yoga — Morning Batch",
			Description: "Slow-paced hatha yoga for all levels. Mats provided.",
			StartsAt:    nextWeekday(2, 7),
			DurationMin: 60,
			Capacity:    15,
			PriceMinor:  35000,
			Currency:    "INR",
			Active:      true,
		},
		{
			Title:       "Carnatic Vocals — Beginners",
			Description: "Foundations of carnatic vocal music: sarali varisai onwards.",
			StartsAt:    nextWeekday(3, 17),
			DurationMin: 90,
			Capacity:    10,
			PriceMinor:  50000,
			Currency:    "INR",
			Active:      true,
		},
		{
			Title:       "Pottery Wheel Basics",
			Description: "Hands-on wheel throwing. Clay and firing included.",
			StartsAt:    nextWeekday(5, 10),
			DurationMin: 120,
			Capacity:    8,
			PriceMinor:  80000,
			Currency:    "INR",
			Active:      true,
		},
		{
			Title:       "Bharatanatyam — Advanced",
			Description: "Varnam-level practice. Prior training required.",
			StartsAt:    nextWeekday(6, 16),
			DurationMin: 90,
			Capacity:    12,
			PriceMinor:  45000,
			Currency:    "INR",
			Active:      false,
		},
	}

	for i := range sessions {
		if err := s.db.PostgreSQL.Create(&sessions[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  Created class session: %s\n", sessions[i].Title)
	}
	return nil
}

func (s *Seeder) seedEvents() error {
	now := time.Now()
	capacity := func(n int) *int { return &n }

	items := []events.Event{
		{
			Title:       "Full Moon Concert — Hindustani Flute",
			Description: "Open-air baithak under the full moon. Seating on floor cushions.",
			Venue:       "Courtyard",
			StartsAt:    now.AddDate(0, 0, 10).Truncate(time.Hour),
			Capacity:    capacity(120),
			PriceMinor:  25000,
			Currency:    "INR",
			Active:      true,
		},
		{
			Title:       "Weekend Theatre: Tughlaq",
			Description: "Girish Karnad's Tughlaq staged by the resident repertory.",
			Venue:       "Main Hall",
			StartsAt:    now.AddDate(0, 0, 14).Truncate(time.Hour),
			Capacity:    capacity(80),
			PriceMinor:  40000,
			Currency:    "INR",
			Active:      true,
		},
		{
			Title:       "Community Potluck & Open Mic",
			Description: "Bring a dish, bring a song. Free entry, all welcome.",
			Venue:       "Terrace",
			StartsAt:    now.AddDate(0, 0, 7).Truncate(time.Hour),
			Capacity:    nil,
			PriceMinor:  0,
			Currency:    "INR",
			Active:      true,
		},
	}

	for i := range items {
		if err := s.db.PostgreSQL.Create(&items[i]).Error; err != nil {
			return err
		}
		fmt.Printf("  Created event: %s\n", items[i].Title)
	}
	return nil
}
