package database

import (
	"osspace/internal/adminauth"
	"osspace/internal/bookings"
	"osspace/internal/classes"
	"osspace/internal/events"
	"osspace/internal/notifications"
	"osspace/internal/passes"
	"osspace/internal/payments"
	"osspace/internal/spaces"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&events.Event{},
		&classes.ClassSession{},
		&spaces.SpaceRequest{},
		&bookings.Booking{},
		&bookings.StatusHistory{},
		&payments.Payment{},
		&passes.EventPass{},
		&adminauth.AdminSession{},
		&notifications.NotificationLog{},
	)
}
