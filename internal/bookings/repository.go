package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"osspace/internal/classes"
	"osspace/internal/events"
	"osspace/internal/shared/apperrors"
	"osspace/internal/spaces"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Lifecycle creation. Each call commits the Booking and its first
	// StatusHistory row atomically; the class path also holds the
	// session row lock across the capacity check.
	CreateClassBooking(ctx context.Context, booking *Booking) error
	CreateEventBooking(ctx context.Context, booking *Booking) error
	CreateSpaceBooking(ctx context.Context, request *spaces.SpaceRequest, booking *Booking) error

	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingBySpaceRequestID(ctx context.Context, spaceRequestID uuid.UUID) (*Booking, error)
	UpdateStatusWithHistory(ctx context.Context, id uuid.UUID, to Status, changedBy, reason string) error

	// Admin operations
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// Audit trail
	GetHistory(ctx context.Context, bookingID uuid.UUID) ([]StatusHistory, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// lockForUpdate adds a row lock on dialects that support it. The sqlite
// test database serializes writers anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateClassBooking validates the class session under a row lock, prices
// the booking from the locked row, and inserts the Booking plus its first
// StatusHistory entry in one transaction. No row is written when any
// precondition fails.
func (r *repository) CreateClassBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session classes.ClassSession
		err := lockForUpdate(tx).
			Where("id = ?", booking.ClassSessionID).
			First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Class session not found")
			}
			return fmt.Errorf("failed to lock class session: %w", err)
		}

		if !session.Active {
			return apperrors.InvalidState("Class session is not available")
		}

		// Confirmed bookings are counted in spots_booked; bookings still
		// awaiting payment hold a spot too, or two guests could both pay
		// for the last one.
		var pendingHolds int64
		err = tx.Model(&Booking{}).
			Where("class_session_id = ? AND status = ?", session.ID, StatusPendingPayment).
			Count(&pendingHolds).Error
		if err != nil {
			return fmt.Errorf("failed to count pending bookings: %w", err)
		}
		if session.Capacity-session.SpotsBooked-int(pendingHolds) <= 0 {
			return apperrors.InvalidState("Class session is fully booked")
		}

		booking.Status = StatusPendingPayment
		booking.AmountMinor = session.PriceMinor
		booking.Currency = session.Currency

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return appendHistory(tx, booking.ID, StatusNone, booking.Status, ChangedBySystem, "Booking created")
	})
}

// CreateEventBooking prices and inserts an EVENT booking. Events are not
// checked against capacity here: passes are gated at issuance instead.
func (r *repository) CreateEventBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event events.Event
		err := tx.Where("id = ?", booking.EventID).First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Event not found")
			}
			return fmt.Errorf("failed to fetch event: %w", err)
		}

		if !event.Active {
			return apperrors.InvalidState("Event is not available")
		}

		booking.Status = StatusPendingPayment
		booking.AmountMinor = event.PriceMinor
		booking.Currency = event.Currency

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return appendHistory(tx, booking.ID, StatusNone, booking.Status, ChangedBySystem, "Booking created")
	})
}

// CreateSpaceBooking inserts the SpaceRequest first, then the Booking
// referencing it, in one transaction. Space bookings are free and start
// out CONFIRMED; the rental itself is negotiated on the SpaceRequest.
func (r *repository) CreateSpaceBooking(ctx context.Context, request *spaces.SpaceRequest, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		request.Status = spaces.StatusRequested
		if err := tx.Create(request).Error; err != nil {
			return fmt.Errorf("failed to create space request: %w", err)
		}

		booking.Status = StatusConfirmed
		booking.AmountMinor = 0
		booking.SpaceRequestID = &request.ID

		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return appendHistory(tx, booking.ID, StatusNone, booking.Status, ChangedBySystem, "Space booking created")
	})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("ClassSession").
		Preload("Event").
		Preload("SpaceRequest").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Booking not found")
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingBySpaceRequestID(ctx context.Context, spaceRequestID uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Where("space_request_id = ?", spaceRequestID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Booking not found")
		}
		return nil, err
	}
	return &booking, nil
}

// UpdateStatusWithHistory transitions a booking and appends the audit row
// in the same transaction.
func (r *repository) UpdateStatusWithHistory(ctx context.Context, id uuid.UUID, to Status, changedBy, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		err := lockForUpdate(tx).Where("id = ?", id).First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Booking not found")
			}
			return err
		}

		if booking.Status == to {
			return nil
		}

		from := booking.Status
		err = tx.Model(&Booking{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     to,
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		return appendHistory(tx, id, from, to, changedBy, reason)
	})
}

func (r *repository) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	baseQuery := r.db.WithContext(ctx).Model(&Booking{})
	if query.Status != "" {
		baseQuery = baseQuery.Where("status = ?", query.Status)
	}
	if query.Type != "" {
		baseQuery = baseQuery.Where("type = ?", query.Type)
	}

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("ClassSession").
		Preload("Event").
		Preload("SpaceRequest").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) GetHistory(ctx context.Context, bookingID uuid.UUID) ([]StatusHistory, error) {
	var history []StatusHistory
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&history).Error
	return history, err
}

// appendHistory writes one audit row inside the caller's transaction.
func appendHistory(tx *gorm.DB, bookingID uuid.UUID, from, to Status, changedBy, reason string) error {
	entry := &StatusHistory{
		BookingID:  bookingID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  changedBy,
		Reason:     reason,
	}
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append status history: %w", err)
	}
	return nil
}

// CalculateTotalPages is a pagination helper for list responses.
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
