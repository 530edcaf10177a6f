package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"osspace/internal/bookings"
	"osspace/internal/classes"
	"osspace/internal/events"
	"osspace/internal/notifications"
	"osspace/internal/passes"
	"osspace/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfirmResult is everything a confirmation transaction produced, handed
// back in one piece so the caller can report and dispatch after commit.
type ConfirmResult struct {
	Payment      *Payment
	Booking      *bookings.Booking
	Pass         *passes.EventPass
	Notification *notifications.NotificationLog
}

type Repository interface {
	CreateOrder(ctx context.Context, bookingID uuid.UUID) (*Payment, *bookings.Booking, error)
	ConfirmPayment(ctx context.Context, bookingID uuid.UUID) (*ConfirmResult, error)
	GetLatestByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error)
}

type repository struct {
	db         *gorm.DB
	appBaseURL string
	uploadPath string
}

func NewRepository(db *gorm.DB, appBaseURL, uploadPath string) Repository {
	return &repository{db: db, appBaseURL: appBaseURL, uploadPath: uploadPath}
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateOrder inserts a CREATED payment for a booking that is waiting on
// payment. The booking row is locked so a concurrent confirmation cannot
// slip between the status check and the insert.
func (r *repository) CreateOrder(ctx context.Context, bookingID uuid.UUID) (*Payment, *bookings.Booking, error) {
	var payment *Payment
	var booking bookings.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).Where("id = ?", bookingID).First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Booking not found")
			}
			return fmt.Errorf("failed to fetch booking: %w", err)
		}

		if booking.Status != bookings.StatusPendingPayment {
			return apperrors.InvalidState("Booking is not awaiting payment")
		}

		orderID, err := NewOrderID()
		if err != nil {
			return err
		}

		payment = &Payment{
			BookingID:       booking.ID,
			Provider:        "RAZORPAY",
			ProviderOrderID: orderID,
			Status:          StatusCreated,
			AmountMinor:     booking.AmountMinor,
			Currency:        booking.Currency,
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, &booking, nil
}

// ConfirmPayment stands in for the provider webhook. One transaction
// covers the payment update, the booking transition with its audit row,
// and the type-specific fan-out; any failure rolls the whole batch back.
func (r *repository) ConfirmPayment(ctx context.Context, bookingID uuid.UUID) (*ConfirmResult, error) {
	result := &ConfirmResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking bookings.Booking
		err := lockForUpdate(tx).Where("id = ?", bookingID).First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Booking not found")
			}
			return fmt.Errorf("failed to fetch booking: %w", err)
		}

		if booking.Status != bookings.StatusPendingPayment {
			return apperrors.InvalidState("Booking is not awaiting payment")
		}

		var payment Payment
		err = lockForUpdate(tx).
			Where("booking_id = ?", booking.ID).
			Order("created_at DESC").
			First(&payment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.InvalidState("No payment order exists for this booking")
			}
			return fmt.Errorf("failed to fetch payment: %w", err)
		}
		if payment.Status != StatusCreated {
			return apperrors.InvalidState("Payment is not awaiting confirmation")
		}

		providerPaymentID, err := NewPaymentID()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		err = tx.Model(&Payment{}).
			Where("id = ?", payment.ID).
			Updates(map[string]interface{}{
				"status":              StatusPaid,
				"provider_payment_id": providerPaymentID,
				"paid_at":             now,
				"updated_at":          now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		payment.Status = StatusPaid
		payment.ProviderPaymentID = providerPaymentID
		payment.PaidAt = &now

		err = tx.Model(&bookings.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]interface{}{
				"status":     bookings.StatusConfirmed,
				"updated_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		history := &bookings.StatusHistory{
			BookingID:  booking.ID,
			FromStatus: booking.Status,
			ToStatus:   bookings.StatusConfirmed,
			ChangedBy:  bookings.ChangedBySystem,
			Reason:     "Payment confirmed",
		}
		if err := tx.Create(history).Error; err != nil {
			return fmt.Errorf("failed to append status history: %w", err)
		}
		booking.Status = bookings.StatusConfirmed

		switch booking.Type {
		case bookings.TypeEvent:
			if err := r.issueEventPass(tx, &booking, result); err != nil {
				return err
			}
		case bookings.TypeClass:
			if err := confirmClassSpot(tx, &booking, result); err != nil {
				return err
			}
		}

		result.Payment = &payment
		result.Booking = &booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// issueEventPass creates the QR-backed pass for a confirmed EVENT booking
// and counts it against the event. A capacity-bounded event that is out
// of passes rolls the confirmation back.
func (r *repository) issueEventPass(tx *gorm.DB, booking *bookings.Booking, result *ConfirmResult) error {
	if booking.EventID == nil {
		return apperrors.InvalidState("Booking has no event")
	}

	// Unbounded events (NULL capacity) always count up; bounded ones stop
	// issuing at capacity. The slot is claimed before any file is written
	// so a sold-out rollback leaves nothing on disk.
	issued := tx.Model(&events.Event{}).
		Where("id = ? AND (capacity IS NULL OR passes_issued < capacity)", booking.EventID).
		Update("passes_issued", gorm.Expr("passes_issued + 1"))
	if issued.Error != nil {
		return fmt.Errorf("failed to count issued pass: %w", issued.Error)
	}
	if issued.RowsAffected == 0 {
		return apperrors.InvalidState("Event has no passes left")
	}

	passID, err := passes.GeneratePassID()
	if err != nil {
		return err
	}

	qrPath, err := passes.RenderQR(r.appBaseURL, r.uploadPath, passID)
	if err != nil {
		return fmt.Errorf("failed to render pass QR: %w", err)
	}

	pass := &passes.EventPass{
		BookingID:     booking.ID,
		EventID:       *booking.EventID,
		PassID:        passID,
		QRPath:        qrPath,
		CheckInStatus: passes.CheckInStatusNotCheckedIn,
	}
	if err := tx.Create(pass).Error; err != nil {
		return fmt.Errorf("failed to create event pass: %w", err)
	}

	notification := &notifications.NotificationLog{
		BookingID: &booking.ID,
		Channel:   notifications.ChannelWhatsApp,
		Template:  "event_pass_issued",
		Recipient: booking.Phone,
		Status:    notifications.StatusPending,
	}
	if err := tx.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to log notification: %w", err)
	}

	result.Pass = pass
	result.Notification = notification
	return nil
}

// confirmClassSpot claims the booked spot with one conditional update;
// zero rows means the session filled while payment was pending and the
// confirmation must not go through.
func confirmClassSpot(tx *gorm.DB, booking *bookings.Booking, result *ConfirmResult) error {
	if booking.ClassSessionID == nil {
		return apperrors.InvalidState("Booking has no class session")
	}

	claimed := tx.Model(&classes.ClassSession{}).
		Where("id = ? AND spots_booked < capacity", booking.ClassSessionID).
		Update("spots_booked", gorm.Expr("spots_booked + 1"))
	if claimed.Error != nil {
		return fmt.Errorf("failed to claim class spot: %w", claimed.Error)
	}
	if claimed.RowsAffected == 0 {
		return apperrors.InvalidState("Class session is fully booked")
	}

	notification := &notifications.NotificationLog{
		BookingID: &booking.ID,
		Channel:   notifications.ChannelWhatsApp,
		Template:  "class_booking_confirmed",
		Recipient: booking.Phone,
		Status:    notifications.StatusPending,
	}
	if err := tx.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to log notification: %w", err)
	}

	result.Notification = notification
	return nil
}

func (r *repository) GetLatestByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Payment not found")
		}
		return nil, err
	}
	return &payment, nil
}
