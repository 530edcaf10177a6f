package payments_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"osspace/internal/bookings"
	"osspace/internal/classes"
	"osspace/internal/events"
	"osspace/internal/notifications"
	"osspace/internal/passes"
	"osspace/internal/payments"
	"osspace/internal/shared/apperrors"
	"osspace/internal/spaces"
	"osspace/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&classes.ClassSession{},
		&events.Event{},
		&spaces.SpaceRequest{},
		&bookings.Booking{},
		&bookings.StatusHistory{},
		&passes.EventPass{},
		&payments.Payment{},
		&notifications.NotificationLog{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB) (payments.Service, string) {
	t.Helper()
	uploadDir := t.TempDir()
	repo := payments.NewRepository(db, "https://osspace.example.org", uploadDir)
	notificationService := notifications.NewService(db, nil, logger.GetDefault())
	return payments.NewService(repo, notificationService, "rzp_test_abc123", logger.GetDefault()), uploadDir
}

func seedEventBooking(t *testing.T, db *gorm.DB) *bookings.Booking {
	t.Helper()
	service := bookings.NewService(bookings.NewRepository(db))

	event := &events.Event{
		Title:      "Full Moon Concert",
		StartsAt:   time.Now().Add(10 * 24 * time.Hour),
		PriceMinor: 25000,
		Currency:   "INR",
		Active:     true,
	}
	require.NoError(t, db.Create(event).Error)

	resp, err := service.CreateBooking(context.Background(), bookings.CreateBookingRequest{
		Type:    "EVENT",
		Name:    "Ravi Menon",
		Phone:   "9812345678",
		Email:   "ravi@example.com",
		EventID: event.ID.String(),
	})
	require.NoError(t, err)

	var booking bookings.Booking
	require.NoError(t, db.Where("id = ?", resp.BookingID).First(&booking).Error)
	return &booking
}

func seedClassBooking(t *testing.T, db *gorm.DB, capacity, spotsBooked int) *bookings.Booking {
	t.Helper()

	session := &classes.ClassSession{
		Title:       "Pottery Wheel Basics",
		StartsAt:    time.Now().Add(48 * time.Hour),
		DurationMin: 120,
		Capacity:    capacity,
		SpotsBooked: spotsBooked,
		PriceMinor:  80000,
		Currency:    "INR",
		Active:      true,
	}
	require.NoError(t, db.Create(session).Error)

	booking := &bookings.Booking{
		Type:           bookings.TypeClass,
		Status:         bookings.StatusPendingPayment,
		Name:           "Asha Pillai",
		Phone:          "+919876543210",
		Email:          "asha@example.com",
		AmountMinor:    session.PriceMinor,
		Currency:       "INR",
		ClassSessionID: &session.ID,
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func TestCreateOrder(t *testing.T) {
	db := newTestDB(t)
	service, _ := newTestService(t, db)
	booking := seedEventBooking(t, db)

	order, err := service.CreateOrder(context.Background(), payments.CreateOrderRequest{
		BookingID: booking.ID.String(),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "order_"))
	assert.Equal(t, "rzp_test_abc123", order.KeyID)
	assert.Equal(t, int64(25000), order.AmountMinor)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "Ravi Menon", order.CustomerName)
	assert.Equal(t, "+919812345678", order.CustomerPhone)

	var stored payments.Payment
	require.NoError(t, db.Where("booking_id = ?", booking.ID).First(&stored).Error)
	assert.Equal(t, payments.StatusCreated, stored.Status)
	assert.Equal(t, "RAZORPAY", stored.Provider)
}

func TestCreateOrder_RequiresPendingPayment(t *testing.T) {
	db := newTestDB(t)
	service, _ := newTestService(t, db)
	booking := seedEventBooking(t, db)
	require.NoError(t, db.Model(booking).Update("status", bookings.StatusConfirmed).Error)

	_, err := service.CreateOrder(context.Background(), payments.CreateOrderRequest{
		BookingID: booking.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidState))
}

func TestConfirmPayment_EventFanOut(t *testing.T) {
	db := newTestDB(t)
	service, uploadDir := newTestService(t, db)
	booking := seedEventBooking(t, db)
	ctx := context.Background()

	_, err := service.CreateOrder(ctx, payments.CreateOrderRequest{BookingID: booking.ID.String()})
	require.NoError(t, err)

	result, err := service.ConfirmPayment(ctx, payments.ConfirmPaymentRequest{BookingID: booking.ID.String()})
	require.NoError(t, err)

	assert.Equal(t, bookings.StatusConfirmed, result.BookingStatus)
	assert.True(t, strings.HasPrefix(result.ProviderPaymentID, "pay_"))
	assert.True(t, passes.VerifyPassFormat(result.PassID))

	// The QR PNG is on disk and referenced by the pass row.
	var pass passes.EventPass
	require.NoError(t, db.Where("booking_id = ?", booking.ID).First(&pass).Error)
	assert.Equal(t, pass.PassID, result.PassID)
	_, err = os.Stat(filepath.Join(uploadDir, pass.QRPath))
	require.NoError(t, err)

	var event events.Event
	require.NoError(t, db.Where("id = ?", booking.EventID).First(&event).Error)
	assert.Equal(t, 1, event.PassesIssued)

	var history []bookings.StatusHistory
	require.NoError(t, db.Where("booking_id = ?", booking.ID).Find(&history).Error)
	assert.Len(t, history, 2)

	var logs []notifications.NotificationLog
	require.NoError(t, db.Where("booking_id = ?", booking.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, notifications.ChannelWhatsApp, logs[0].Channel)
	assert.Equal(t, "+919812345678", logs[0].Recipient)
}

func TestConfirmPayment_SecondConfirmFails(t *testing.T) {
	db := newTestDB(t)
	service, _ := newTestService(t, db)
	booking := seedEventBooking(t, db)
	ctx := context.Background()

	_, err := service.CreateOrder(ctx, payments.CreateOrderRequest{BookingID: booking.ID.String()})
	require.NoError(t, err)
	_, err = service.ConfirmPayment(ctx, payments.ConfirmPaymentRequest{BookingID: booking.ID.String()})
	require.NoError(t, err)

	_, err = service.ConfirmPayment(ctx, payments.ConfirmPaymentRequest{BookingID: booking.ID.String()})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidState))
}

func TestConfirmPayment_WithoutOrder(t *testing.T) {
	db := newTestDB(t)
	service, _ := newTestService(t, db)
	booking := seedEventBooking(t, db)

	_, err := service.ConfirmPayment(context.Background(), payments.ConfirmPaymentRequest{
		BookingID: booking.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidState))
}

func TestConfirmPayment_ClassSpotClaimed(t *testing.T) {
	db := newTestDB(t)
	service, _ := newTestService(t, db)
	booking := seedClassBooking(t, db, 8, 0)
	ctx := context.Background()

	_, err := service.CreateOrder(ctx, payments.CreateOrderRequest{BookingID: booking.ID.String()})
	require.NoError(t, err)

	result, err := service.ConfirmPayment(ctx, payments.ConfirmPaymentRequest{BookingID: booking.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusConfirmed, result.BookingStatus)
	assert.Empty(t, result.PassID)

	var session classes.ClassSession
	require.NoError(t, db.Where("id = ?", booking.ClassSessionID).First(&session).Error)
	assert.Equal(t, 1, session.SpotsBooked)

	var logs []notifications.NotificationLog
	require.NoError(t, db.Where("booking_id = ?", booking.ID).Find(&logs).Error)
	assert.Len(t, logs, 1)
}

func TestConfirmPayment_EventSoldOutRollsBack(t *testing.T) {
	db := newTestDB(t)
	service, uploadDir := newTestService(t, db)
	ctx := context.Background()

	capacity := 1
	event := &events.Event{
		Title:        "Chamber Recital",
		StartsAt:     time.Now().Add(5 * 24 * time.Hour),
		Capacity:     &capacity,
		PassesIssued: 1,
		PriceMinor:   40000,
		Currency:     "INR",
		Active:       true,
	}
	require.NoError(t, db.Create(event).Error)

	booking := &bookings.Booking{
		Type:        bookings.TypeEvent,
		Status:      bookings.StatusPendingPayment,
		Name:        "Kabir Das",
		Phone:       "+919812345678",
		Email:       "kabir@example.com",
		AmountMinor: event.PriceMinor,
		Currency:    "INR",
		EventID:     &event.ID,
	}
	require.NoError(t, db.Create(booking).Error)

	_, err := service.CreateOrder(ctx, payments.CreateOrderRequest{BookingID: booking.ID.String()})
	require.NoError(t, err)

	_, err = service.ConfirmPayment(ctx, payments.ConfirmPaymentRequest{BookingID: booking.ID.String()})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidState))

	var stored bookings.Booking
	require.NoError(t, db.Where("id = ?", booking.ID).First(&stored).Error)
	assert.Equal(t, bookings.StatusPendingPayment, stored.Status)

	var passCount int64
	require.NoError(t, db.Model(&passes.EventPass{}).Count(&passCount).Error)
	assert.Zero(t, passCount)

	var after events.Event
	require.NoError(t, db.Where("id = ?", event.ID).First(&after).Error)
	assert.Equal(t, 1, after.PassesIssued)

	// The sold-out rollback happens before any QR is rendered, so the
	// upload directory stays empty.
	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConfirmPayment_ClassFullRollsBack(t *testing.T) {
	db := newTestDB(t)
	service, _ := newTestService(t, db)
	booking := seedClassBooking(t, db, 1, 1)
	ctx := context.Background()

	_, err := service.CreateOrder(ctx, payments.CreateOrderRequest{BookingID: booking.ID.String()})
	require.NoError(t, err)

	_, err = service.ConfirmPayment(ctx, payments.ConfirmPaymentRequest{BookingID: booking.ID.String()})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidState))

	// Nothing from the failed confirmation survives.
	var stored bookings.Booking
	require.NoError(t, db.Where("id = ?", booking.ID).First(&stored).Error)
	assert.Equal(t, bookings.StatusPendingPayment, stored.Status)

	var payment payments.Payment
	require.NoError(t, db.Where("booking_id = ?", booking.ID).First(&payment).Error)
	assert.Equal(t, payments.StatusCreated, payment.Status)

	var logCount int64
	require.NoError(t, db.Model(&notifications.NotificationLog{}).Count(&logCount).Error)
	assert.Zero(t, logCount)
}
