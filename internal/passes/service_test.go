package passes_test

import (
	"context"
	"testing"
	"time"

	"osspace/internal/bookings"
	"osspace/internal/classes"
	"osspace/internal/events"
	"osspace/internal/passes"
	"osspace/internal/shared/apperrors"
	"osspace/internal/spaces"
	"osspace/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
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
	))
	return db
}

func seedPass(t *testing.T, db *gorm.DB, bookingStatus bookings.Status) *passes.EventPass {
	t.Helper()

	event := &events.Event{
		Title:      "Weekend Theatre",
		StartsAt:   time.Now().Add(72 * time.Hour),
		PriceMinor: 40000,
		Currency:   "INR",
		Active:     true,
	}
	require.NoError(t, db.Create(event).Error)

	booking := &bookings.Booking{
		Type:        bookings.TypeEvent,
		Status:      bookingStatus,
		Name:        "Ravi Menon",
		Phone:       "+919812345678",
		Email:       "ravi@example.com",
		AmountMinor: 40000,
		Currency:    "INR",
		EventID:     &event.ID,
	}
	require.NoError(t, db.Create(booking).Error)

	passID, err := passes.GeneratePassID()
	require.NoError(t, err)
	pass := &passes.EventPass{
		BookingID:     booking.ID,
		EventID:       event.ID,
		PassID:        passID,
		QRPath:        "passes/" + passID + ".png",
		CheckInStatus: passes.CheckInStatusNotCheckedIn,
	}
	require.NoError(t, db.Create(pass).Error)
	return pass
}

func TestCheckIn_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	service := passes.NewService(passes.NewRepository(db), logger.GetDefault())
	pass := seedPass(t, db, bookings.StatusConfirmed)
	ctx := context.Background()

	first, err := service.CheckIn(ctx, passes.CheckInRequest{PassID: pass.PassID}, "admin@osspace.in")
	require.NoError(t, err)
	assert.False(t, first.AlreadyCheckedIn)
	assert.Equal(t, passes.CheckInStatusCheckedIn, first.CheckInStatus)
	assert.Equal(t, "admin@osspace.in", first.CheckedInBy)
	assert.Equal(t, "Ravi Menon", first.GuestName)
	require.NotNil(t, first.CheckInTime)

	second, err := service.CheckIn(ctx, passes.CheckInRequest{PassID: pass.PassID}, "other@osspace.in")
	require.NoError(t, err)
	assert.True(t, second.AlreadyCheckedIn)
	assert.Equal(t, passes.CheckInStatusCheckedIn, second.CheckInStatus)

	// The original check-in is not rewritten.
	assert.Equal(t, "admin@osspace.in", second.CheckedInBy)
	require.NotNil(t, second.CheckInTime)
	assert.True(t, second.CheckInTime.Equal(*first.CheckInTime))
}

func TestCheckIn_UnknownPass(t *testing.T) {
	db := newTestDB(t)
	service := passes.NewService(passes.NewRepository(db), logger.GetDefault())

	_, err := service.CheckIn(context.Background(), passes.CheckInRequest{PassID: "OSS-EV-ZZZZZZZZ"}, "admin@osspace.in")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestCheckIn_MalformedPassID(t *testing.T) {
	db := newTestDB(t)
	service := passes.NewService(passes.NewRepository(db), logger.GetDefault())

	_, err := service.CheckIn(context.Background(), passes.CheckInRequest{PassID: "not-a-pass"}, "admin@osspace.in")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestCheckIn_BookingNotConfirmed(t *testing.T) {
	db := newTestDB(t)
	service := passes.NewService(passes.NewRepository(db), logger.GetDefault())
	pass := seedPass(t, db, bookings.StatusCancelled)

	_, err := service.CheckIn(context.Background(), passes.CheckInRequest{PassID: pass.PassID}, "admin@osspace.in")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidState))

	var stored passes.EventPass
	require.NoError(t, db.Where("pass_id = ?", pass.PassID).First(&stored).Error)
	assert.Equal(t, passes.CheckInStatusNotCheckedIn, stored.CheckInStatus)
}

func TestVerifyPass(t *testing.T) {
	db := newTestDB(t)
	service := passes.NewService(passes.NewRepository(db), logger.GetDefault())
	pass := seedPass(t, db, bookings.StatusConfirmed)

	result, err := service.VerifyPass(context.Background(), pass.PassID)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "Ravi Menon", result.GuestName)
	assert.Equal(t, passes.CheckInStatusNotCheckedIn, result.CheckInStatus)
}

func TestPassViewByBookingID(t *testing.T) {
	db := newTestDB(t)
	service := passes.NewService(passes.NewRepository(db), logger.GetDefault())
	pass := seedPass(t, db, bookings.StatusConfirmed)

	view, err := service.PassViewByBookingID(context.Background(), pass.BookingID)
	require.NoError(t, err)
	assert.Equal(t, pass.PassID, view.PassID)
	assert.Equal(t, string(passes.CheckInStatusNotCheckedIn), view.CheckInStatus)

	_, err = service.PassViewByBookingID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}
