package passes

import (
	"context"
	"errors"
	"time"

	"osspace/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByPassID(ctx context.Context, passID string) (*EventPass, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*EventPass, error)
	MarkCheckedIn(ctx context.Context, passID string, at time.Time, by string) (bool, error)
	ListAll(ctx context.Context) ([]EventPass, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByPassID(ctx context.Context, passID string) (*EventPass, error) {
	var pass EventPass
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Where("pass_id = ?", passID).
		First(&pass).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Pass not found")
		}
		return nil, err
	}
	return &pass, nil
}

func (r *repository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*EventPass, error) {
	var pass EventPass
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&pass).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Pass not found")
		}
		return nil, err
	}
	return &pass, nil
}

// MarkCheckedIn performs the CHECKED_IN transition as one conditional
// update. The false return means another check-in won the race; callers
// re-read and report the existing state instead of writing again.
func (r *repository) MarkCheckedIn(ctx context.Context, passID string, at time.Time, by string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&EventPass{}).
		Where("pass_id = ? AND check_in_status = ?", passID, CheckInStatusNotCheckedIn).
		Updates(map[string]interface{}{
			"check_in_status": CheckInStatusCheckedIn,
			"check_in_time":   at,
			"checked_in_by":   by,
			"updated_at":      at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) ListAll(ctx context.Context) ([]EventPass, error) {
	var passes []EventPass
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Order("created_at DESC").
		Find(&passes).Error
	return passes, err
}
