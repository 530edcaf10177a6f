package events

import (
	"context"
	"errors"
	"time"

	"osspace/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	Update(ctx context.Context, event *Event) error
	List(ctx context.Context, includeInactive bool, now time.Time) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Event not found")
		}
		return nil, err
	}
	return &event, nil
}

func (r *repository) Update(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// List returns events for the public listing: active and upcoming unless
// includeInactive is set.
func (r *repository) List(ctx context.Context, includeInactive bool, now time.Time) ([]Event, error) {
	var events []Event
	query := r.db.WithContext(ctx).Model(&Event{})
	if !includeInactive {
		query = query.Where("active = ?", true).Where("starts_at >= ?", now)
	}
	err := query.Order("starts_at ASC").Find(&events).Error
	return events, err
}

func (r *repository) ListAll(ctx context.Context) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).Order("starts_at DESC").Find(&events).Error
	return events, err
}
