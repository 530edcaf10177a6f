package classes

import (
	"context"
	"errors"
	"time"

	"osspace/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, session *ClassSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClassSession, error)
	Update(ctx context.Context, session *ClassSession) error
	List(ctx context.Context, includeInactive bool, now time.Time) ([]ClassSession, error)
	ListAll(ctx context.Context) ([]ClassSession, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, session *ClassSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*ClassSession, error) {
	var session ClassSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Class session not found")
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) Update(ctx context.Context, session *ClassSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *repository) List(ctx context.Context, includeInactive bool, now time.Time) ([]ClassSession, error) {
	var sessions []ClassSession
	query := r.db.WithContext(ctx).Model(&ClassSession{})
	if !includeInactive {
		query = query.Where("active = ?", true).Where("starts_at >= ?", now)
	}
	err := query.Order("starts_at ASC").Find(&sessions).Error
	return sessions, err
}

func (r *repository) ListAll(ctx context.Context) ([]ClassSession, error) {
	var sessions []ClassSession
	err := r.db.WithContext(ctx).Order("starts_at DESC").Find(&sessions).Error
	return sessions, err
}
