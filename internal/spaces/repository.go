package spaces

import (
	"context"
	"errors"

	"osspace/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SpaceRequest, error)
	Update(ctx context.Context, request *SpaceRequest) error
	ListAll(ctx context.Context) ([]SpaceRequest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*SpaceRequest, error) {
	var request SpaceRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Space request not found")
		}
		return nil, err
	}
	return &request, nil
}

func (r *repository) Update(ctx context.Context, request *SpaceRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *repository) ListAll(ctx context.Context) ([]SpaceRequest, error) {
	var requests []SpaceRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requests).Error
	return requests, err
}
