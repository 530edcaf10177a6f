package adminauth

import (
	"context"
	"errors"

	"osspace/internal/shared/apperrors"

	"gorm.io/gorm"
)

type Repository interface {
	ReplaceSessionsForEmail(ctx context.Context, session *AdminSession) error
	GetByToken(ctx context.Context, token string) (*AdminSession, error)
	DeleteByToken(ctx context.Context, token string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ReplaceSessionsForEmail deletes every session for the email and inserts
// the new one in the same transaction, so an admin never holds two live
// tokens.
func (r *repository) ReplaceSessionsForEmail(ctx context.Context, session *AdminSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", session.Email).
			Delete(&AdminSession{}).Error
		if err != nil {
			return err
		}
		return tx.Create(session).Error
	})
}

func (r *repository) GetByToken(ctx context.Context, token string) (*AdminSession, error) {
	var session AdminSession
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthenticated("Invalid session")
		}
		return nil, err
	}
	return &session, nil
}

func (r *repository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&AdminSession{}).Error
}
