package adminauth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminSession maps an opaque bearer token to an admin email. One active
// session per email: login deletes any prior rows for that address.
type AdminSession struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Token     string    `json:"-" gorm:"size:64;not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"size:255;not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}

func (s *AdminSession) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *AdminSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SessionResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}
