package classes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassSession is a bookable slot of a recurring class. SpotsBooked is only
// ever moved by the payment confirmation path through a conditional update,
// never read-modify-written.
type ClassSession struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	StartsAt    time.Time `json:"starts_at" gorm:"not null;index"`
	DurationMin int       `json:"duration_min" gorm:"not null;check:duration_min > 0"`
	Capacity    int       `json:"capacity" gorm:"not null;check:capacity > 0"`
	SpotsBooked int       `json:"spots_booked" gorm:"default:0;check:spots_booked >= 0"`
	PriceMinor  int64     `json:"price_minor" gorm:"not null;check:price_minor >= 0"`
	Currency    string    `json:"currency" gorm:"type:varchar(3);default:'INR'"`
	Active      bool      `json:"active" gorm:"default:true;index"`
	ImageURL    string    `json:"image_url" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ClassSession) TableName() string {
	return "class_sessions"
}

func (s *ClassSession) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SpotsLeft returns the remaining capacity, never negative.
func (s *ClassSession) SpotsLeft() int {
	left := s.Capacity - s.SpotsBooked
	if left < 0 {
		return 0
	}
	return left
}

type CreateClassRequest struct {
	Title       string    `json:"title" binding:"required,min=3,max=255"`
	Description string    `json:"description" binding:"max=2000"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	DurationMin int       `json:"durationMin" binding:"required,min=15,max=480"`
	Capacity    int       `json:"capacity" binding:"required,min=1,max=500"`
	PriceMinor  int64     `json:"priceMinor" binding:"min=0"`
	Currency    string    `json:"currency" binding:"omitempty,len=3"`
	ImageURL    string    `json:"imageUrl" binding:"omitempty,url"`
}

type UpdateClassRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=3,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	StartsAt    *time.Time `json:"startsAt"`
	DurationMin *int       `json:"durationMin" binding:"omitempty,min=15,max=480"`
	Capacity    *int       `json:"capacity" binding:"omitempty,min=1,max=500"`
	PriceMinor  *int64     `json:"priceMinor" binding:"omitempty,min=0"`
	Active      *bool      `json:"active"`
	ImageURL    *string    `json:"imageUrl" binding:"omitempty,url"`
}

type ClassResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt"`
	DurationMin int       `json:"durationMin"`
	Capacity    int       `json:"capacity"`
	SpotsBooked int       `json:"spotsBooked"`
	SpotsLeft   int       `json:"spotsLeft"`
	PriceMinor  int64     `json:"priceMinor"`
	Currency    string    `json:"currency"`
	Active      bool      `json:"active"`
	ImageURL    string    `json:"imageUrl"`
}

func (s *ClassSession) ToResponse() ClassResponse {
	return ClassResponse{
		ID:          s.ID.String(),
		Title:       s.Title,
		Description: s.Description,
		StartsAt:    s.StartsAt,
		DurationMin: s.DurationMin,
		Capacity:    s.Capacity,
		SpotsBooked: s.SpotsBooked,
		SpotsLeft:   s.SpotsLeft(),
		PriceMinor:  s.PriceMinor,
		Currency:    s.Currency,
		Active:      s.Active,
		ImageURL:    s.ImageURL,
	}
}
