package events

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a one-off happening at the center (a gig, a screening, a talk).
// Capacity is nullable: a nil capacity means unlimited passes. Prices are
// integer minor currency units.
type Event struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title        string    `json:"title" gorm:"not null;size:255"`
	Description  string    `json:"description" gorm:"type:text"`
	Venue        string    `json:"venue" gorm:"size:255"`
	StartsAt     time.Time `json:"starts_at" gorm:"not null;index"`
	Capacity     *int      `json:"capacity" gorm:"check:capacity IS NULL OR capacity > 0"`
	PriceMinor   int64     `json:"price_minor" gorm:"not null;check:price_minor >= 0"`
	Currency     string    `json:"currency" gorm:"type:varchar(3);default:'INR'"`
	Active       bool      `json:"active" gorm:"default:true;index"`
	ImageURL     string    `json:"image_url" gorm:"size:500"`
	PassesIssued int       `json:"passes_issued" gorm:"default:0;check:passes_issued >= 0"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

// BeforeCreate assigns the ID app-side so sqlite test databases behave the
// same as postgres.
func (e *Event) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=3,max=255"`
	Description string    `json:"description" binding:"max=2000"`
	Venue       string    `json:"venue" binding:"max=255"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	Capacity    *int      `json:"capacity" binding:"omitempty,min=1,max=100000"`
	PriceMinor  int64     `json:"priceMinor" binding:"min=0"`
	Currency    string    `json:"currency" binding:"omitempty,len=3"`
	ImageURL    string    `json:"imageUrl" binding:"omitempty,url"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=3,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Venue       *string    `json:"venue" binding:"omitempty,max=255"`
	StartsAt    *time.Time `json:"startsAt"`
	Capacity    *int       `json:"capacity" binding:"omitempty,min=1,max=100000"`
	PriceMinor  *int64     `json:"priceMinor" binding:"omitempty,min=0"`
	Active      *bool      `json:"active"`
	ImageURL    *string    `json:"imageUrl" binding:"omitempty,url"`
}

type EventResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Venue        string    `json:"venue"`
	StartsAt     time.Time `json:"startsAt"`
	Capacity     *int      `json:"capacity"`
	PriceMinor   int64     `json:"priceMinor"`
	Currency     string    `json:"currency"`
	Active       bool      `json:"active"`
	ImageURL     string    `json:"imageUrl"`
	PassesIssued int       `json:"passesIssued"`
}

func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:           e.ID.String(),
		Title:        e.Title,
		Description:  e.Description,
		Venue:        e.Venue,
		StartsAt:     e.StartsAt,
		Capacity:     e.Capacity,
		PriceMinor:   e.PriceMinor,
		Currency:     e.Currency,
		Active:       e.Active,
		ImageURL:     e.ImageURL,
		PassesIssued: e.PassesIssued,
	}
}
