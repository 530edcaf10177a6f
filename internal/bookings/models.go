package bookings

import (
	"time"

	"osspace/internal/classes"
	"osspace/internal/events"
	"osspace/internal/spaces"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is the central record of a purchase or rental attempt. Rows are
// never deleted; the lifecycle engine is the only writer of Status.
type Booking struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Type        Type      `json:"type" gorm:"type:varchar(10);not null;index"`
	Status      Status    `json:"status" gorm:"type:varchar(20);not null;index"`
	Name        string    `json:"name" gorm:"not null;size:120"`
	Phone       string    `json:"phone" gorm:"not null;size:20;index"`
	Email       string    `json:"email" gorm:"not null;size:255"`
	AmountMinor int64     `json:"amount_minor" gorm:"not null;check:amount_minor >= 0"`
	Currency    string    `json:"currency" gorm:"type:varchar(3);default:'INR'"`

	ClassSessionID *uuid.UUID `json:"class_session_id" gorm:"type:uuid;index"`
	EventID        *uuid.UUID `json:"event_id" gorm:"type:uuid;index"`
	SpaceRequestID *uuid.UUID `json:"space_request_id" gorm:"type:uuid;index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	ClassSession *classes.ClassSession `json:"class_session,omitempty" gorm:"foreignKey:ClassSessionID"`
	Event        *events.Event         `json:"event,omitempty" gorm:"foreignKey:EventID"`
	SpaceRequest *spaces.SpaceRequest  `json:"space_request,omitempty" gorm:"foreignKey:SpaceRequestID"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// StatusHistory is the append-only audit trail of booking transitions.
// Rows are never updated or deleted.
type StatusHistory struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID  uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`
	FromStatus Status    `json:"from_status" gorm:"type:varchar(20);not null"`
	ToStatus   Status    `json:"to_status" gorm:"type:varchar(20);not null"`
	ChangedBy  string    `json:"changed_by" gorm:"not null;size:255"`
	Reason     string    `json:"reason" gorm:"size:500"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (StatusHistory) TableName() string {
	return "booking_status_history"
}

func (h *StatusHistory) BeforeCreate(*gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// CreateBookingRequest is the public booking input. Exactly one of
// classSessionId / eventId / preferredSlots is meaningful per type.
type CreateBookingRequest struct {
	Type           string   `json:"type" binding:"required,oneof=CLASS EVENT SPACE"`
	Name           string   `json:"name" binding:"required,min=2,max=120"`
	Phone          string   `json:"phone" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	ClassSessionID string   `json:"classSessionId" binding:"omitempty,uuid"`
	EventID        string   `json:"eventId" binding:"omitempty,uuid"`
	PreferredSlots []string `json:"preferredSlots" binding:"omitempty,max=10,dive,min=1,max=200"`
	Purpose        string   `json:"purpose" binding:"omitempty,max=500"`
	Notes          string   `json:"notes" binding:"omitempty,max=2000"`
}

// CreateBookingResponse tells the client whether a payment step follows.
type CreateBookingResponse struct {
	BookingID       string `json:"bookingId"`
	Type            Type   `json:"type"`
	AmountMinor     int64  `json:"amount"`
	Currency        string `json:"currency"`
	RequiresPayment bool   `json:"requiresPayment"`
}

// PaymentView and PassView are the slices of other packages' records shown
// in the booking detail, fetched through injected readers.
type PaymentView struct {
	ID                string     `json:"id"`
	Provider          string     `json:"provider"`
	ProviderOrderID   string     `json:"providerOrderId"`
	ProviderPaymentID string     `json:"providerPaymentId,omitempty"`
	Status            string     `json:"status"`
	AmountMinor       int64      `json:"amountMinor"`
	Currency          string     `json:"currency"`
	CreatedAt         time.Time  `json:"createdAt"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
}

type PassView struct {
	PassID        string     `json:"passId"`
	QRPath        string     `json:"qrPath"`
	CheckInStatus string     `json:"checkInStatus"`
	CheckInTime   *time.Time `json:"checkInTime,omitempty"`
}

// BookingDetail is the aggregate returned by GET /bookings/:id.
type BookingDetail struct {
	ID           string                `json:"id"`
	Type         Type                  `json:"type"`
	Status       Status                `json:"status"`
	Name         string                `json:"name"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email"`
	AmountMinor  int64                 `json:"amountMinor"`
	Currency     string                `json:"currency"`
	CreatedAt    time.Time             `json:"createdAt"`
	ClassSession *classes.ClassResponse       `json:"classSession,omitempty"`
	Event        *events.EventResponse        `json:"event,omitempty"`
	SpaceRequest *spaces.SpaceRequestResponse `json:"spaceRequest,omitempty"`
	Payment      *PaymentView                 `json:"payment,omitempty"`
	Pass         *PassView                    `json:"pass,omitempty"`
}

// BookingListQuery filters the admin booking list.
type BookingListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=PENDING_PAYMENT CONFIRMED CANCELLED REQUESTED"`
	Type   string `form:"type" binding:"omitempty,oneof=CLASS EVENT SPACE"`
}
