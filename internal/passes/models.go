package passes

import (
	"time"

	"osspace/internal/bookings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckInStatus is the redemption state of an event pass. It moves from
// NOT_CHECKED_IN to CHECKED_IN exactly once; repeat check-ins are answered
// from the existing row.
type CheckInStatus string

const (
	CheckInStatusNotCheckedIn CheckInStatus = "NOT_CHECKED_IN"
	CheckInStatusCheckedIn    CheckInStatus = "CHECKED_IN"
)

// EventPass is the QR-backed credential issued when an EVENT booking is
// confirmed.
type EventPass struct {
	ID            uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID     uuid.UUID     `json:"booking_id" gorm:"type:uuid;not null;uniqueIndex"`
	EventID       uuid.UUID     `json:"event_id" gorm:"type:uuid;not null;index"`
	PassID        string        `json:"pass_id" gorm:"not null;uniqueIndex;size:20"`
	QRPath        string        `json:"qr_path" gorm:"size:500"`
	CheckInStatus CheckInStatus `json:"check_in_status" gorm:"type:varchar(20);default:'NOT_CHECKED_IN'"`
	CheckInTime   *time.Time    `json:"check_in_time"`
	CheckedInBy   string        `json:"checked_in_by" gorm:"size:255"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	Booking *bookings.Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

func (EventPass) TableName() string {
	return "event_passes"
}

func (p *EventPass) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type CheckInRequest struct {
	PassID string `json:"passId" binding:"required"`
}

type CheckInResponse struct {
	PassID           string        `json:"passId"`
	BookingID        string        `json:"bookingId"`
	CheckInStatus    CheckInStatus `json:"checkInStatus"`
	CheckInTime      *time.Time    `json:"checkInTime,omitempty"`
	CheckedInBy      string        `json:"checkedInBy,omitempty"`
	AlreadyCheckedIn bool          `json:"alreadyCheckedIn"`
	GuestName        string        `json:"guestName"`
}

type PassResponse struct {
	PassID        string        `json:"passId"`
	BookingID     string        `json:"bookingId"`
	EventID       string        `json:"eventId"`
	QRPath        string        `json:"qrPath"`
	CheckInStatus CheckInStatus `json:"checkInStatus"`
	CheckInTime   *time.Time    `json:"checkInTime,omitempty"`
	CheckedInBy   string        `json:"checkedInBy,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (p *EventPass) ToResponse() PassResponse {
	return PassResponse{
		PassID:        p.PassID,
		BookingID:     p.BookingID.String(),
		EventID:       p.EventID.String(),
		QRPath:        p.QRPath,
		CheckInStatus: p.CheckInStatus,
		CheckInTime:   p.CheckInTime,
		CheckedInBy:   p.CheckedInBy,
		CreatedAt:     p.CreatedAt,
	}
}
