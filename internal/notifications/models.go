package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Channel is the delivery medium recorded on a NotificationLog row.
type Channel string

const (
	ChannelWhatsApp Channel = "WHATSAPP"
	ChannelEmail    Channel = "EMAIL"
)

// Status tracks the outbound attempt. Rows start PENDING and are flipped
// by whichever worker eventually drains the topic; this service only
// records the attempt.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusQueued  Status = "QUEUED"
	StatusFailed  Status = "FAILED"
)

// NotificationLog is the write-only record of an outbound notification
// attempt. Delivery itself is an external collaborator's job.
type NotificationLog struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID *uuid.UUID `json:"booking_id" gorm:"type:uuid;index"`
	Channel   Channel    `json:"channel" gorm:"type:varchar(20);not null"`
	Template  string     `json:"template" gorm:"size:100;not null"`
	Recipient string     `json:"recipient" gorm:"size:255;not null"`
	Status    Status     `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

func (n *NotificationLog) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// Message is the payload published to the notification topic for the
// downstream delivery worker.
type Message struct {
	LogID     uuid.UUID `json:"logId"`
	BookingID string    `json:"bookingId,omitempty"`
	Channel   Channel   `json:"channel"`
	Template  string    `json:"template"`
	Recipient string    `json:"recipient"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
