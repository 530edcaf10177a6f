package payments

import (
	"time"

	"osspace/internal/bookings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the provider-side state of a payment attempt.
type Status string

const (
	StatusCreated Status = "CREATED"
	StatusPaid    Status = "PAID"
	StatusFailed  Status = "FAILED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPaid, StatusFailed:
		return true
	}
	return false
}

// Payment is one provider order attempt against a booking. A booking can
// accumulate several rows when orders are abandoned; only the latest one
// is ever confirmed.
type Payment struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID         uuid.UUID  `json:"booking_id" gorm:"type:uuid;not null;index"`
	Provider          string     `json:"provider" gorm:"size:50;not null;default:'RAZORPAY'"`
	ProviderOrderID   string     `json:"provider_order_id" gorm:"size:100;not null;uniqueIndex"`
	ProviderPaymentID string     `json:"provider_payment_id" gorm:"size:100"`
	Status            Status     `json:"status" gorm:"type:varchar(20);default:'CREATED'"`
	AmountMinor       int64      `json:"amount_minor" gorm:"not null"`
	Currency          string     `json:"currency" gorm:"size:3;not null;default:'INR'"`
	PaidAt            *time.Time `json:"paid_at"`
	CreatedAt         time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Booking *bookings.Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type CreateOrderRequest struct {
	BookingID string `json:"bookingId" binding:"required,uuid"`
}

// CreateOrderResponse carries everything the checkout widget needs.
type CreateOrderResponse struct {
	OrderID       string `json:"orderId"`
	KeyID         string `json:"keyId"`
	AmountMinor   int64  `json:"amount"`
	Currency      string `json:"currency"`
	BookingID     string `json:"bookingId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
}

type ConfirmPaymentRequest struct {
	BookingID string `json:"bookingId" binding:"required,uuid"`
}

// ConfirmPaymentResponse reports the post-confirmation state, including
// the issued pass for EVENT bookings.
type ConfirmPaymentResponse struct {
	BookingID         string          `json:"bookingId"`
	BookingType       bookings.Type   `json:"bookingType"`
	BookingStatus     bookings.Status `json:"bookingStatus"`
	PaymentID         string          `json:"paymentId"`
	ProviderPaymentID string          `json:"providerPaymentId"`
	PassID            string          `json:"passId,omitempty"`
	QRPath            string          `json:"qrPath,omitempty"`
}
