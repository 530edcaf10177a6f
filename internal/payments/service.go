package payments

import (
	"context"

	"osspace/internal/bookings"
	"osspace/internal/notifications"
	"osspace/internal/shared/apperrors"
	"osspace/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)
	ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) (*ConfirmPaymentResponse, error)
	LatestPaymentView(ctx context.Context, bookingID uuid.UUID) (*bookings.PaymentView, error)
}

type service struct {
	repo          Repository
	notifications notifications.Service
	keyID         string
	log           *logger.Logger
}

func NewService(repo Repository, notificationService notifications.Service, keyID string, log *logger.Logger) Service {
	return &service{repo: repo, notifications: notificationService, keyID: keyID, log: log}
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperrors.Validation("Invalid booking id")
	}

	payment, booking, err := s.repo.CreateOrder(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return &CreateOrderResponse{
		OrderID:       payment.ProviderOrderID,
		KeyID:         s.keyID,
		AmountMinor:   payment.AmountMinor,
		Currency:      payment.Currency,
		BookingID:     booking.ID.String(),
		CustomerName:  booking.Name,
		CustomerEmail: booking.Email,
		CustomerPhone: booking.Phone,
	}, nil
}

// ConfirmPayment runs the confirmation transaction, then dispatches the
// recorded notification after commit. Dispatch failures never unwind a
// committed confirmation.
func (s *service) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) (*ConfirmPaymentResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperrors.Validation("Invalid booking id")
	}

	result, err := s.repo.ConfirmPayment(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.log.LogPaymentConfirmed(ctx, result.Booking.ID.String(), result.Payment.ID.String())

	if result.Notification != nil && s.notifications != nil {
		if err := s.notifications.Dispatch(ctx, result.Notification); err != nil {
			s.log.WithError(err).Warn("notification dispatch failed",
				"booking_id", result.Booking.ID.String())
		}
	}

	resp := &ConfirmPaymentResponse{
		BookingID:         result.Booking.ID.String(),
		BookingType:       result.Booking.Type,
		BookingStatus:     result.Booking.Status,
		PaymentID:         result.Payment.ID.String(),
		ProviderPaymentID: result.Payment.ProviderPaymentID,
	}
	if result.Pass != nil {
		resp.PassID = result.Pass.PassID
		resp.QRPath = result.Pass.QRPath
	}
	return resp, nil
}

// LatestPaymentView lets the bookings package embed payment details in
// its detail aggregate without importing this package.
func (s *service) LatestPaymentView(ctx context.Context, bookingID uuid.UUID) (*bookings.PaymentView, error) {
	payment, err := s.repo.GetLatestByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &bookings.PaymentView{
		ID:                payment.ID.String(),
		Provider:          payment.Provider,
		ProviderOrderID:   payment.ProviderOrderID,
		ProviderPaymentID: payment.ProviderPaymentID,
		Status:            string(payment.Status),
		AmountMinor:       payment.AmountMinor,
		Currency:          payment.Currency,
		CreatedAt:         payment.CreatedAt,
		PaidAt:            payment.PaidAt,
	}, nil
}
