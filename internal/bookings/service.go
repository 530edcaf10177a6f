package bookings

import (
	"context"
	"fmt"
	"strings"

	"osspace/internal/shared/apperrors"
	"osspace/internal/spaces"
	"osspace/pkg/logger"

	"github.com/google/uuid"
)

// PaymentReader exposes the latest payment for a booking without importing
// the payments package.
type PaymentReader interface {
	LatestPaymentView(ctx context.Context, bookingID uuid.UUID) (*PaymentView, error)
}

// PassReader exposes the issued pass for a booking.
type PassReader interface {
	PassViewByBookingID(ctx context.Context, bookingID uuid.UUID) (*PassView, error)
}

type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error)
	GetBookingDetail(ctx context.Context, id uuid.UUID) (*BookingDetail, error)
	ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	// SyncSpaceRequestStatus implements spaces.BookingSync.
	SyncSpaceRequestStatus(ctx context.Context, spaceRequestID uuid.UUID, status string, changedBy string) error

	SetPaymentReader(reader PaymentReader)
	SetPassReader(reader PassReader)
}

type service struct {
	repo          Repository
	paymentReader PaymentReader
	passReader    PassReader
	log           *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetPaymentReader(reader PaymentReader) {
	s.paymentReader = reader
}

func (s *service) SetPassReader(reader PassReader) {
	s.passReader = reader
}

// CreateBooking runs the lifecycle engine: normalize input, branch on
// type, enforce preconditions, and persist Booking + StatusHistory
// atomically. All checks happen before any write.
func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	bookingType := Type(req.Type)
	if !bookingType.IsValid() {
		return nil, apperrors.Validation("Invalid booking type")
	}

	phone, err := NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		Type:     bookingType,
		Name:     strings.TrimSpace(req.Name),
		Phone:    phone,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Currency: "INR",
	}

	switch bookingType {
	case TypeClass:
		if req.ClassSessionID == "" {
			return nil, apperrors.Validation("classSessionId is required for CLASS bookings")
		}
		sessionID, err := uuid.Parse(req.ClassSessionID)
		if err != nil {
			return nil, apperrors.Validation("Invalid classSessionId")
		}
		booking.ClassSessionID = &sessionID
		if err := s.repo.CreateClassBooking(ctx, booking); err != nil {
			return nil, err
		}

	case TypeEvent:
		if req.EventID == "" {
			return nil, apperrors.Validation("eventId is required for EVENT bookings")
		}
		eventID, err := uuid.Parse(req.EventID)
		if err != nil {
			return nil, apperrors.Validation("Invalid eventId")
		}
		booking.EventID = &eventID
		if err := s.repo.CreateEventBooking(ctx, booking); err != nil {
			return nil, err
		}

	case TypeSpace:
		if len(req.PreferredSlots) == 0 {
			return nil, apperrors.Validation("preferredSlots is required for SPACE bookings")
		}
		if len(req.PreferredSlots) > 10 {
			return nil, apperrors.Validation("At most 10 preferred slots are allowed")
		}
		request := &spaces.SpaceRequest{
			PreferredSlots: req.PreferredSlots,
			Purpose:        strings.TrimSpace(req.Purpose),
			Notes:          strings.TrimSpace(req.Notes),
		}
		if err := s.repo.CreateSpaceBooking(ctx, request, booking); err != nil {
			return nil, err
		}
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.Type.String(), booking.Status.String())

	return &CreateBookingResponse{
		BookingID:       booking.ID.String(),
		Type:            booking.Type,
		AmountMinor:     booking.AmountMinor,
		Currency:        booking.Currency,
		RequiresPayment: booking.Type != TypeSpace && booking.AmountMinor > 0,
	}, nil
}

// GetBookingDetail assembles the full booking view with its related
// inventory, latest payment and pass.
func (s *service) GetBookingDetail(ctx context.Context, id uuid.UUID) (*BookingDetail, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &BookingDetail{
		ID:          booking.ID.String(),
		Type:        booking.Type,
		Status:      booking.Status,
		Name:        booking.Name,
		Phone:       booking.Phone,
		Email:       booking.Email,
		AmountMinor: booking.AmountMinor,
		Currency:    booking.Currency,
		CreatedAt:   booking.CreatedAt,
	}

	if booking.ClassSession != nil {
		resp := booking.ClassSession.ToResponse()
		detail.ClassSession = &resp
	}
	if booking.Event != nil {
		resp := booking.Event.ToResponse()
		detail.Event = &resp
	}
	if booking.SpaceRequest != nil {
		resp := booking.SpaceRequest.ToResponse()
		detail.SpaceRequest = &resp
	}

	// A booking legitimately has no payment or pass yet; anything other
	// than not-found is a real failure and must not vanish silently.
	if s.paymentReader != nil {
		payment, err := s.paymentReader.LatestPaymentView(ctx, booking.ID)
		switch {
		case err == nil:
			detail.Payment = payment
		case !apperrors.Is(err, apperrors.CodeNotFound):
			s.log.WithError(err).Warn("failed to load payment for booking detail",
				"booking_id", booking.ID.String())
		}
	}
	if s.passReader != nil {
		pass, err := s.passReader.PassViewByBookingID(ctx, booking.ID)
		switch {
		case err == nil:
			detail.Pass = pass
		case !apperrors.Is(err, apperrors.CodeNotFound):
			s.log.WithError(err).Warn("failed to load pass for booking detail",
				"booking_id", booking.ID.String())
		}
	}

	return detail, nil
}

func (s *service) ListBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetAllBookings(ctx, query)
}

// SyncSpaceRequestStatus mirrors an admin decision on a space request onto
// the linked booking. Only terminal decisions move the booking.
func (s *service) SyncSpaceRequestStatus(ctx context.Context, spaceRequestID uuid.UUID, status string, changedBy string) error {
	var target Status
	switch spaces.Status(status) {
	case spaces.StatusConfirmed:
		target = StatusConfirmed
	case spaces.StatusDeclined, spaces.StatusNotProceeding:
		target = StatusCancelled
	default:
		return nil
	}

	booking, err := s.repo.GetBookingBySpaceRequestID(ctx, spaceRequestID)
	if err != nil {
		return err
	}

	reason := fmt.Sprintf("Space request %s", status)
	return s.repo.UpdateStatusWithHistory(ctx, booking.ID, target, changedBy, reason)
}
