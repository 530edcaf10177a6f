package passes

import (
	"context"
	"time"

	"osspace/internal/bookings"
	"osspace/internal/shared/apperrors"
	"osspace/pkg/logger"

	"github.com/google/uuid"
)

// VerifyResponse is the public view behind the QR code. It carries no
// contact details, only enough for a gate volunteer to match a guest.
type VerifyResponse struct {
	PassID        string        `json:"passId"`
	GuestName     string        `json:"guestName"`
	BookingStatus string        `json:"bookingStatus"`
	CheckInStatus CheckInStatus `json:"checkInStatus"`
	CheckInTime   *time.Time    `json:"checkInTime,omitempty"`
	Valid         bool          `json:"valid"`
}

type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest, checkedInBy string) (*CheckInResponse, error)
	VerifyPass(ctx context.Context, passID string) (*VerifyResponse, error)
	ListPasses(ctx context.Context) ([]PassResponse, error)
	PassViewByBookingID(ctx context.Context, bookingID uuid.UUID) (*bookings.PassView, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository, log *logger.Logger) Service {
	return &service{repo: repo, log: log}
}

// CheckIn redeems a pass at the event gate. Redemption is idempotent: a
// pass already CHECKED_IN answers with its original check-in time and
// alreadyCheckedIn=true instead of failing or rewriting the row.
func (s *service) CheckIn(ctx context.Context, req CheckInRequest, checkedInBy string) (*CheckInResponse, error) {
	if !VerifyPassFormat(req.PassID) {
		return nil, apperrors.NotFound("Pass not found")
	}

	pass, err := s.repo.GetByPassID(ctx, req.PassID)
	if err != nil {
		return nil, err
	}
	if pass.Booking == nil || pass.Booking.Status != bookings.StatusConfirmed {
		return nil, apperrors.InvalidState("Pass is not valid for check-in")
	}

	if pass.CheckInStatus == CheckInStatusCheckedIn {
		return s.checkInResponse(pass, true), nil
	}

	now := time.Now().UTC()
	won, err := s.repo.MarkCheckedIn(ctx, pass.PassID, now, checkedInBy)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to check in pass", err)
	}

	// Re-read so a concurrent winner's time and operator are reported.
	pass, err = s.repo.GetByPassID(ctx, req.PassID)
	if err != nil {
		return nil, err
	}

	if won {
		s.log.LogPassCheckedIn(ctx, pass.PassID, checkedInBy)
	}
	return s.checkInResponse(pass, !won), nil
}

func (s *service) checkInResponse(pass *EventPass, already bool) *CheckInResponse {
	resp := &CheckInResponse{
		PassID:           pass.PassID,
		BookingID:        pass.BookingID.String(),
		CheckInStatus:    pass.CheckInStatus,
		CheckInTime:      pass.CheckInTime,
		CheckedInBy:      pass.CheckedInBy,
		AlreadyCheckedIn: already,
	}
	if pass.Booking != nil {
		resp.GuestName = pass.Booking.Name
	}
	return resp
}

func (s *service) VerifyPass(ctx context.Context, passID string) (*VerifyResponse, error) {
	if !VerifyPassFormat(passID) {
		return nil, apperrors.NotFound("Pass not found")
	}

	pass, err := s.repo.GetByPassID(ctx, passID)
	if err != nil {
		return nil, err
	}

	resp := &VerifyResponse{
		PassID:        pass.PassID,
		CheckInStatus: pass.CheckInStatus,
		CheckInTime:   pass.CheckInTime,
	}
	if pass.Booking != nil {
		resp.GuestName = pass.Booking.Name
		resp.BookingStatus = string(pass.Booking.Status)
		resp.Valid = pass.Booking.Status == bookings.StatusConfirmed
	}
	return resp, nil
}

func (s *service) ListPasses(ctx context.Context) ([]PassResponse, error) {
	passes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "Failed to list passes", err)
	}
	responses := make([]PassResponse, 0, len(passes))
	for i := range passes {
		responses = append(responses, passes[i].ToResponse())
	}
	return responses, nil
}

// PassViewByBookingID lets the bookings package embed pass details in its
// detail aggregate without importing this package.
func (s *service) PassViewByBookingID(ctx context.Context, bookingID uuid.UUID) (*bookings.PassView, error) {
	pass, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &bookings.PassView{
		PassID:        pass.PassID,
		QRPath:        pass.QRPath,
		CheckInStatus: string(pass.CheckInStatus),
		CheckInTime:   pass.CheckInTime,
	}, nil
}
