package spaces

import (
	"context"
	"fmt"

	"osspace/internal/shared/apperrors"

	"github.com/google/uuid"
)

// BookingSync mirrors admin decisions on a space request onto the linked
// booking. Implemented by the bookings service; an interface here avoids a
// package cycle.
type BookingSync interface {
	SyncSpaceRequestStatus(ctx context.Context, spaceRequestID uuid.UUID, status string, changedBy string) error
}

type Service interface {
	SetBookingSync(sync BookingSync)
	UpdateRequest(ctx context.Context, id uuid.UUID, adminEmail string, req UpdateSpaceRequestRequest) (*SpaceRequestResponse, error)
	ListRequests(ctx context.Context) ([]SpaceRequestResponse, error)
}

type service struct {
	repo        Repository
	bookingSync BookingSync
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetBookingSync(sync BookingSync) {
	s.bookingSync = sync
}

func (s *service) UpdateRequest(ctx context.Context, id uuid.UUID, adminEmail string, req UpdateSpaceRequestRequest) (*SpaceRequestResponse, error) {
	status := Status(req.Status)
	if !status.IsValid() {
		return nil, apperrors.Validation("Invalid space request status")
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Status = status
	if req.AdminNotes != nil {
		request.AdminNotes = *req.AdminNotes
	}

	if err := s.repo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update space request: %w", err)
	}

	if s.bookingSync != nil {
		if err := s.bookingSync.SyncSpaceRequestStatus(ctx, request.ID, string(status), adminEmail); err != nil {
			return nil, fmt.Errorf("failed to sync booking status: %w", err)
		}
	}

	resp := request.ToResponse()
	return &resp, nil
}

func (s *service) ListRequests(ctx context.Context) ([]SpaceRequestResponse, error) {
	requests, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]SpaceRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, requests[i].ToResponse())
	}
	return responses, nil
}
