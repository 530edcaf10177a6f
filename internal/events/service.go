package events

import (
	"context"
	"time"

	"osspace/pkg/cache"

	"github.com/google/uuid"
)

const listingCacheKey = "osspace:cache:events:listing"

type Service interface {
	SetCacheService(cacheService cache.Service, ttl time.Duration)
	CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	ListEvents(ctx context.Context, includeInactive bool) ([]EventResponse, error)
	ListAllEvents(ctx context.Context) ([]EventResponse, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cache = cacheService
	s.cacheTTL = ttl
}

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResponse, error) {
	event := &Event{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		Capacity:    req.Capacity,
		PriceMinor:  req.PriceMinor,
		Currency:    currencyOrDefault(req.Currency),
		Active:      true,
		ImageURL:    req.ImageURL,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.Capacity != nil {
		event.Capacity = req.Capacity
	}
	if req.PriceMinor != nil {
		event.PriceMinor = *req.PriceMinor
	}
	if req.Active != nil {
		event.Active = *req.Active
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) ListEvents(ctx context.Context, includeInactive bool) ([]EventResponse, error) {
	// Only the default public listing is cached; the includeInactive
	// variant is an admin convenience and always hits the database.
	if !includeInactive && s.cache != nil {
		var cached []EventResponse
		if err := s.cache.Get(ctx, listingCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	events, err := s.repo.List(ctx, includeInactive, time.Now())
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, events[i].ToResponse())
	}

	if !includeInactive && s.cache != nil {
		_ = s.cache.Set(ctx, listingCacheKey, responses, s.cacheTTL)
	}

	return responses, nil
}

func (s *service) ListAllEvents(ctx context.Context) ([]EventResponse, error) {
	events, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, events[i].ToResponse())
	}
	return responses, nil
}

func (s *service) invalidateListing(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, listingCacheKey)
	}
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "INR"
	}
	return currency
}
