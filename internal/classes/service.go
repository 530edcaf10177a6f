package classes

import (
	"context"
	"time"

	"osspace/pkg/cache"

	"github.com/google/uuid"
)

const listingCacheKey = "osspace:cache:classes:listing"

type Service interface {
	SetCacheService(cacheService cache.Service, ttl time.Duration)
	CreateClass(ctx context.Context, req CreateClassRequest) (*ClassResponse, error)
	UpdateClass(ctx context.Context, id uuid.UUID, req UpdateClassRequest) (*ClassResponse, error)
	GetClassByID(ctx context.Context, id uuid.UUID) (*ClassResponse, error)
	ListClasses(ctx context.Context, includeInactive bool) ([]ClassResponse, error)
	ListAllClasses(ctx context.Context) ([]ClassResponse, error)
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

func (s *service) CreateClass(ctx context.Context, req CreateClassRequest) (*ClassResponse, error) {
	session := &ClassSession{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		DurationMin: req.DurationMin,
		Capacity:    req.Capacity,
		PriceMinor:  req.PriceMinor,
		Currency:    currencyOrDefault(req.Currency),
		Active:      true,
		ImageURL:    req.ImageURL,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	resp := session.ToResponse()
	return &resp, nil
}

func (s *service) UpdateClass(ctx context.Context, id uuid.UUID, req UpdateClassRequest) (*ClassResponse, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		session.Title = *req.Title
	}
	if req.Description != nil {
		session.Description = *req.Description
	}
	if req.StartsAt != nil {
		session.StartsAt = *req.StartsAt
	}
	if req.DurationMin != nil {
		session.DurationMin = *req.DurationMin
	}
	if req.Capacity != nil {
		session.Capacity = *req.Capacity
	}
	if req.PriceMinor != nil {
		session.PriceMinor = *req.PriceMinor
	}
	if req.Active != nil {
		session.Active = *req.Active
	}
	if req.ImageURL != nil {
		session.ImageURL = *req.ImageURL
	}

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	resp := session.ToResponse()
	return &resp, nil
}

func (s *service) GetClassByID(ctx context.Context, id uuid.UUID) (*ClassResponse, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := session.ToResponse()
	return &resp, nil
}

func (s *service) ListClasses(ctx context.Context, includeInactive bool) ([]ClassResponse, error) {
	if !includeInactive && s.cache != nil {
		var cached []ClassResponse
		if err := s.cache.Get(ctx, listingCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	sessions, err := s.repo.List(ctx, includeInactive, time.Now())
	if err != nil {
		return nil, err
	}

	responses := make([]ClassResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, sessions[i].ToResponse())
	}

	if !includeInactive && s.cache != nil {
		_ = s.cache.Set(ctx, listingCacheKey, responses, s.cacheTTL)
	}

	return responses, nil
}

func (s *service) ListAllClasses(ctx context.Context) ([]ClassResponse, error) {
	sessions, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]ClassResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, sessions[i].ToResponse())
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
