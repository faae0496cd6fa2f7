// Package provider manages provider profiles and their weekly
// availability. Reads go through a short-lived in-process cache,
// invalidated whenever the availability map is replaced.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/slotwise/booking-api/internal/model"
	"github.com/slotwise/booking-api/internal/repository"
	apperrors "github.com/slotwise/booking-api/pkg/errors"
)

const (
	cacheTTL             = 30 * time.Second
	cacheCleanupInterval = time.Minute
)

type Servicer interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Provider, error)
	List(ctx context.Context) ([]*model.Provider, error)
	Search(ctx context.Context, query string) ([]*model.Provider, error)
	ProviderForAccount(ctx context.Context, accountID uuid.UUID) (*model.Provider, error)
	SetAvailability(ctx context.Context, providerID uuid.UUID, req *model.UpdateAvailabilityRequest) (model.AvailabilityMap, error)
	UpdateProfile(ctx context.Context, providerID uuid.UUID, req *model.UpdateProviderRequest) (*model.Provider, error)
}

type Service struct {
	repo  repository.ProviderRepository
	cache *gocache.Cache
}

func NewService(repo repository.ProviderRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, cacheCleanupInterval),
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	key := cacheKey(id)
	if cached, found := s.cache.Get(key); found {
		return cached.(*model.Provider), nil
	}

	provider, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	s.cache.Set(key, provider, gocache.DefaultExpiration)
	return provider, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Provider, error) {
	providers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	return providers, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]*model.Provider, error) {
	if query == "" {
		return []*model.Provider{}, nil
	}
	providers, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search providers: %w", err)
	}
	return providers, nil
}

// ProviderForAccount is the capability lookup guarding provider-only
// operations: a not-found result means the account has no provider
// profile.
func (s *Service) ProviderForAccount(ctx context.Context, accountID uuid.UUID) (*model.Provider, error) {
	provider, err := s.repo.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider profile: %w", err)
	}
	return provider, nil
}

// SetAvailability parses the editor form and replaces the provider's
// weekly map wholesale. Malformed weekday names or time entries reject
// the whole request; nothing is stored partially.
func (s *Service) SetAvailability(ctx context.Context, providerID uuid.UUID, req *model.UpdateAvailabilityRequest) (model.AvailabilityMap, error) {
	availability := make(model.AvailabilityMap, len(req.Days))
	for name, raw := range req.Days {
		day, err := model.ParseWeekday(name)
		if err != nil {
			return nil, apperrors.BadRequest("invalid weekday", err)
		}
		times, err := model.ParseTimeList(raw)
		if err != nil {
			return nil, apperrors.BadRequest("invalid time entry", err)
		}
		availability[day] = times
	}

	if err := s.repo.UpdateAvailability(ctx, providerID, availability); err != nil {
		return nil, fmt.Errorf("failed to store availability: %w", err)
	}

	s.cache.Delete(cacheKey(providerID))

	log.Info().
		Str("provider_id", providerID.String()).
		Int("days", len(availability)).
		Msg("availability replaced")

	return availability, nil
}

func (s *Service) UpdateProfile(ctx context.Context, providerID uuid.UUID, req *model.UpdateProviderRequest) (*model.Provider, error) {
	provider, err := s.repo.Get(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	if req.Bio != nil {
		provider.Bio = *req.Bio
	}

	if err := s.repo.Update(ctx, provider); err != nil {
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}

	s.cache.Delete(cacheKey(providerID))
	return provider, nil
}

func cacheKey(id uuid.UUID) string {
	return "provider:" + id.String()
}
