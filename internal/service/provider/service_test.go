package provider

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotwise/booking-api/internal/model"
	apperrors "github.com/slotwise/booking-api/pkg/errors"
)

type fakeRepo struct {
	providers map[uuid.UUID]*model.Provider
	getCalls  int
}

func (f *fakeRepo) Create(ctx context.Context, p *model.Provider) error {
	f.providers[p.ID] = p
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	f.getCalls++
	p, ok := f.providers[id]
	if !ok {
		return nil, apperrors.NotFound("provider", nil)
	}
	return p, nil
}

func (f *fakeRepo) GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.Provider, error) {
	for _, p := range f.providers {
		if p.AccountID == accountID {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("provider", nil)
}

func (f *fakeRepo) List(ctx context.Context) ([]*model.Provider, error) { return nil, nil }

func (f *fakeRepo) Search(ctx context.Context, query string) ([]*model.Provider, error) {
	return nil, nil
}

func (f *fakeRepo) Update(ctx context.Context, p *model.Provider) error { return nil }

func (f *fakeRepo) UpdateAvailability(ctx context.Context, id uuid.UUID, availability model.AvailabilityMap) error {
	p, ok := f.providers[id]
	if !ok {
		return apperrors.NotFound("provider", nil)
	}
	p.Availability = availability
	return nil
}

func newTestService() (*Service, *fakeRepo, uuid.UUID) {
	id := uuid.New()
	repo := &fakeRepo{providers: map[uuid.UUID]*model.Provider{
		id: {ID: id, AccountID: uuid.New(), Name: "Ana", Availability: model.AvailabilityMap{}},
	}}
	return NewService(repo), repo, id
}

func TestSetAvailabilityParsesForm(t *testing.T) {
	svc, repo, id := newTestService()

	availability, err := svc.SetAvailability(context.Background(), id, &model.UpdateAvailabilityRequest{
		Days: map[string]string{
			"monday": "09:00, 14:30 ,",
			"friday": "10:00",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []model.TimeOfDay{"09:00", "14:30"}, availability[model.Monday])
	assert.Equal(t, []model.TimeOfDay{"10:00"}, availability[model.Friday])
	assert.Equal(t, availability, repo.providers[id].Availability)
}

func TestSetAvailabilityRejectsBadWeekday(t *testing.T) {
	svc, repo, id := newTestService()

	_, err := svc.SetAvailability(context.Background(), id, &model.UpdateAvailabilityRequest{
		Days: map[string]string{"holiday": "09:00"},
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
	assert.Empty(t, repo.providers[id].Availability)
}

func TestSetAvailabilityRejectsBadTime(t *testing.T) {
	svc, repo, id := newTestService()

	_, err := svc.SetAvailability(context.Background(), id, &model.UpdateAvailabilityRequest{
		Days: map[string]string{"monday": "09:00, lunchtime"},
	})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrBadRequest))
	assert.Empty(t, repo.providers[id].Availability)
}

func TestGetUsesCache(t *testing.T) {
	svc, repo, id := newTestService()

	_, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getCalls)
}

func TestSetAvailabilityInvalidatesCache(t *testing.T) {
	svc, repo, id := newTestService()

	_, err := svc.Get(context.Background(), id)
	require.NoError(t, err)

	_, err = svc.SetAvailability(context.Background(), id, &model.UpdateAvailabilityRequest{
		Days: map[string]string{"monday": "09:00"},
	})
	require.NoError(t, err)

	prov, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []model.TimeOfDay{"09:00"}, prov.Availability[model.Monday])
	assert.Equal(t, 2, repo.getCalls)
}
