package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/slotwise/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	// AccountRepository handles account persistence.
	AccountRepository interface {
		Create(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		GetByEmail(ctx context.Context, email string) (*model.Account, error)
	}

	// ProviderRepository handles provider profiles and their weekly
	// availability. Availability writes replace the whole map.
	ProviderRepository interface {
		Create(ctx context.Context, provider *model.Provider) error
		Get(ctx context.Context, id uuid.UUID) (*model.Provider, error)
		GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.Provider, error)
		List(ctx context.Context) ([]*model.Provider, error)
		Search(ctx context.Context, query string) ([]*model.Provider, error)
		Update(ctx context.Context, provider *model.Provider) error
		UpdateAvailability(ctx context.Context, id uuid.UUID, availability model.AvailabilityMap) error
	}

	// AppointmentRepository is the booking ledger. Create relies on the
	// (provider_id, date, time) uniqueness constraint and surfaces a
	// conflict error when the slot is already occupied, whatever its
	// status.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
		Exists(ctx context.Context, providerID uuid.UUID, date time.Time, timeOfDay model.TimeOfDay) (bool, error)
		BookedTimes(ctx context.Context, providerID uuid.UUID, from, to time.Time, excludeCancelled bool) (map[string][]model.TimeOfDay, error)
		ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*model.Appointment, error)
		ListForClient(ctx context.Context, clientID uuid.UUID) ([]*model.Appointment, error)
	}
)
