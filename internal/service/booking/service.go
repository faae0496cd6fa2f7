// Package booking is the slot availability resolver and booking ledger
// front. It subtracts existing appointments from generated candidate
// slots, creates bookings under the slot uniqueness constraint and drives
// appointment status transitions.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/slotwise/booking-api/internal/model"
	"github.com/slotwise/booking-api/internal/repository"
	"github.com/slotwise/booking-api/internal/service/schedule"
	apperrors "github.com/slotwise/booking-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type Servicer interface {
	AvailableSlots(ctx context.Context, providerID uuid.UUID, start time.Time, numDays int) ([]model.Slot, error)
	AvailableGridTimes(ctx context.Context, providerID uuid.UUID, date time.Time) ([]model.TimeOfDay, error)
	Book(ctx context.Context, providerID, clientID uuid.UUID, date time.Time, timeOfDay model.TimeOfDay) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID uuid.UUID, status string, actingAccountID uuid.UUID) (*model.Appointment, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*model.Appointment, error)
}

type Service struct {
	appointments     repository.AppointmentRepository
	providers        repository.ProviderRepository
	grid             schedule.GridConfig
	windowDays       int
	releaseCancelled bool
}

type Options struct {
	Grid schedule.GridConfig
	// WindowDays is the default expansion window for provider views.
	WindowDays int
	// ReleaseCancelledSlots frees slots held by cancelled appointments.
	// Off by default: a cancelled appointment still occupies its slot.
	ReleaseCancelledSlots bool
}

func NewService(appointments repository.AppointmentRepository, providers repository.ProviderRepository, opts Options) *Service {
	if opts.Grid == (schedule.GridConfig{}) {
		opts.Grid = schedule.DefaultGridConfig()
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = schedule.DefaultWindowDays
	}
	return &Service{
		appointments:     appointments,
		providers:        providers,
		grid:             opts.Grid,
		windowDays:       opts.WindowDays,
		releaseCancelled: opts.ReleaseCancelledSlots,
	}
}

// WindowDays returns the configured default expansion window.
func (s *Service) WindowDays() int {
	return s.windowDays
}

// AvailableSlots expands the provider's weekly template over the window
// and removes every slot whose (date, time) is already in the ledger.
// Ordering follows the generator: ascending by day, stored time order
// within a day.
func (s *Service) AvailableSlots(ctx context.Context, providerID uuid.UUID, start time.Time, numDays int) ([]model.Slot, error) {
	provider, err := s.providers.Get(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider: %w", err)
	}

	candidates := schedule.CandidateSlots(provider.Availability, start, numDays)
	if len(candidates) == 0 {
		return []model.Slot{}, nil
	}

	booked, err := s.appointments.BookedTimes(ctx, providerID, start, start.AddDate(0, 0, numDays-1), s.releaseCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked slots: %w", err)
	}

	available := make([]model.Slot, 0, len(candidates))
	for _, slot := range candidates {
		if occupied(booked, slot.Date, slot.Time) {
			continue
		}
		available = append(available, slot)
	}
	return available, nil
}

// AvailableGridTimes resolves the fixed grid for one day, minus booked
// times. The grid deliberately ignores the provider's availability map.
func (s *Service) AvailableGridTimes(ctx context.Context, providerID uuid.UUID, date time.Time) ([]model.TimeOfDay, error) {
	if _, err := s.providers.Get(ctx, providerID); err != nil {
		return nil, fmt.Errorf("failed to resolve provider: %w", err)
	}

	grid, err := schedule.GridSlots(s.grid)
	if err != nil {
		return nil, fmt.Errorf("failed to generate grid: %w", err)
	}

	booked, err := s.appointments.BookedTimes(ctx, providerID, date, date, s.releaseCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked slots: %w", err)
	}

	times := make([]model.TimeOfDay, 0, len(grid))
	for _, t := range grid {
		if occupied(booked, date, t) {
			continue
		}
		times = append(times, t)
	}
	return times, nil
}

// Book creates a pending appointment for the slot. The ledger's unique
// constraint arbitrates concurrent attempts: exactly one succeeds, the
// rest fail with a conflict error.
func (s *Service) Book(ctx context.Context, providerID, clientID uuid.UUID, date time.Time, timeOfDay model.TimeOfDay) (*model.Appointment, error) {
	normalized, err := model.ParseTimeOfDay(string(timeOfDay))
	if err != nil {
		return nil, apperrors.BadRequest("invalid slot time", err)
	}

	if _, err := s.providers.Get(ctx, providerID); err != nil {
		return nil, fmt.Errorf("failed to resolve provider: %w", err)
	}

	appointment := &model.Appointment{
		ID:         uuid.New(),
		ProviderID: providerID,
		ClientID:   clientID,
		Date:       date,
		Time:       normalized,
		Status:     model.AppointmentStatusPending,
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	log.Info().
		Str("appointment_id", appointment.ID.String()).
		Str("provider_id", providerID.String()).
		Str("date", date.Format(dateLayout)).
		Str("time", string(normalized)).
		Msg("slot booked")

	return appointment, nil
}

// UpdateStatus transitions an appointment's status. Only the account
// owning the appointment's provider may act. A status outside the three
// accepted values is silently ignored and the appointment returned
// unchanged.
func (s *Service) UpdateStatus(ctx context.Context, appointmentID uuid.UUID, status string, actingAccountID uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	provider, err := s.providers.Get(ctx, appointment.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve provider: %w", err)
	}

	if provider.AccountID != actingAccountID {
		return nil, apperrors.Forbidden("appointment belongs to another provider", nil)
	}

	newStatus := model.AppointmentStatus(status)
	if !newStatus.Valid() {
		log.Debug().
			Str("appointment_id", appointmentID.String()).
			Str("status", status).
			Msg("ignoring unknown appointment status")
		return appointment, nil
	}

	if err := s.appointments.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	appointment.Status = newStatus
	return appointment, nil
}

// ListForAccount returns the account's appointments: the provider side
// when the account has a provider profile, the client side otherwise.
func (s *Service) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]*model.Appointment, error) {
	provider, err := s.providers.GetByAccount(ctx, accountID)
	switch {
	case err == nil:
		return s.appointments.ListForProvider(ctx, provider.ID)
	case apperrors.IsCode(err, apperrors.ErrNotFound):
		return s.appointments.ListForClient(ctx, accountID)
	default:
		return nil, fmt.Errorf("failed to resolve provider profile: %w", err)
	}
}

func occupied(booked map[string][]model.TimeOfDay, date time.Time, t model.TimeOfDay) bool {
	for _, b := range booked[date.Format(dateLayout)] {
		if b == t {
			return true
		}
	}
	return false
}
