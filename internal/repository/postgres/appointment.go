package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slotwise/booking-api/internal/model"
	apperrors "github.com/slotwise/booking-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// Create inserts a new appointment. The check-then-insert race is settled
// by the unique constraint on (provider_id, date, time): of two concurrent
// attempts exactly one succeeds, the other gets a conflict error.
func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, provider_id, client_id, date, time, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.ProviderID,
		appointment.ClientID,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("slot already booked", err)
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, provider_id, client_id, date, time, status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) Exists(ctx context.Context, providerID uuid.UUID, date time.Time, timeOfDay model.TimeOfDay) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE provider_id = $1 AND date = $2 AND time = $3
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, providerID, date, timeOfDay)
	if err != nil {
		return false, fmt.Errorf("failed to check slot occupancy: %w", err)
	}
	return exists, nil
}

// BookedTimes returns the occupied times per date (keyed "2006-01-02")
// for a provider within [from, to]. Every status occupies its slot unless
// excludeCancelled is set.
func (r *appointmentRepository) BookedTimes(ctx context.Context, providerID uuid.UUID, from, to time.Time, excludeCancelled bool) (map[string][]model.TimeOfDay, error) {
	query := `
		SELECT date, time
		FROM appointments
		WHERE provider_id = $1 AND date >= $2 AND date <= $3
	`
	args := []interface{}{providerID, from, to}

	if excludeCancelled {
		query += ` AND status != $4`
		args = append(args, model.AppointmentStatusCancelled)
	}

	query += ` ORDER BY date ASC, time ASC`

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked times: %w", err)
	}
	defer rows.Close()

	booked := make(map[string][]model.TimeOfDay)
	for rows.Next() {
		var (
			date      time.Time
			timeOfDay model.TimeOfDay
		)
		if err := rows.Scan(&date, &timeOfDay); err != nil {
			return nil, fmt.Errorf("failed to scan booked time: %w", err)
		}
		key := date.Format(dateLayout)
		booked[key] = append(booked[key], timeOfDay)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate booked times: %w", err)
	}
	return booked, nil
}

func (r *appointmentRepository) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT id, provider_id, client_id, date, time, status, created_at, updated_at
		FROM appointments
		WHERE provider_id = $1
		ORDER BY date ASC, time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForClient(ctx context.Context, clientID uuid.UUID) ([]*model.Appointment, error) {
	query := `
		SELECT id, provider_id, client_id, date, time, status, created_at, updated_at
		FROM appointments
		WHERE client_id = $1
		ORDER BY date ASC, time ASC
	`
	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client appointments: %w", err)
	}
	return appointments, nil
}
