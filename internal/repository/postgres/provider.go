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

func (r *providerRepository) Create(ctx context.Context, provider *model.Provider) error {
	query := `
		INSERT INTO providers (id, account_id, name, bio, availability, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	provider.CreatedAt = time.Now()
	provider.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		provider.ID,
		provider.AccountID,
		provider.Name,
		provider.Bio,
		provider.Availability,
		provider.CreatedAt,
		provider.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("account already has a provider profile", err)
		}
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *providerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	query := `
		SELECT id, account_id, name, bio, availability, created_at, updated_at
		FROM providers
		WHERE id = $1
	`
	var provider model.Provider
	err := r.db.GetContext(ctx, &provider, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("provider", err)
		}
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}
	return &provider, nil
}

func (r *providerRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) (*model.Provider, error) {
	query := `
		SELECT id, account_id, name, bio, availability, created_at, updated_at
		FROM providers
		WHERE account_id = $1
	`
	var provider model.Provider
	err := r.db.GetContext(ctx, &provider, query, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("provider", err)
		}
		return nil, fmt.Errorf("failed to get provider by account: %w", err)
	}
	return &provider, nil
}

func (r *providerRepository) List(ctx context.Context) ([]*model.Provider, error) {
	query := `
		SELECT id, account_id, name, bio, availability, created_at, updated_at
		FROM providers
		ORDER BY name ASC
	`
	var providers []*model.Provider
	err := r.db.SelectContext(ctx, &providers, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	return providers, nil
}

func (r *providerRepository) Search(ctx context.Context, search string) ([]*model.Provider, error) {
	query := `
		SELECT id, account_id, name, bio, availability, created_at, updated_at
		FROM providers
		WHERE name ILIKE $1 OR bio ILIKE $1
		ORDER BY name ASC
	`
	var providers []*model.Provider
	err := r.db.SelectContext(ctx, &providers, query, "%"+search+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search providers: %w", err)
	}
	return providers, nil
}

func (r *providerRepository) Update(ctx context.Context, provider *model.Provider) error {
	query := `
		UPDATE providers
		SET name = $1, bio = $2, updated_at = $3
		WHERE id = $4
	`
	provider.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		provider.Name,
		provider.Bio,
		provider.UpdatedAt,
		provider.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update provider: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("provider", nil)
	}
	return nil
}

// UpdateAvailability replaces the whole weekly map in one statement,
// last writer wins.
func (r *providerRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, availability model.AvailabilityMap) error {
	query := `
		UPDATE providers
		SET availability = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, availability, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("provider", nil)
	}
	return nil
}
