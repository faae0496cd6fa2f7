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

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("email already registered", err)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("account", err)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("account", err)
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &account, nil
}
