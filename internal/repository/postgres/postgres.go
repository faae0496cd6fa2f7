package postgres

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/slotwise/booking-api/internal/repository"
)

type accountRepository struct {
	db *sqlx.DB
}

type providerRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func NewProviderRepository(db *sqlx.DB) repository.ProviderRepository {
	return &providerRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
