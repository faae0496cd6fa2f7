package model

import (
	"time"

	"github.com/google/uuid"
)

// Provider is an account offering bookable time slots. The availability
// map is replaced wholesale on every edit, never patched.
type Provider struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	AccountID    uuid.UUID       `db:"account_id" json:"account_id"`
	Name         string          `db:"name" json:"name"`
	Bio          string          `db:"bio" json:"bio,omitempty"`
	Availability AvailabilityMap `db:"availability" json:"availability"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// UpdateAvailabilityRequest carries the editor form: weekday name to a
// comma-separated time list ("09:00, 14:30").
type UpdateAvailabilityRequest struct {
	Days map[string]string `json:"days" binding:"required"`
}

type UpdateProviderRequest struct {
	Bio *string `json:"bio"`
}
