package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether the status is one of the three accepted values.
// Anything else is ignored by status updates rather than rejected.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment occupies one (provider, date, time) slot. The triple is
// unique across all appointments regardless of status; appointments are
// never deleted.
type Appointment struct {
	ID         uuid.UUID         `db:"id" json:"id"`
	ProviderID uuid.UUID         `db:"provider_id" json:"provider_id"`
	ClientID   uuid.UUID         `db:"client_id" json:"client_id"`
	Date       time.Time         `db:"date" json:"date"`
	Time       TimeOfDay         `db:"time" json:"time"`
	Status     AppointmentStatus `db:"status" json:"status"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time         `db:"updated_at" json:"updated_at"`
}

// Slot is a concrete bookable (date, time) pair.
type Slot struct {
	Date time.Time
	Time TimeOfDay
}

func (s Slot) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"date":%q,"time":%q}`, s.Date.Format("2006-01-02"), s.Time)), nil
}

type BookSlotRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required,timeofday"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
