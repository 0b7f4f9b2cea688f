package scheduling

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	StatusAvailable SlotStatus = "available"
	StatusBooked    SlotStatus = "booked"
	StatusConfirmed SlotStatus = "confirmed"
	StatusRejected  SlotStatus = "rejected"
	StatusCancelled SlotStatus = "cancelled"
)

// transitions is the full status machine for provider-driven updates. Booking
// itself is not listed here: available -> booked happens only through the
// atomic claim in the repository. confirmed, rejected and cancelled are
// terminal.
var transitions = map[SlotStatus]map[SlotStatus]bool{
	StatusBooked: {
		StatusConfirmed: true,
		StatusRejected:  true,
	},
}

func CanTransition(from, to SlotStatus) bool {
	return transitions[from][to]
}

// Slot is a bookable time interval offered by a provider. ProviderID,
// StartTime and EndTime are immutable after creation; only ConsumerID and
// Status change, and only through the repository's conditional updates.
type Slot struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	ConsumerID *uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Status     SlotStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Interval is a candidate slot submitted by a provider.
type Interval struct {
	StartTime time.Time
	EndTime   time.Time
}

// Party is the display identity attached to a slot for API responses.
type Party struct {
	UserID          uuid.UUID
	FirstName       string
	LastName        string
	Specialty       *string
	ProfileImageURL *string
}

// SlotDetail is a slot hydrated with the provider and consumer identities.
type SlotDetail struct {
	Slot
	Provider *Party
	Consumer *Party
}

type Reminder struct {
	ID         uuid.UUID
	SlotID     uuid.UUID
	ConsumerID uuid.UUID
	ProviderID uuid.UUID
	Message    string
	RemindAt   time.Time
	Sent       bool
	CreatedAt  time.Time
}
