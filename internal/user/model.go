package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RolePatient   = "patient"
	RoleTherapist = "pt"
	RoleAdmin     = "admin"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Profile carries both patient and therapist fields; which ones are filled
// depends on the owning user's role.
type Profile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	FirstName       string
	LastName        string
	Age             *int
	Gender          *string
	Condition       *string
	Goals           *string
	Specialty       *string
	Location        *string
	Bio             *string
	Credentials     *string
	ProfileImageURL *string
	Rating          float64
	IsVerified      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProfileInput is the writable subset of a profile.
type ProfileInput struct {
	FirstName       string
	LastName        string
	Age             *int
	Gender          *string
	Condition       *string
	Goals           *string
	Specialty       *string
	Location        *string
	Bio             *string
	Credentials     *string
	ProfileImageURL *string
}

// TherapistSlot is the trimmed slot shape embedded in discovery responses.
type TherapistSlot struct {
	ID        uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

// TherapistCard is one entry in the discovery listing: the therapist's
// profile plus availability and review counts, and (for the detail view)
// their upcoming open slots.
type TherapistCard struct {
	UserID         uuid.UUID
	Email          string
	Profile        *Profile
	AvailableSlots int
	ReviewCount    int
	UpcomingSlots  []TherapistSlot
}

// TherapistFilter narrows and pages the discovery listing. Date is a
// YYYY-MM-DD day filter on slot start times; RequireAvailable drops
// therapists with no matching open slots.
type TherapistFilter struct {
	Specialty        string
	Location         string
	Date             string
	RequireAvailable bool
	Page             int
	Limit            int
}

type TherapistPage struct {
	Data       []TherapistCard
	Total      int
	Page       int
	TotalPages int
}
