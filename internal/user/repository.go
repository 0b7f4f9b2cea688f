package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("an account with this email already exists")
	ErrProfileNotFound   = errors.New("there is no profile for this user")
	ErrTherapistNotFound = errors.New("therapist not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	CreateUser(ctx context.Context, u User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// UpsertProfile creates the caller's profile or updates it in place,
	// keyed by user id.
	UpsertProfile(ctx context.Context, p Profile) (*Profile, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	SetProfileRating(ctx context.Context, userID uuid.UUID, rating float64) error

	ListTherapists(ctx context.Context, filter TherapistFilter) (*TherapistPage, error)
	GetTherapistByID(ctx context.Context, id uuid.UUID, date string) (*TherapistCard, error)
}
