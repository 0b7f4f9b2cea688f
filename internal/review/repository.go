package review

import (
	"context"

	"github.com/google/uuid"
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	// HasConfirmedAppointment reports whether the patient has at least one
	// confirmed slot with the therapist; only such patients may review.
	HasConfirmedAppointment(ctx context.Context, therapistID, patientID uuid.UUID) (bool, error)

	CreateReview(ctx context.Context, rev Review) error
	GetReviewDetail(ctx context.Context, id uuid.UUID) (*ReviewDetail, error)
	AverageRating(ctx context.Context, therapistID uuid.UUID) (float64, error)
	ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]ReviewDetail, error)
}

// RatingUpdater writes the recomputed average onto the therapist's profile.
// Satisfied by the user package's repository.
type RatingUpdater interface {
	SetProfileRating(ctx context.Context, userID uuid.UUID, rating float64) error
}
