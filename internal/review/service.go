package review

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
)

var (
	ErrReviewNotAllowed = errors.New("only patients with a confirmed appointment can leave a review")
	ErrInvalidRating    = errors.New("rating must be between 0 and 5")
)

type Service struct {
	repo    Repository
	ratings RatingUpdater
}

func NewService(repo Repository, ratings RatingUpdater) *Service {
	return &Service{
		repo:    repo,
		ratings: ratings,
	}
}

// Create records a patient's review of a therapist and rolls the new average
// rating onto the therapist's profile. The confirmed-appointment guard keeps
// drive-by reviews out.
func (s *Service) Create(ctx context.Context, patientID, therapistID uuid.UUID, rating float64, comment string) (*ReviewDetail, error) {
	if rating < 0 || rating > 5 {
		return nil, ErrInvalidRating
	}

	allowed, err := s.repo.HasConfirmedAppointment(ctx, therapistID, patientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrReviewNotAllowed
	}

	rev := Review{
		ID:          uuid.New(),
		TherapistID: therapistID,
		PatientID:   patientID,
		Rating:      rating,
		Comment:     comment,
	}

	if err := s.repo.CreateReview(ctx, rev); err != nil {
		return nil, err
	}

	avg, err := s.repo.AverageRating(ctx, therapistID)
	if err != nil {
		// The review exists; a stale profile rating heals on the next review.
		log.Printf("failed to compute average rating for therapist %s: %v", therapistID, err)
	} else if err := s.ratings.SetProfileRating(ctx, therapistID, avg); err != nil {
		log.Printf("failed to update profile rating for therapist %s: %v", therapistID, err)
	}

	detail, err := s.repo.GetReviewDetail(ctx, rev.ID)
	if err != nil {
		return nil, fmt.Errorf("load created review: %w", err)
	}
	return detail, nil
}

// ListForTherapist returns a therapist's reviews, newest first.
func (s *Service) ListForTherapist(ctx context.Context, therapistID uuid.UUID) ([]ReviewDetail, error) {
	reviews, err := s.repo.ListByTherapist(ctx, therapistID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
