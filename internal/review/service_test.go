package review

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
)

type fakeRepo struct {
	confirmed map[uuid.UUID]map[uuid.UUID]bool // therapist -> patient
	reviews   map[uuid.UUID]Review
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		confirmed: make(map[uuid.UUID]map[uuid.UUID]bool),
		reviews:   make(map[uuid.UUID]Review),
	}
}

func (f *fakeRepo) allow(therapistID, patientID uuid.UUID) {
	if f.confirmed[therapistID] == nil {
		f.confirmed[therapistID] = make(map[uuid.UUID]bool)
	}
	f.confirmed[therapistID][patientID] = true
}

func (f *fakeRepo) HasConfirmedAppointment(ctx context.Context, therapistID, patientID uuid.UUID) (bool, error) {
	return f.confirmed[therapistID][patientID], nil
}

func (f *fakeRepo) CreateReview(ctx context.Context, rev Review) error {
	f.reviews[rev.ID] = rev
	return nil
}

func (f *fakeRepo) GetReviewDetail(ctx context.Context, id uuid.UUID) (*ReviewDetail, error) {
	rev, ok := f.reviews[id]
	if !ok {
		return nil, errors.New("review not found")
	}
	return &ReviewDetail{Review: rev, PatientFirstName: "Anna", PatientLastName: "Lee"}, nil
}

func (f *fakeRepo) AverageRating(ctx context.Context, therapistID uuid.UUID) (float64, error) {
	var sum float64
	var n int
	for _, rev := range f.reviews {
		if rev.TherapistID == therapistID {
			sum += rev.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func (f *fakeRepo) ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]ReviewDetail, error) {
	var out []ReviewDetail
	for _, rev := range f.reviews {
		if rev.TherapistID == therapistID {
			out = append(out, ReviewDetail{Review: rev})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type ratingRecorder struct {
	calls  int
	userID uuid.UUID
	rating float64
	err    error
}

func (r *ratingRecorder) SetProfileRating(ctx context.Context, userID uuid.UUID, rating float64) error {
	r.calls++
	r.userID = userID
	r.rating = rating
	return r.err
}

func TestCreateReview(t *testing.T) {
	therapist := uuid.New()
	patient := uuid.New()

	t.Run("records the review and rolls up the average", func(t *testing.T) {
		repo := newFakeRepo()
		repo.allow(therapist, patient)
		ratings := &ratingRecorder{}
		svc := NewService(repo, ratings)

		detail, err := svc.Create(context.Background(), patient, therapist, 4, "great session")
		if err != nil {
			t.Fatalf("Create() = %v, want nil", err)
		}
		if detail.Rating != 4 || detail.Comment != "great session" {
			t.Errorf("detail = %v/%q, want 4/great session", detail.Rating, detail.Comment)
		}
		if detail.PatientFirstName == "" {
			t.Error("detail missing reviewer identity")
		}

		if ratings.calls != 1 {
			t.Fatalf("rating rollup called %d times, want 1", ratings.calls)
		}
		if ratings.userID != therapist {
			t.Errorf("rollup target = %s, want therapist %s", ratings.userID, therapist)
		}
		if ratings.rating != 4 {
			t.Errorf("rolled-up rating = %v, want 4", ratings.rating)
		}
	})

	t.Run("average covers all of the therapist's reviews", func(t *testing.T) {
		repo := newFakeRepo()
		repo.allow(therapist, patient)
		other := uuid.New()
		repo.allow(therapist, other)
		ratings := &ratingRecorder{}
		svc := NewService(repo, ratings)

		if _, err := svc.Create(context.Background(), patient, therapist, 5, ""); err != nil {
			t.Fatalf("first Create() = %v", err)
		}
		if _, err := svc.Create(context.Background(), other, therapist, 3, ""); err != nil {
			t.Fatalf("second Create() = %v", err)
		}
		if ratings.rating != 4 {
			t.Errorf("rolled-up rating = %v, want 4", ratings.rating)
		}
	})

	t.Run("rating out of range", func(t *testing.T) {
		repo := newFakeRepo()
		repo.allow(therapist, patient)
		svc := NewService(repo, &ratingRecorder{})

		for _, rating := range []float64{-0.5, 5.5} {
			if _, err := svc.Create(context.Background(), patient, therapist, rating, ""); !errors.Is(err, ErrInvalidRating) {
				t.Errorf("Create(rating=%v) = %v, want ErrInvalidRating", rating, err)
			}
		}
		if len(repo.reviews) != 0 {
			t.Errorf("%d reviews stored, want 0", len(repo.reviews))
		}
	})

	t.Run("no confirmed appointment", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, &ratingRecorder{})

		if _, err := svc.Create(context.Background(), patient, therapist, 4, ""); !errors.Is(err, ErrReviewNotAllowed) {
			t.Fatalf("Create() = %v, want ErrReviewNotAllowed", err)
		}
		if len(repo.reviews) != 0 {
			t.Errorf("%d reviews stored, want 0", len(repo.reviews))
		}
	})

	t.Run("rollup failure does not fail the review", func(t *testing.T) {
		repo := newFakeRepo()
		repo.allow(therapist, patient)
		ratings := &ratingRecorder{err: errors.New("profiles down")}
		svc := NewService(repo, ratings)

		detail, err := svc.Create(context.Background(), patient, therapist, 4, "")
		if err != nil {
			t.Fatalf("Create() = %v, want nil despite rollup failure", err)
		}
		if detail == nil {
			t.Fatal("Create() returned no detail")
		}
	})
}

func TestListForTherapist(t *testing.T) {
	repo := newFakeRepo()
	therapist := uuid.New()
	patient := uuid.New()
	repo.allow(therapist, patient)
	svc := NewService(repo, &ratingRecorder{})

	if _, err := svc.Create(context.Background(), patient, therapist, 5, "a"); err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if _, err := svc.Create(context.Background(), patient, therapist, 3, "b"); err != nil {
		t.Fatalf("Create() = %v", err)
	}

	reviews, err := svc.ListForTherapist(context.Background(), therapist)
	if err != nil {
		t.Fatalf("ListForTherapist() = %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("got %d reviews, want 2", len(reviews))
	}

	other, err := svc.ListForTherapist(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ListForTherapist(other) = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("got %d reviews for unknown therapist, want 0", len(other))
	}
}
