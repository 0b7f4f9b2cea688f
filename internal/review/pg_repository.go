package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrReviewNotFound = errors.New("review not found")

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const detailQuery = `
	SELECT r.id, r.therapist_id, r.patient_id, r.rating, r.comment, r.created_at,
	       COALESCE(p.first_name, ''), COALESCE(p.last_name, ''), p.profile_image_url
	FROM reviews r
	LEFT JOIN profiles p ON p.user_id = r.patient_id
`

func scanReviewDetail(row pgx.Row) (*ReviewDetail, error) {
	var d ReviewDetail

	err := row.Scan(
		&d.ID,
		&d.TherapistID,
		&d.PatientID,
		&d.Rating,
		&d.Comment,
		&d.CreatedAt,
		&d.PatientFirstName,
		&d.PatientLastName,
		&d.PatientImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	return &d, nil
}

func (r *PgRepository) HasConfirmedAppointment(ctx context.Context, therapistID, patientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM slots
			WHERE provider_id = $1
			  AND consumer_id = $2
			  AND status = 'confirmed'
		)
	`, therapistID, patientID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check confirmed appointment: %w", err)
	}
	return exists, nil
}

func (r *PgRepository) CreateReview(ctx context.Context, rev Review) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reviews (id, therapist_id, patient_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
	`, rev.ID, rev.TherapistID, rev.PatientID, rev.Rating, rev.Comment)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *PgRepository) GetReviewDetail(ctx context.Context, id uuid.UUID) (*ReviewDetail, error) {
	row := r.pool.QueryRow(ctx, detailQuery+`WHERE r.id = $1`, id)
	return scanReviewDetail(row)
}

func (r *PgRepository) AverageRating(ctx context.Context, therapistID uuid.UUID) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0)
		FROM reviews
		WHERE therapist_id = $1
	`, therapistID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	return avg, nil
}

func (r *PgRepository) ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]ReviewDetail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+`
		WHERE r.therapist_id = $1
		ORDER BY r.created_at DESC
	`, therapistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ReviewDetail
	for rows.Next() {
		d, err := scanReviewDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
