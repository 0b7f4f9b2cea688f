package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanUser(row pgx.Row) (*User, error) {
	var u User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

const profileColumns = `id, user_id, first_name, last_name, age, gender, condition, goals,
	specialty, location, bio, credentials, profile_image_url, rating, is_verified, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Age,
		&p.Gender,
		&p.Condition,
		&p.Goals,
		&p.Specialty,
		&p.Location,
		&p.Bio,
		&p.Credentials,
		&p.ProfileImageURL,
		&p.Rating,
		&p.IsVerified,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &p, nil
}

// Interface methods

func (r *PgRepository) CreateUser(ctx context.Context, u User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, now())
	`, u.ID, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PgRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *PgRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *PgRepository) UpsertProfile(ctx context.Context, p Profile) (*Profile, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (id, user_id, first_name, last_name, age, gender, condition, goals,
			specialty, location, bio, credentials, profile_image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			condition = EXCLUDED.condition,
			goals = EXCLUDED.goals,
			specialty = EXCLUDED.specialty,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			credentials = EXCLUDED.credentials,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = now()
		RETURNING `+profileColumns+`
	`, p.ID, p.UserID, p.FirstName, p.LastName, p.Age, p.Gender, p.Condition, p.Goals,
		p.Specialty, p.Location, p.Bio, p.Credentials, p.ProfileImageURL)

	return scanProfile(row)
}

func (r *PgRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE user_id = $1
	`, userID)
	return scanProfile(row)
}

func (r *PgRepository) SetProfileRating(ctx context.Context, userID uuid.UUID, rating float64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET rating = $2,
		    updated_at = now()
		WHERE user_id = $1
	`, userID, rating)
	if err != nil {
		return fmt.Errorf("update profile rating: %w", err)
	}
	return nil
}

// therapistQuery drives discovery: therapists joined with their profile plus
// per-therapist counts of matching open slots and reviews. The window count
// avoids a second round trip for pagination totals.
const therapistQuery = `
	SELECT u.id, u.email,
	       p.id, p.user_id, p.first_name, p.last_name, p.age, p.gender, p.condition, p.goals,
	       p.specialty, p.location, p.bio, p.credentials, p.profile_image_url, p.rating, p.is_verified,
	       p.created_at, p.updated_at,
	       COALESCE(av.slot_count, 0),
	       COALESCE(rv.review_count, 0),
	       count(*) OVER ()
	FROM users u
	LEFT JOIN profiles p ON p.user_id = u.id
	LEFT JOIN LATERAL (
		SELECT count(*) AS slot_count
		FROM slots s
		WHERE s.provider_id = u.id
		  AND s.status = 'available'
		  AND ($3 = '' OR to_char(s.start_time, 'YYYY-MM-DD') = $3)
	) av ON true
	LEFT JOIN LATERAL (
		SELECT count(*) AS review_count
		FROM reviews r
		WHERE r.therapist_id = u.id
	) rv ON true
	WHERE u.role = 'pt'
	  AND ($1 = '' OR p.specialty ILIKE '%' || $1 || '%')
	  AND ($2 = '' OR p.location ILIKE '%' || $2 || '%')
	  AND (NOT $4::boolean OR COALESCE(av.slot_count, 0) > 0)
`

func (r *PgRepository) ListTherapists(ctx context.Context, filter TherapistFilter) (*TherapistPage, error) {
	offset := (filter.Page - 1) * filter.Limit

	rows, err := r.pool.Query(ctx, therapistQuery+`
		ORDER BY u.created_at DESC
		LIMIT $5 OFFSET $6
	`, filter.Specialty, filter.Location, filter.Date, filter.RequireAvailable, filter.Limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []TherapistCard
	total := 0
	for rows.Next() {
		card, rowTotal, err := scanTherapistCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
		total = rowTotal
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	return &TherapistPage{
		Data:       cards,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages,
	}, nil
}

func (r *PgRepository) GetTherapistByID(ctx context.Context, id uuid.UUID, date string) (*TherapistCard, error) {
	row := r.pool.QueryRow(ctx, therapistQuery+`
		AND u.id = $5
	`, "", "", date, false, id)

	card, _, err := scanTherapistCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTherapistNotFound
		}
		return nil, err
	}

	slots, err := r.listUpcomingSlots(ctx, id, date)
	if err != nil {
		return nil, err
	}
	card.UpcomingSlots = slots

	return card, nil
}

func (r *PgRepository) listUpcomingSlots(ctx context.Context, therapistID uuid.UUID, date string) ([]TherapistSlot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, start_time, end_time
		FROM slots
		WHERE provider_id = $1
		  AND status = 'available'
		  AND ($2 = '' OR to_char(start_time, 'YYYY-MM-DD') = $2)
		ORDER BY start_time ASC
	`, therapistID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []TherapistSlot
	for rows.Next() {
		var s TherapistSlot
		if err := rows.Scan(&s.ID, &s.StartTime, &s.EndTime); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func scanTherapistCard(row pgx.Row) (*TherapistCard, int, error) {
	var card TherapistCard
	var total int

	var profileID, profileUserID *uuid.UUID
	var firstName, lastName *string
	var age *int
	var gender, condition, goals, specialty, location, bio, credentials, imageURL *string
	var rating *float64
	var isVerified *bool
	var createdAt, updatedAt *time.Time

	err := row.Scan(
		&card.UserID,
		&card.Email,
		&profileID,
		&profileUserID,
		&firstName,
		&lastName,
		&age,
		&gender,
		&condition,
		&goals,
		&specialty,
		&location,
		&bio,
		&credentials,
		&imageURL,
		&rating,
		&isVerified,
		&createdAt,
		&updatedAt,
		&card.AvailableSlots,
		&card.ReviewCount,
		&total,
	)
	if err != nil {
		return nil, 0, err
	}

	if profileID != nil {
		card.Profile = &Profile{
			ID:              *profileID,
			UserID:          *profileUserID,
			FirstName:       derefStr(firstName),
			LastName:        derefStr(lastName),
			Age:             age,
			Gender:          gender,
			Condition:       condition,
			Goals:           goals,
			Specialty:       specialty,
			Location:        location,
			Bio:             bio,
			Credentials:     credentials,
			ProfileImageURL: imageURL,
			Rating:          derefFloat(rating),
			IsVerified:      isVerified != nil && *isVerified,
			CreatedAt:       derefTime(createdAt),
			UpdatedAt:       derefTime(updatedAt),
		}
	}

	return &card, total, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
