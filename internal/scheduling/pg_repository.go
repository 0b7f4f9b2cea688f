package scheduling

import (
	"context"
	"errors"
	"fmt"

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

const slotColumns = `id, provider_id, consumer_id, start_time, end_time, status, created_at, updated_at`

func scanSlot(row pgx.Row) (*Slot, error) {
	var s Slot
	var consumer *uuid.UUID

	err := row.Scan(
		&s.ID,
		&s.ProviderID,
		&consumer,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	s.ConsumerID = consumer
	return &s, nil
}

func scanReminder(row pgx.Row) (*Reminder, error) {
	var r Reminder

	err := row.Scan(
		&r.ID,
		&r.SlotID,
		&r.ConsumerID,
		&r.ProviderID,
		&r.Message,
		&r.RemindAt,
		&r.Sent,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// detailColumns joins the provider and consumer profiles onto the slot so one
// query hydrates a SlotDetail. Both joins are LEFT: a consumer is absent until
// booked and a freshly registered user may not have a profile yet.
const detailQuery = `
	SELECT s.id, s.provider_id, s.consumer_id, s.start_time, s.end_time, s.status, s.created_at, s.updated_at,
	       pp.first_name, pp.last_name, pp.specialty, pp.profile_image_url,
	       cp.first_name, cp.last_name, cp.specialty, cp.profile_image_url
	FROM slots s
	LEFT JOIN profiles pp ON pp.user_id = s.provider_id
	LEFT JOIN profiles cp ON cp.user_id = s.consumer_id
`

func scanSlotDetail(row pgx.Row) (*SlotDetail, error) {
	var d SlotDetail
	var consumer *uuid.UUID
	var pFirst, pLast *string
	var pSpecialty, pImage *string
	var cFirst, cLast *string
	var cSpecialty, cImage *string

	err := row.Scan(
		&d.ID,
		&d.ProviderID,
		&consumer,
		&d.StartTime,
		&d.EndTime,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
		&pFirst,
		&pLast,
		&pSpecialty,
		&pImage,
		&cFirst,
		&cLast,
		&cSpecialty,
		&cImage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	d.ConsumerID = consumer
	if pFirst != nil {
		d.Provider = &Party{
			UserID:          d.ProviderID,
			FirstName:       *pFirst,
			LastName:        deref(pLast),
			Specialty:       pSpecialty,
			ProfileImageURL: pImage,
		}
	}
	if consumer != nil && cFirst != nil {
		d.Consumer = &Party{
			UserID:          *consumer,
			FirstName:       *cFirst,
			LastName:        deref(cLast),
			Specialty:       cSpecialty,
			ProfileImageURL: cImage,
		}
	}

	return &d, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Interface methods

func (r *PgRepository) GetSlotByID(ctx context.Context, id uuid.UUID) (*Slot, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+slotColumns+`
		FROM slots
		WHERE id = $1
	`, id)
	return scanSlot(row)
}

func (r *PgRepository) GetSlotDetail(ctx context.Context, id uuid.UUID) (*SlotDetail, error) {
	row := r.pool.QueryRow(ctx, detailQuery+`WHERE s.id = $1`, id)
	return scanSlotDetail(row)
}

func (r *PgRepository) ListSlotsByProvider(ctx context.Context, providerID uuid.UUID) ([]Slot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+slotColumns+`
		FROM slots
		WHERE provider_id = $1
		ORDER BY start_time ASC
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSlots(rows)
}

func (r *PgRepository) CreateSlots(ctx context.Context, slots []Slot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create slots: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range slots {
		_, err := tx.Exec(ctx, `
			INSERT INTO slots (id, provider_id, start_time, end_time, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
		`, s.ID, s.ProviderID, s.StartTime, s.EndTime, s.Status)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return ErrDuplicateSlot
			}
			return fmt.Errorf("insert slot: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create slots: %w", err)
	}
	return nil
}

func (r *PgRepository) ClaimSlot(ctx context.Context, slotID, consumerID uuid.UUID) (*Slot, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE slots
		SET consumer_id = $2,
		    status = 'booked',
		    updated_at = now()
		WHERE id = $1
		  AND status = 'available'
		RETURNING `+slotColumns+`
	`, slotID, consumerID)

	return scanSlot(row)
}

func (r *PgRepository) TransitionSlot(ctx context.Context, slotID uuid.UUID, from, to SlotStatus) (*Slot, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE slots
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
		  AND status = $3
		RETURNING `+slotColumns+`
	`, slotID, to, from)

	return scanSlot(row)
}

func (r *PgRepository) ListAvailableSlots(ctx context.Context, providerID uuid.UUID) ([]Slot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+slotColumns+`
		FROM slots
		WHERE provider_id = $1
		  AND status = 'available'
		ORDER BY start_time ASC
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSlots(rows)
}

func (r *PgRepository) ListProviderSchedule(ctx context.Context, providerID uuid.UUID) ([]SlotDetail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+`
		WHERE s.provider_id = $1
		ORDER BY s.start_time ASC
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSlotDetails(rows)
}

func (r *PgRepository) ListConsumerSchedule(ctx context.Context, consumerID uuid.UUID) ([]SlotDetail, error) {
	rows, err := r.pool.Query(ctx, detailQuery+`
		WHERE s.consumer_id = $1
		ORDER BY s.start_time ASC
	`, consumerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSlotDetails(rows)
}

func (r *PgRepository) CreateReminder(ctx context.Context, rem Reminder) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO reminders (id, slot_id, consumer_id, provider_id, message, remind_at, sent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, now())
		ON CONFLICT (slot_id) DO NOTHING
	`, rem.ID, rem.SlotID, rem.ConsumerID, rem.ProviderID, rem.Message, rem.RemindAt)
	if err != nil {
		return false, fmt.Errorf("insert reminder: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *PgRepository) ListRemindersByConsumer(ctx context.Context, consumerID uuid.UUID) ([]Reminder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, slot_id, consumer_id, provider_id, message, remind_at, sent, created_at
		FROM reminders
		WHERE consumer_id = $1
		ORDER BY remind_at ASC
	`, consumerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rem)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func collectSlots(rows pgx.Rows) ([]Slot, error) {
	var result []Slot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func collectSlotDetails(rows pgx.Rows) ([]SlotDetail, error) {
	var result []SlotDetail
	for rows.Next() {
		d, err := scanSlotDetail(rows)
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
