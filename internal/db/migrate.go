package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied in full by cmd/migrate. Statements are idempotent so the
// command can be re-run safely.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL CHECK (role IN ('patient', 'pt', 'admin')),
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS profiles (
    id                UUID PRIMARY KEY,
    user_id           UUID NOT NULL UNIQUE REFERENCES users(id),
    first_name        TEXT NOT NULL,
    last_name         TEXT NOT NULL,
    age               INT,
    gender            TEXT,
    condition         TEXT,
    goals             TEXT,
    specialty         TEXT,
    location          TEXT,
    bio               TEXT,
    credentials       TEXT,
    profile_image_url TEXT,
    rating            DOUBLE PRECISION NOT NULL DEFAULT 0,
    is_verified       BOOLEAN NOT NULL DEFAULT false,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS slots (
    id          UUID PRIMARY KEY,
    provider_id UUID NOT NULL REFERENCES users(id),
    consumer_id UUID REFERENCES users(id),
    start_time  TIMESTAMPTZ NOT NULL,
    end_time    TIMESTAMPTZ NOT NULL,
    status      TEXT NOT NULL DEFAULT 'available'
                CHECK (status IN ('available', 'booked', 'confirmed', 'rejected', 'cancelled')),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    CHECK (start_time < end_time)
);

CREATE UNIQUE INDEX IF NOT EXISTS slots_provider_start_uq ON slots (provider_id, start_time);
CREATE INDEX IF NOT EXISTS slots_provider_status_idx ON slots (provider_id, status);
CREATE INDEX IF NOT EXISTS slots_consumer_idx ON slots (consumer_id);

CREATE TABLE IF NOT EXISTS reminders (
    id          UUID PRIMARY KEY,
    slot_id     UUID NOT NULL UNIQUE REFERENCES slots(id),
    consumer_id UUID NOT NULL REFERENCES users(id),
    provider_id UUID NOT NULL REFERENCES users(id),
    message     TEXT NOT NULL DEFAULT '',
    remind_at   TIMESTAMPTZ NOT NULL,
    sent        BOOLEAN NOT NULL DEFAULT false,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS reminders_consumer_idx ON reminders (consumer_id);

CREATE TABLE IF NOT EXISTS reviews (
    id           UUID PRIMARY KEY,
    therapist_id UUID NOT NULL REFERENCES users(id),
    patient_id   UUID NOT NULL REFERENCES users(id),
    rating       DOUBLE PRECISION NOT NULL CHECK (rating >= 0 AND rating <= 5),
    comment      TEXT NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS reviews_therapist_idx ON reviews (therapist_id);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
