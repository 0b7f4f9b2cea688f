package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/divijg19/Physiolink/internal/auth"
	"github.com/divijg19/Physiolink/internal/db"
)

// Every seeded account shares this password so local testing can log in as
// anyone.
const seedPassword = "password123"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	_ = godotenv.Load()

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	if err := seedTherapists(context.Background(), pool, hash, 25); err != nil {
		log.Fatalf("seed therapists: %v", err)
	}
	if err := seedPatients(context.Background(), pool, hash, 200); err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	log.Println("seed complete")
}

func seedTherapists(ctx context.Context, pool *pgxpool.Pool, passwordHash string, count int) error {
	log.Printf("seeding %d therapists", count)

	specialties := []string{
		"Sports Injury",
		"Pediatrics",
		"Orthopedics",
		"Neurological Rehab",
		"Geriatrics",
		"Post-surgical Rehab",
		"Chronic Pain",
		"Vestibular Therapy",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		userID := uuid.New()
		email := fmt.Sprintf("pt%d.%s", i, gofakeit.Email())

		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, role, created_at)
			VALUES ($1, $2, $3, 'pt', now())
		`, userID, email, passwordHash)
		if err != nil {
			return err
		}

		specialty := specialties[gofakeit.Number(0, len(specialties)-1)]
		city := gofakeit.City()
		bio := gofakeit.Sentence(12)

		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (id, user_id, first_name, last_name, specialty, location, bio, is_verified, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		`, uuid.New(), userID, gofakeit.FirstName(), gofakeit.LastName(), specialty, city, bio, gofakeit.Bool())
		if err != nil {
			return err
		}

		if err := seedSlots(ctx, tx, userID); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("therapists seeded")
	return nil
}

// seedSlots lays out a week of hour-long open slots per therapist, starting
// tomorrow morning.
func seedSlots(ctx context.Context, tx pgx.Tx, providerID uuid.UUID) error {
	dayStart := time.Now().Truncate(24 * time.Hour).Add(24 * time.Hour).Add(9 * time.Hour)

	for day := 0; day < 7; day++ {
		slotsPerDay := gofakeit.Number(3, 6)
		for slot := 0; slot < slotsPerDay; slot++ {
			start := dayStart.Add(time.Duration(day)*24*time.Hour + time.Duration(slot)*time.Hour)
			end := start.Add(time.Hour)

			_, err := tx.Exec(ctx, `
				INSERT INTO slots (id, provider_id, start_time, end_time, status, created_at, updated_at)
				VALUES ($1, $2, $3, $4, 'available', now(), now())
			`, uuid.New(), providerID, start, end)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, passwordHash string, count int) error {
	log.Printf("seeding %d patients", count)

	const batchSize = 100

	conditions := []string{
		"Lower Back Pain",
		"Frozen Shoulder",
		"ACL Recovery",
		"Sciatica",
		"Tennis Elbow",
		"Whiplash",
	}

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			userID := uuid.New()
			email := fmt.Sprintf("patient%d.%s", i, gofakeit.Email())

			_, err := tx.Exec(ctx, `
				INSERT INTO users (id, email, password_hash, role, created_at)
				VALUES ($1, $2, $3, 'patient', now())
			`, userID, email, passwordHash)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}

			age := gofakeit.Number(18, 80)
			condition := conditions[gofakeit.Number(0, len(conditions)-1)]

			_, err = tx.Exec(ctx, `
				INSERT INTO profiles (id, user_id, first_name, last_name, age, condition, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, now(), now())
			`, uuid.New(), userID, gofakeit.FirstName(), gofakeit.LastName(), age, condition)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Printf("patients seeded: %d/%d", end, count)
	}

	log.Println("patients seeded")
	return nil
}
