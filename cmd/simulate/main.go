package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/divijg19/Physiolink/internal/auth"
	"github.com/divijg19/Physiolink/internal/config"
	"github.com/divijg19/Physiolink/internal/db"
)

// The simulator hammers a handful of open slots with concurrent booking
// requests from distinct patients and verifies that each slot is won exactly
// once: per slot, one 200 and the rest 409.

type SimConfig struct {
	APIBaseURL  string
	Contenders  int
	SlotLimit   int
	PostgresDSN string
	JWTSecret   string
}

type slotResult struct {
	SlotID    uuid.UUID
	Successes int64
	Conflicts int64
	Errors    int64
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	baseCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cfg := SimConfig{
		APIBaseURL:  getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Contenders:  getInt("SIM_CONTENDERS", 20),
		SlotLimit:   getInt("SIM_SLOT_LIMIT", 10),
		PostgresDSN: baseCfg.PostgresDSN,
		JWTSecret:   baseCfg.JWTSecret,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pgPool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pgPool.Close()

	patients, err := loadIDs(ctx, pgPool, `SELECT id FROM users WHERE role = 'patient' LIMIT $1`, cfg.Contenders)
	if err != nil {
		log.Fatalf("load patients: %v", err)
	}
	slots, err := loadIDs(ctx, pgPool, `SELECT id FROM slots WHERE status = 'available' AND start_time > now() LIMIT $1`, cfg.SlotLimit)
	if err != nil {
		log.Fatalf("load slots: %v", err)
	}
	if len(patients) < 2 || len(slots) == 0 {
		log.Fatalf("need at least 2 patients and 1 open slot, have %d/%d (run seed first)", len(patients), len(slots))
	}

	log.Printf("loaded %d patients, %d open slots", len(patients), len(slots))

	// Mint one token per patient directly; the simulator talks to the same
	// secret the server uses.
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Hour)
	bearers := make([]string, len(patients))
	for i, id := range patients {
		t, err := tokens.Issue(id, "patient")
		if err != nil {
			log.Fatalf("issue token: %v", err)
		}
		bearers[i] = t
	}

	client := &http.Client{Timeout: 10 * time.Second}

	var broken int
	for _, slotID := range slots {
		res := contendForSlot(client, cfg.APIBaseURL, slotID, bearers)
		ok := res.Successes == 1 && res.Errors == 0
		if !ok {
			broken++
		}
		log.Printf("slot=%s successes=%d conflicts=%d errors=%d ok=%t",
			res.SlotID, res.Successes, res.Conflicts, res.Errors, ok)
	}

	if broken > 0 {
		log.Fatalf("FAIL: %d/%d slots violated the single-winner property", broken, len(slots))
	}
	log.Printf("PASS: all %d slots were booked exactly once", len(slots))
}

func contendForSlot(client *http.Client, baseURL string, slotID uuid.UUID, bearers []string) slotResult {
	res := slotResult{SlotID: slotID}

	var wg sync.WaitGroup
	start := make(chan struct{})

	for _, bearer := range bearers {
		wg.Add(1)
		go func(bearer string) {
			defer wg.Done()
			<-start

			status, err := bookSlot(client, baseURL, slotID, bearer)
			switch {
			case err != nil:
				atomic.AddInt64(&res.Errors, 1)
			case status == http.StatusOK:
				atomic.AddInt64(&res.Successes, 1)
			case status == http.StatusConflict:
				atomic.AddInt64(&res.Conflicts, 1)
			default:
				atomic.AddInt64(&res.Errors, 1)
			}
		}(bearer)
	}

	close(start)
	wg.Wait()

	return res
}

func bookSlot(client *http.Client, baseURL string, slotID uuid.UUID, bearer string) (int, error) {
	url := fmt.Sprintf("%s/appointments/%s/book", baseURL, slotID)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(nil))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func loadIDs(ctx context.Context, pool *pgxpool.Pool, query string, limit int) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
