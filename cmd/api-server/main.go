package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/divijg19/Physiolink/internal/api"
	"github.com/divijg19/Physiolink/internal/auth"
	"github.com/divijg19/Physiolink/internal/config"
	"github.com/divijg19/Physiolink/internal/db"
	redisclient "github.com/divijg19/Physiolink/internal/redis"
	"github.com/divijg19/Physiolink/internal/review"
	"github.com/divijg19/Physiolink/internal/scheduling"
	"github.com/divijg19/Physiolink/internal/user"
)

const version = "0.1.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s", cfg.Env, cfg.HTTPPort)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connection error: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}()
	log.Println("connected to Redis")

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	locker := redisclient.NewRedisProviderLocker(rdb, cfg.LockTTL)

	userRepo := user.NewPgRepository(pgPool)
	schedRepo := scheduling.NewPgRepository(pgPool)
	reviewRepo := review.NewPgRepository(pgPool)

	router := api.NewRouter(api.RouterConfig{
		Users:      user.NewService(userRepo, tokens),
		Scheduling: scheduling.NewService(schedRepo, locker, cfg),
		Reviews:    review.NewService(reviewRepo, userRepo),
		Tokens:     tokens,
		PgPool:     pgPool,
		Redis:      rdb,
		Env:        cfg.Env,
		Version:    version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down api-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
