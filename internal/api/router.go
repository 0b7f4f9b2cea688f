package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/divijg19/Physiolink/internal/auth"
	"github.com/divijg19/Physiolink/internal/review"
	"github.com/divijg19/Physiolink/internal/scheduling"
	"github.com/divijg19/Physiolink/internal/user"
)

type RouterConfig struct {
	Users      *user.Service
	Scheduling *scheduling.Service
	Reviews    *review.Service
	Tokens     *auth.TokenIssuer
	PgPool     *pgxpool.Pool
	Redis      *redis.Client
	Env        string
	Version    string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Public auth endpoints
	r.Post("/auth/register", registerHandler(cfg.Users))
	r.Post("/auth/login", loginHandler(cfg.Users))

	// Everything else requires a bearer token
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Tokens))

		r.Get("/profile/me", getMyProfileHandler(cfg.Users))
		r.Post("/profile/me", saveMyProfileHandler(cfg.Users))

		r.Get("/therapists", listTherapistsHandler(cfg.Users))
		r.Get("/therapists/{id}", getTherapistHandler(cfg.Users))

		r.Get("/appointments/availability/{therapistID}", listAvailabilityHandler(cfg.Scheduling))
		r.Get("/appointments/me", myScheduleHandler(cfg.Scheduling))
		r.Get("/reminders/me", myRemindersHandler(cfg.Scheduling))

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(user.RoleTherapist))
			r.Post("/appointments/availability", createAvailabilityHandler(cfg.Scheduling))
			r.Patch("/appointments/{id}/status", updateStatusHandler(cfg.Scheduling))
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(user.RolePatient))
			r.Post("/appointments/{id}/book", bookSlotHandler(cfg.Scheduling))
			r.Post("/reviews", createReviewHandler(cfg.Reviews))
		})

		r.Get("/reviews/{therapistID}", listReviewsHandler(cfg.Reviews))
	})

	return r
}
