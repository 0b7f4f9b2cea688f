package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/divijg19/Physiolink/internal/auth"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	userID := uuid.New()

	var gotID uuid.UUID
	var gotRole string
	handler := AuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = CallerID(r.Context())
		gotRole = CallerRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token passes identity through", func(t *testing.T) {
		token, err := tokens.Issue(userID, "patient")
		if err != nil {
			t.Fatalf("Issue() = %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/appointments/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if gotID != userID {
			t.Errorf("caller id = %s, want %s", gotID, userID)
		}
		if gotRole != "patient" {
			t.Errorf("caller role = %q, want patient", gotRole)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/appointments/me", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		var body ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Error != "missing_token" {
			t.Errorf("error code = %q, want missing_token", body.Error)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/appointments/me", nil)
		req.Header.Set("Authorization", "Bearer junk")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := auth.NewTokenIssuer("other-secret", time.Hour)
		token, err := other.Issue(userID, "patient")
		if err != nil {
			t.Fatalf("Issue() = %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/appointments/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	protected := AuthMiddleware(tokens)(RequireRole("pt")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))

	request := func(t *testing.T, role string) *httptest.ResponseRecorder {
		t.Helper()
		token, err := tokens.Issue(uuid.New(), role)
		if err != nil {
			t.Fatalf("Issue() = %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/appointments/availability", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		return rec
	}

	if rec := request(t, "pt"); rec.Code != http.StatusCreated {
		t.Errorf("pt caller status = %d, want 201", rec.Code)
	}
	if rec := request(t, "patient"); rec.Code != http.StatusForbidden {
		t.Errorf("patient caller status = %d, want 403", rec.Code)
	}
	if rec := request(t, "admin"); rec.Code != http.StatusForbidden {
		t.Errorf("admin caller status = %d, want 403", rec.Code)
	}
}
