package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/divijg19/Physiolink/internal/user"
)

func registerHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		u, token, err := svc.Register(r.Context(), req.Email, req.Password, req.Role)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrInvalidRole),
				errors.Is(err, user.ErrInvalidCredentials):
				writeError(w, http.StatusBadRequest, "invalid_registration", err.Error())
			case errors.Is(err, user.ErrEmailTaken):
				writeError(w, http.StatusConflict, "email_taken", err.Error())
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, AuthResponse{
			Token: token,
			User:  UserResponse{ID: u.ID, Email: u.Email, Role: u.Role},
		})
	}
}

func loginHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		u, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, user.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{
			Token: token,
			User:  UserResponse{ID: u.ID, Email: u.Email, Role: u.Role},
		})
	}
}
