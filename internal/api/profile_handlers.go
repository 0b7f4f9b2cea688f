package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/divijg19/Physiolink/internal/user"
)

func getMyProfileHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetProfile(r.Context(), CallerID(r.Context()))
		if err != nil {
			if errors.Is(err, user.ErrProfileNotFound) {
				writeError(w, http.StatusNotFound, "profile_not_found", err.Error())
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func saveMyProfileHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.SaveProfile(r.Context(), CallerID(r.Context()), user.ProfileInput{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Age:             req.Age,
			Gender:          req.Gender,
			Condition:       req.Condition,
			Goals:           req.Goals,
			Specialty:       req.Specialty,
			Location:        req.Location,
			Bio:             req.Bio,
			Credentials:     req.Credentials,
			ProfileImageURL: req.ProfileImageURL,
		})
		if err != nil {
			if errors.Is(err, user.ErrNameRequired) {
				writeError(w, http.StatusBadRequest, "invalid_profile", err.Error())
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}
