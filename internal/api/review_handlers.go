package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/divijg19/Physiolink/internal/review"
)

func createReviewHandler(svc *review.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		therapistID, err := uuid.Parse(req.TherapistID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_therapist_id", "therapist_id must be a valid UUID")
			return
		}

		detail, err := svc.Create(r.Context(), CallerID(r.Context()), therapistID, req.Rating, req.Comment)
		if err != nil {
			switch {
			case errors.Is(err, review.ErrInvalidRating):
				writeError(w, http.StatusBadRequest, "invalid_rating", err.Error())
			case errors.Is(err, review.ErrReviewNotAllowed):
				writeError(w, http.StatusForbidden, "review_not_allowed", err.Error())
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toReviewResponse(detail))
	}
}

func listReviewsHandler(svc *review.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		therapistID, err := uuid.Parse(chi.URLParam(r, "therapistID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_therapist_id", "therapistID must be a valid UUID")
			return
		}

		reviews, err := svc.ListForTherapist(r.Context(), therapistID)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		resp := make([]ReviewResponse, 0, len(reviews))
		for i := range reviews {
			resp = append(resp, toReviewResponse(&reviews[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
