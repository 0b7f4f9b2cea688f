package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/divijg19/Physiolink/internal/user"
)

func listTherapistsHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		page, _ := strconv.Atoi(q.Get("page"))
		limit, _ := strconv.Atoi(q.Get("limit"))

		filter := user.TherapistFilter{
			Specialty:        q.Get("specialty"),
			Location:         q.Get("location"),
			Date:             q.Get("date"),
			RequireAvailable: q.Get("available") == "true",
			Page:             page,
			Limit:            limit,
		}

		result, err := svc.ListTherapists(r.Context(), filter)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		resp := TherapistPageResponse{
			Data:       make([]TherapistResponse, 0, len(result.Data)),
			Total:      result.Total,
			Page:       result.Page,
			TotalPages: result.TotalPages,
		}
		for i := range result.Data {
			resp.Data = append(resp.Data, toTherapistResponse(&result.Data[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func getTherapistHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_therapist_id", "id must be a valid UUID")
			return
		}

		card, err := svc.GetTherapist(r.Context(), id, r.URL.Query().Get("date"))
		if err != nil {
			if errors.Is(err, user.ErrTherapistNotFound) {
				writeError(w, http.StatusNotFound, "therapist_not_found", err.Error())
				return
			}
			writeInternalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTherapistResponse(card))
	}
}
