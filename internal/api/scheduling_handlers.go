package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/divijg19/Physiolink/internal/scheduling"
)

func createAvailabilityHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAvailabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		intervals := make([]scheduling.Interval, 0, len(req.Slots))
		for _, s := range req.Slots {
			intervals = append(intervals, scheduling.Interval{
				StartTime: s.StartTime,
				EndTime:   s.EndTime,
			})
		}

		if err := svc.CreateAvailability(r.Context(), CallerID(r.Context()), intervals); err != nil {
			handleCreateAvailabilityError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, MessageResponse{Msg: "Availability created successfully"})
	}
}

func handleCreateAvailabilityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduling.ErrNoSlots):
		writeError(w, http.StatusBadRequest, "no_slots", err.Error())
	case errors.Is(err, scheduling.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "invalid_slot_times", err.Error())
	case errors.Is(err, scheduling.ErrOverlap):
		writeError(w, http.StatusBadRequest, "slot_overlap", err.Error())
	case errors.Is(err, scheduling.ErrDuplicateSlot):
		writeError(w, http.StatusBadRequest, "duplicate_slot", err.Error())
	case errors.Is(err, scheduling.ErrCreateInProgress):
		writeError(w, http.StatusConflict, "availability_busy", err.Error())
	default:
		writeInternalError(w, err)
	}
}

func listAvailabilityHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		therapistID, err := uuid.Parse(chi.URLParam(r, "therapistID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_therapist_id", "therapistID must be a valid UUID")
			return
		}

		slots, err := svc.ListAvailability(r.Context(), therapistID)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		resp := make([]SlotResponse, 0, len(slots))
		for _, s := range slots {
			resp = append(resp, toSlotResponse(s))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func bookSlotHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot_id", "id must be a valid UUID")
			return
		}

		detail, err := svc.BookSlot(r.Context(), slotID, CallerID(r.Context()))
		if err != nil {
			switch {
			case errors.Is(err, scheduling.ErrSlotNotFound):
				writeError(w, http.StatusNotFound, "slot_not_found", err.Error())
			case errors.Is(err, scheduling.ErrSlotUnavailable):
				writeError(w, http.StatusConflict, "slot_unavailable", err.Error())
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, toSlotDetailResponse(detail))
	}
}

func updateStatusHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot_id", "id must be a valid UUID")
			return
		}

		var req UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		detail, err := svc.UpdateStatus(r.Context(), slotID, CallerID(r.Context()), scheduling.SlotStatus(req.Status))
		if err != nil {
			handleUpdateStatusError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toSlotDetailResponse(detail))
	}
}

func handleUpdateStatusError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduling.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
	case errors.Is(err, scheduling.ErrNotSlotOwner):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, scheduling.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "slot_not_found", err.Error())
	case errors.Is(err, scheduling.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	default:
		writeInternalError(w, err)
	}
}

func myScheduleHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := svc.ListSchedule(r.Context(), CallerID(r.Context()), CallerRole(r.Context()))
		if err != nil {
			writeInternalError(w, err)
			return
		}

		resp := make([]SlotResponse, 0, len(details))
		for i := range details {
			resp = append(resp, toSlotDetailResponse(&details[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func myRemindersHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reminders, err := svc.ListReminders(r.Context(), CallerID(r.Context()))
		if err != nil {
			writeInternalError(w, err)
			return
		}

		resp := make([]ReminderResponse, 0, len(reminders))
		for _, rem := range reminders {
			resp = append(resp, toReminderResponse(rem))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
