package http

import (
	"net/http"
	"time"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"
	"driveshare-backend/internal/utils"
)

type CalendarHandler struct {
	calendarSvc service.CalendarService
	availSvc    service.AvailabilityService
}

func NewCalendarHandler(calendarSvc service.CalendarService, availSvc service.AvailabilityService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc, availSvc: availSvc}
}

// Get serves GET /vehicles/{id}/calendar?month=yyyy-mm. The month defaults
// to the current one.
func (h *CalendarHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	month := utils.Day(time.Now())
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err = utils.ParseMonth(raw)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	entries, err := h.calendarSvc.MonthCalendar(r.Context(), vehicleID, month, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": entries})
}

type commitRequest struct {
	Intents map[string]domain.EditIntent `json:"intents"`
}

// Commit serves POST /vehicles/{id}/calendar/commit. The staged edit set
// travels in the request body; the server holds no per-session staging
// state.
func (h *CalendarHandler) Commit(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req commitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	state := &domain.EditState{VehicleID: vehicleID, Intents: req.Intents}
	result, err := h.availSvc.Commit(r.Context(), claims.UserID, state)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
