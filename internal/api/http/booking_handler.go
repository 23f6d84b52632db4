package http

import (
	"net/http"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"
	"driveshare-backend/internal/utils"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type bookingRequest struct {
	VehicleID int64  `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	var req bookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start, err := utils.ParseDay(req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := utils.ParseDay(req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookingSvc.RequestBooking(r.Context(), claims.UserID, req.VehicleID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.GetBooking(r.Context(), actorFrom(claims), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type transitionRequest struct {
	TargetStatus domain.BookingStatus `json:"target_status"`
}

func (h *BookingHandler) Transition(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req transitionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookingSvc.Transition(r.Context(), actorFrom(claims), id, req.TargetStatus)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// List serves GET /bookings?role=renter|owner&status=...
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	page, pageSize := pageParams(r)
	status := r.URL.Query().Get("status")

	var (
		bookings []domain.Booking
		total    int32
		err      error
	)
	if r.URL.Query().Get("role") == "owner" {
		bookings, total, err = h.bookingSvc.ListLendings(r.Context(), claims.UserID, status, page, pageSize)
	} else {
		bookings, total, err = h.bookingSvc.ListRentals(r.Context(), claims.UserID, status, page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: bookings, Total: total})
}
