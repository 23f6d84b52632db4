package http

import (
	"net/http"

	"driveshare-backend/internal/service"
)

type AgreementHandler struct {
	agreementSvc service.AgreementService
}

func NewAgreementHandler(agreementSvc service.AgreementService) *AgreementHandler {
	return &AgreementHandler{agreementSvc: agreementSvc}
}

// GetForBooking serves GET /bookings/{id}/agreement, creating the agreement
// on first view of a confirmed booking.
func (h *AgreementHandler) GetForBooking(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	bookingID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	agreement, err := h.agreementSvc.GetOrCreate(r.Context(), actorFrom(claims), bookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agreement)
}

// Sign serves POST /agreements/{id}/sign for the caller's own side.
func (h *AgreementHandler) Sign(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	agreementID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	agreement, err := h.agreementSvc.Sign(r.Context(), actorFrom(claims), agreementID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agreement)
}
