package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Vehicle      *VehicleHandler
	Calendar     *CalendarHandler
	Booking      *BookingHandler
	Agreement    *AgreementHandler
	Notification *NotificationHandler
}

// NewRouter wires the full API surface. Everything except signup/login and
// public listing reads sits behind the auth middleware.
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Public
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/vehicles", h.Vehicle.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}", h.Vehicle.Get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id:[0-9]+}/calendar", h.Calendar.Get).Methods(http.MethodGet)

	// Authenticated
	priv := api.NewRoute().Subrouter()
	priv.Use(auth.Require)

	priv.HandleFunc("/vehicles", h.Vehicle.Create).Methods(http.MethodPost)
	priv.HandleFunc("/vehicles/mine", h.Vehicle.ListMine).Methods(http.MethodGet)
	priv.HandleFunc("/vehicles/{id:[0-9]+}", h.Vehicle.Update).Methods(http.MethodPut)
	priv.HandleFunc("/vehicles/{id:[0-9]+}/availability", h.Vehicle.SetAvailability).Methods(http.MethodPatch)
	priv.HandleFunc("/vehicles/{id:[0-9]+}/status", h.Vehicle.SetStatus).Methods(http.MethodPut)
	priv.HandleFunc("/vehicles/{id:[0-9]+}/calendar/commit", h.Calendar.Commit).Methods(http.MethodPost)

	priv.HandleFunc("/bookings", h.Booking.Create).Methods(http.MethodPost)
	priv.HandleFunc("/bookings", h.Booking.List).Methods(http.MethodGet)
	priv.HandleFunc("/bookings/{id:[0-9]+}", h.Booking.Get).Methods(http.MethodGet)
	priv.HandleFunc("/bookings/{id:[0-9]+}/transition", h.Booking.Transition).Methods(http.MethodPost)
	priv.HandleFunc("/bookings/{id:[0-9]+}/agreement", h.Agreement.GetForBooking).Methods(http.MethodGet)
	priv.HandleFunc("/agreements/{id:[0-9]+}/sign", h.Agreement.Sign).Methods(http.MethodPost)

	priv.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	priv.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	return r
}
