package http

import (
	"net/http"
	"strconv"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"

	"github.com/gorilla/mux"
)

type VehicleHandler struct {
	vehicleSvc service.VehicleService
}

func NewVehicleHandler(vehicleSvc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleSvc: vehicleSvc}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return id, nil
}

func pageParams(r *http.Request) (int32, int32) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return int32(page), int32(pageSize)
}

type vehicleRequest struct {
	Make                 string `json:"make"`
	Model                string `json:"model"`
	Year                 int32  `json:"year"`
	LicensePlate         string `json:"license_plate"`
	Description          string `json:"description"`
	DailyRateCents       int64  `json:"daily_rate_cents"`
	SecurityDepositCents int64  `json:"security_deposit_cents"`
}

type listResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	var req vehicleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vehicle := &domain.Vehicle{
		OwnerID:              claims.UserID,
		Make:                 req.Make,
		Model:                req.Model,
		Year:                 req.Year,
		LicensePlate:         req.LicensePlate,
		Description:          req.Description,
		DailyRateCents:       req.DailyRateCents,
		SecurityDepositCents: req.SecurityDepositCents,
	}
	if err := h.vehicleSvc.AddVehicle(r.Context(), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	vehicle, err := h.vehicleSvc.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req vehicleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	vehicle := &domain.Vehicle{
		ID:                   id,
		Make:                 req.Make,
		Model:                req.Model,
		Year:                 req.Year,
		LicensePlate:         req.LicensePlate,
		Description:          req.Description,
		DailyRateCents:       req.DailyRateCents,
		SecurityDepositCents: req.SecurityDepositCents,
		IsAvailable:          true,
	}
	if err := h.vehicleSvc.UpdateVehicle(r.Context(), claims.UserID, vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

type availabilityRequest struct {
	Available bool `json:"available"`
}

func (h *VehicleHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req availabilityRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.vehicleSvc.SetAvailability(r.Context(), claims.UserID, id, req.Available); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": req.Available})
}

type statusRequest struct {
	Status domain.VehicleStatus `json:"status"`
}

func (h *VehicleHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req statusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.vehicleSvc.SetStatus(r.Context(), actorFrom(claims), id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]domain.VehicleStatus{"status": req.Status})
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	vehicles, total, err := h.vehicleSvc.ListVehicles(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: vehicles, Total: total})
}

func (h *VehicleHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	page, pageSize := pageParams(r)
	vehicles, total, err := h.vehicleSvc.ListMyVehicles(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: vehicles, Total: total})
}
