package service

import (
	"context"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) AddVehicle(ctx context.Context, v *domain.Vehicle) error {
	if v.Make == "" || v.Model == "" {
		return &domain.ValidationError{Field: "make/model", Reason: "required"}
	}
	if v.DailyRateCents <= 0 {
		return &domain.ValidationError{Field: "daily_rate_cents", Reason: "must be positive"}
	}
	if v.SecurityDepositCents < 0 {
		return &domain.ValidationError{Field: "security_deposit_cents", Reason: "must not be negative"}
	}
	// New listings wait for admin approval before they surface in search.
	v.Status = domain.VehicleStatusPending
	v.IsAvailable = true
	return s.vehicleRepo.Create(ctx, v)
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, ownerID int64, v *domain.Vehicle) error {
	existing, err := s.vehicleRepo.GetByID(ctx, v.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return &domain.AuthorizationError{Reason: "only the owner may edit a listing"}
	}
	if v.DailyRateCents <= 0 {
		return &domain.ValidationError{Field: "daily_rate_cents", Reason: "must be positive"}
	}
	// Rate changes apply to future bookings only; existing bookings carry
	// their own price snapshot.
	return s.vehicleRepo.Update(ctx, v)
}

func (s *vehicleService) SetAvailability(ctx context.Context, ownerID, vehicleID int64, available bool) error {
	v, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if v.OwnerID != ownerID {
		return &domain.AuthorizationError{Reason: "only the owner may toggle availability"}
	}
	v.IsAvailable = available
	return s.vehicleRepo.Update(ctx, v)
}

func (s *vehicleService) SetStatus(ctx context.Context, actor domain.Actor, vehicleID int64, status domain.VehicleStatus) error {
	if !actor.Admin {
		return &domain.AuthorizationError{Reason: "listing approval is admin-only"}
	}
	switch status {
	case domain.VehicleStatusApproved, domain.VehicleStatusRejected, domain.VehicleStatusPending:
	default:
		return &domain.ValidationError{Field: "status", Reason: "unknown vehicle status"}
	}
	return s.vehicleRepo.UpdateStatus(ctx, vehicleID, status)
}

func (s *vehicleService) ListVehicles(ctx context.Context, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	return s.vehicleRepo.ListApproved(ctx, page, pageSize)
}

func (s *vehicleService) ListMyVehicles(ctx context.Context, ownerID int64, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	return s.vehicleRepo.ListByOwner(ctx, ownerID, page, pageSize)
}
