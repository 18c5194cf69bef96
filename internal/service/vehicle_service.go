package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/repository"
)

type VehicleService struct {
	vehicles VehicleStore
}

func NewVehicleService(vehicles VehicleStore) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

type CreateVehicleInput struct {
	VehicleNo       string
	Condition       string
	KmDone          int64
	LastServiceDate string
}

func (s *VehicleService) CreateVehicle(ctx context.Context, input CreateVehicleInput) (*model.Vehicle, error) {
	if strings.TrimSpace(input.VehicleNo) == "" || strings.TrimSpace(input.Condition) == "" {
		return nil, ErrInvalidInput
	}
	if input.KmDone < 0 {
		return nil, ErrInvalidInput
	}

	vehicle, err := s.vehicles.Create(ctx,
		input.VehicleNo, input.Condition, input.KmDone, input.LastServiceDate,
		model.VehicleStatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *VehicleService) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *VehicleService) GetVehicle(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, id uuid.UUID, update model.VehicleUpdate) error {
	if update.KmDone != nil && *update.KmDone < 0 {
		return ErrInvalidInput
	}
	if err := s.vehicles.Update(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

func (s *VehicleService) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}
