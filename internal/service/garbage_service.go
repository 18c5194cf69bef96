package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/repository"
)

type GarbageService struct {
	garbage GarbageStore
	rides   RideStore
}

func NewGarbageService(garbage GarbageStore, rides RideStore) *GarbageService {
	return &GarbageService{garbage: garbage, rides: rides}
}

func (s *GarbageService) RecordCategories(ctx context.Context, rideID uuid.UUID, categories []string) (*model.GarbageRecord, error) {
	if rideID == uuid.Nil || len(categories) == 0 {
		return nil, ErrInvalidInput
	}
	if _, err := s.rides.GetByID(ctx, rideID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load ride: %w", err)
	}

	record, err := s.garbage.Create(ctx, rideID, categories)
	if err != nil {
		return nil, fmt.Errorf("record garbage categories: %w", err)
	}
	return record, nil
}

func (s *GarbageService) ListRecords(ctx context.Context) ([]model.GarbageRecord, error) {
	records, err := s.garbage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list garbage records: %w", err)
	}
	return records, nil
}

func (s *GarbageService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if err := s.garbage.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete garbage record: %w", err)
	}
	return nil
}
