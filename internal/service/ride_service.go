package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/repository"
)

// Pusher delivers a push notification to a single device token.
type Pusher interface {
	Send(ctx context.Context, token, title, body string) error
}

type RideService struct {
	rides         RideStore
	users         UserStore
	notifications NotificationStore
	pusher        Pusher
	log           zerolog.Logger
}

func NewRideService(rides RideStore, users UserStore, notifications NotificationStore, pusher Pusher, log zerolog.Logger) *RideService {
	return &RideService{
		rides:         rides,
		users:         users,
		notifications: notifications,
		pusher:        pusher,
		log:           log,
	}
}

type AssignRideInput struct {
	DriverID      uuid.UUID
	VehicleNo     string
	StartLocation *model.Coordinate
	EndLocation   *model.Coordinate
	RideTime      string
	UserID        *uuid.UUID
}

func (in AssignRideInput) validate() error {
	if in.DriverID == uuid.Nil ||
		strings.TrimSpace(in.VehicleNo) == "" ||
		strings.TrimSpace(in.RideTime) == "" ||
		in.StartLocation == nil || in.EndLocation == nil {
		return ErrInvalidInput
	}
	return nil
}

// AssignRide creates the ride, records in-app notifications and attempts a
// push to the driver. Notification and push failures do not fail the
// assignment once the ride row is written.
func (s *RideService) AssignRide(ctx context.Context, input AssignRideInput) (*model.Ride, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	driver, err := s.users.GetByID(ctx, input.DriverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load driver: %w", err)
	}
	if driver.Role != model.RoleDriver {
		return nil, ErrInvalidInput
	}

	ride, err := s.rides.Create(ctx, model.Ride{
		DriverID:      input.DriverID,
		VehicleNo:     input.VehicleNo,
		StartLocation: input.StartLocation,
		EndLocation:   input.EndLocation,
		RideTime:      input.RideTime,
		Status:        model.RideStatusAssigned,
	})
	if err != nil {
		return nil, fmt.Errorf("create ride: %w", err)
	}

	driverMessage := fmt.Sprintf(
		"Dear %s, a new ride has been assigned to you at %s. Please get ready and ensure your vehicle (%s) is prepared for the trip.",
		driver.UserName, ride.RideTime, ride.VehicleNo)
	s.notify(ctx, model.Notification{
		UserID:   driver.ID,
		Message:  driverMessage,
		RideID:   ride.ID,
		Audience: model.AudienceDriver,
	})

	if input.UserID != nil {
		if user, err := s.users.GetByID(ctx, *input.UserID); err != nil {
			s.log.Warn().Err(err).Str("user_id", input.UserID.String()).Msg("ride user lookup failed")
		} else {
			s.notify(ctx, model.Notification{
				UserID: user.ID,
				Message: fmt.Sprintf(
					"Dear %s, your ride has been successfully assigned to %s at %s. Please ensure you are ready at the pickup location.",
					user.UserName, driver.UserName, ride.RideTime),
				RideID:   ride.ID,
				Audience: model.AudienceUser,
			})
		}
	}

	if driver.PushToken != nil && *driver.PushToken != "" {
		if err := s.pusher.Send(ctx, *driver.PushToken, "New Ride Assigned", driverMessage); err != nil {
			s.log.Warn().Err(err).Str("driver_id", driver.ID.String()).Msg("push delivery failed")
		}
	}

	return ride, nil
}

func (s *RideService) notify(ctx context.Context, notification model.Notification) {
	if _, err := s.notifications.Create(ctx, notification); err != nil {
		s.log.Warn().Err(err).
			Str("user_id", notification.UserID.String()).
			Msg("notification write failed")
	}
}

func (s *RideService) ListRides(ctx context.Context) ([]model.Ride, error) {
	rides, err := s.rides.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list rides: %w", err)
	}
	return rides, nil
}

func (s *RideService) ListRidesForDriver(ctx context.Context, driverID uuid.UUID) ([]model.Ride, error) {
	rides, err := s.rides.List(ctx, repository.ListOptions{
		Equals: map[string]interface{}{"driver_id": driverID},
	})
	if err != nil {
		return nil, fmt.Errorf("list driver rides: %w", err)
	}
	return rides, nil
}

func (s *RideService) GetRide(ctx context.Context, id uuid.UUID) (*model.Ride, error) {
	ride, err := s.rides.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get ride: %w", err)
	}
	return ride, nil
}

func (s *RideService) UpdateRideStatus(ctx context.Context, id uuid.UUID, status model.RideStatus) error {
	if status != model.RideStatusAssigned && status != model.RideStatusCompleted {
		return ErrInvalidInput
	}
	if err := s.rides.Update(ctx, id, model.RideUpdate{Status: &status}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update ride: %w", err)
	}
	return nil
}

func (s *RideService) DeleteRide(ctx context.Context, id uuid.UUID) error {
	if err := s.rides.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete ride: %w", err)
	}
	return nil
}
