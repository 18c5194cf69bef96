package model

import (
	"time"

	"github.com/google/uuid"
)

type RideStatus string

const (
	RideStatusAssigned  RideStatus = "Assigned"
	RideStatusCompleted RideStatus = "Completed"
)

type Ride struct {
	ID       uuid.UUID `json:"id"`
	DriverID uuid.UUID `json:"driverId"`
	// VehicleNo references the vehicle by plate string, not by id. The
	// mobile clients were built around plates and the stored data follows.
	VehicleNo     string      `json:"vehicleNo"`
	StartLocation *Coordinate `json:"startLocation,omitempty"`
	EndLocation   *Coordinate `json:"endLocation,omitempty"`
	RideTime      string      `json:"rideTime"`
	Status        RideStatus  `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type RideUpdate struct {
	Status *RideStatus
}
