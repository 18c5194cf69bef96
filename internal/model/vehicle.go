package model

import (
	"time"

	"github.com/google/uuid"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "Available"
	VehicleStatusInUse       VehicleStatus = "In Use"
	VehicleStatusMaintenance VehicleStatus = "Under Maintenance"
)

type Vehicle struct {
	ID        uuid.UUID     `json:"id"`
	VehicleNo string        `json:"vehicleNo"`
	Condition string        `json:"condition"`
	KmDone    int64         `json:"kmDone"`
	// LastService is normalized from the free-form stored value at the
	// repository boundary; nil when the stored value is absent or does not
	// parse.
	LastService *time.Time    `json:"lastService,omitempty"`
	Status      VehicleStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type VehicleUpdate struct {
	VehicleNo   *string
	Condition   *string
	KmDone      *int64
	LastService *string // raw, normalized on read
	Status      *VehicleStatus
}
