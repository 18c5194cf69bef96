package model

import (
	"time"

	"github.com/google/uuid"
)

// GarbageRecord is the set of category labels a driver tagged on a ride.
type GarbageRecord struct {
	ID         uuid.UUID `json:"id"`
	RideID     uuid.UUID `json:"rideId"`
	Categories []string  `json:"categories"`
	CreatedAt  time.Time `json:"createdAt"`
}
