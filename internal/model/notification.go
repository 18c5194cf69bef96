package model

import (
	"time"

	"github.com/google/uuid"
)

type Audience string

const (
	AudienceDriver Audience = "driver"
	AudienceUser   Audience = "user"
)

type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Message   string    `json:"message"`
	RideID    uuid.UUID `json:"rideId"`
	Audience  Audience  `json:"notificationType"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
