package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleDriver Role = "Driver"
	RoleUser   Role = "User"
)

// Coordinate is a WGS84 point. Latitude/longitude only, no altitude.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type User struct {
	ID        uuid.UUID   `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	UserName  string      `json:"userName"`
	Email     string      `json:"email"`
	Role      Role        `json:"role"`
	Status    string      `json:"status"`
	Address   string      `json:"address"`
	Location  *Coordinate `json:"location,omitempty"`
	PushToken *string     `json:"pushToken,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// DisplayName is the "{first} {last}" form used everywhere a user is
// rendered by name.
func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// UserUpdate carries a partial update; nil fields are left untouched.
// Role is deliberately absent: it is set once at creation.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	UserName  *string
	Email     *string
	Status    *string
	Address   *string
	Location  *Coordinate
	PushToken *string
}
