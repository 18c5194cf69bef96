package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/repository"
)

// Store interfaces mirror the repository layer so services can be exercised
// against fakes. Repositories are the only production implementations.

type UserStore interface {
	List(ctx context.Context, opts repository.ListOptions) ([]model.User, error)
	Count(ctx context.Context, opts repository.ListOptions) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, user model.User) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, update model.UserUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CredentialStore interface {
	Create(ctx context.Context, email, passwordHash string) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (*repository.Credential, error)
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type VehicleStore interface {
	List(ctx context.Context, opts repository.ListOptions) ([]model.Vehicle, error)
	Count(ctx context.Context, opts repository.ListOptions) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
	Create(ctx context.Context, vehicleNo, condition string, kmDone int64, lastServiceDate string, status model.VehicleStatus) (*model.Vehicle, error)
	Update(ctx context.Context, id uuid.UUID, update model.VehicleUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RideStore interface {
	List(ctx context.Context, opts repository.ListOptions) ([]model.Ride, error)
	Count(ctx context.Context, opts repository.ListOptions) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Ride, error)
	Create(ctx context.Context, ride model.Ride) (*model.Ride, error)
	Update(ctx context.Context, id uuid.UUID, update model.RideUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type NewsStore interface {
	List(ctx context.Context) ([]model.NewsItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.NewsItem, error)
	Create(ctx context.Context, heading, content string) (*model.NewsItem, error)
	Update(ctx context.Context, id uuid.UUID, update model.NewsUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type NotificationStore interface {
	Create(ctx context.Context, notification model.Notification) (*model.Notification, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type GarbageStore interface {
	List(ctx context.Context) ([]model.GarbageRecord, error)
	Create(ctx context.Context, rideID uuid.UUID, categories []string) (*model.GarbageRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
