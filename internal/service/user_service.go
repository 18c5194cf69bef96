package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/fleetadmin/internal/auth"
	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/repository"
)

type UserService struct {
	users       UserStore
	credentials CredentialStore
}

func NewUserService(users UserStore, credentials CredentialStore) *UserService {
	return &UserService{users: users, credentials: credentials}
}

type CreateDriverInput struct {
	FirstName string
	LastName  string
	UserName  string
	Email     string
	Password  string
	Address   string
	Location  *model.Coordinate
}

func (in CreateDriverInput) validate() error {
	if strings.TrimSpace(in.FirstName) == "" ||
		strings.TrimSpace(in.LastName) == "" ||
		strings.TrimSpace(in.UserName) == "" ||
		strings.TrimSpace(in.Address) == "" {
		return ErrInvalidInput
	}
	if !emailPattern.MatchString(in.Email) {
		return ErrInvalidEmail
	}
	if len(in.Password) < auth.MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// CreateDriver provisions the login first, then the profile keyed by the same
// id. The two writes are not transactional: a profile failure leaves a
// credential without a profile, which login treats as a missing user.
func (s *UserService) CreateDriver(ctx context.Context, input CreateDriverInput) (*model.User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.credentials.Create(ctx, input.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("create credential: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		ID:        id,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		UserName:  input.UserName,
		Email:     input.Email,
		Role:      model.RoleDriver,
		Address:   input.Address,
		Location:  input.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("create driver profile: %w", err)
	}
	return user, nil
}

func (s *UserService) ListDrivers(ctx context.Context) ([]model.User, error) {
	drivers, err := s.users.List(ctx, repository.ListOptions{
		Equals: map[string]interface{}{"role": string(model.RoleDriver)},
	})
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial update. Role is not part of UserUpdate, so a
// profile can never switch roles after provisioning.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, update model.UserUpdate) error {
	if err := s.users.Update(ctx, id, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// DeleteUser removes the profile only. The credential row stays behind, and
// a later login with it fails the profile lookup.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
