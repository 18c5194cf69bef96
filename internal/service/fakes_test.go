package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/repository"
)

type fakeUserStore struct {
	users      []model.User
	listCalls  []repository.ListOptions
	countCalls []repository.ListOptions
	created    []model.User
	updated    map[uuid.UUID]model.UserUpdate
	deleted    []uuid.UUID

	listErr   error
	countErr  error
	createErr error
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	return &fakeUserStore{users: users, updated: map[uuid.UUID]model.UserUpdate{}}
}

func (f *fakeUserStore) List(_ context.Context, opts repository.ListOptions) ([]model.User, error) {
	f.listCalls = append(f.listCalls, opts)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var filtered []model.User
	for _, user := range f.users {
		if role, ok := opts.Equals["role"]; ok && string(user.Role) != role {
			continue
		}
		if status, ok := opts.Equals["status"]; ok && user.Status != status {
			continue
		}
		filtered = append(filtered, user)
	}
	return filtered, nil
}

func (f *fakeUserStore) Count(_ context.Context, opts repository.ListOptions) (int64, error) {
	f.countCalls = append(f.countCalls, opts)
	if f.countErr != nil {
		return 0, f.countErr
	}
	users, _ := f.List(context.Background(), opts)
	f.listCalls = f.listCalls[:len(f.listCalls)-1]
	return int64(len(users)), nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user model.User) (*model.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, user)
	f.users = append(f.users, user)
	return &user, nil
}

func (f *fakeUserStore) Update(_ context.Context, id uuid.UUID, update model.UserUpdate) error {
	if _, err := f.GetByID(context.Background(), id); err != nil {
		return err
	}
	f.updated[id] = update
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, err := f.GetByID(context.Background(), id); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCredentialStore struct {
	credentials map[string]*repository.Credential
	createdIDs  []uuid.UUID
	newEmails   map[uuid.UUID]string
	newHashes   map[uuid.UUID]string

	createErr error
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{
		credentials: map[string]*repository.Credential{},
		newEmails:   map[uuid.UUID]string{},
		newHashes:   map[uuid.UUID]string{},
	}
}

func (f *fakeCredentialStore) Create(_ context.Context, email, passwordHash string) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	if _, exists := f.credentials[email]; exists {
		return uuid.Nil, repository.ErrDuplicateEmail
	}
	id := uuid.New()
	f.credentials[email] = &repository.Credential{ID: id, Email: email, PasswordHash: passwordHash}
	f.createdIDs = append(f.createdIDs, id)
	return id, nil
}

func (f *fakeCredentialStore) GetByEmail(_ context.Context, email string) (*repository.Credential, error) {
	credential, ok := f.credentials[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return credential, nil
}

func (f *fakeCredentialStore) UpdateEmail(_ context.Context, id uuid.UUID, email string) error {
	for _, other := range f.credentials {
		if other.Email == email && other.ID != id {
			return repository.ErrDuplicateEmail
		}
	}
	f.newEmails[id] = email
	return nil
}

func (f *fakeCredentialStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.newHashes[id] = passwordHash
	return nil
}

type createdVehicle struct {
	vehicleNo       string
	condition       string
	kmDone          int64
	lastServiceDate string
	status          model.VehicleStatus
}

type fakeVehicleStore struct {
	vehicles   []model.Vehicle
	created    []createdVehicle
	countCalls []repository.ListOptions
}

func (f *fakeVehicleStore) List(_ context.Context, _ repository.ListOptions) ([]model.Vehicle, error) {
	return f.vehicles, nil
}

func (f *fakeVehicleStore) Count(_ context.Context, opts repository.ListOptions) (int64, error) {
	f.countCalls = append(f.countCalls, opts)
	if status, ok := opts.Equals["status"]; ok {
		var count int64
		for _, vehicle := range f.vehicles {
			if string(vehicle.Status) == status {
				count++
			}
		}
		return count, nil
	}
	return int64(len(f.vehicles)), nil
}

func (f *fakeVehicleStore) GetByID(_ context.Context, id uuid.UUID) (*model.Vehicle, error) {
	for i := range f.vehicles {
		if f.vehicles[i].ID == id {
			vehicle := f.vehicles[i]
			return &vehicle, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeVehicleStore) Create(_ context.Context, vehicleNo, condition string, kmDone int64, lastServiceDate string, status model.VehicleStatus) (*model.Vehicle, error) {
	f.created = append(f.created, createdVehicle{vehicleNo, condition, kmDone, lastServiceDate, status})
	vehicle := model.Vehicle{ID: uuid.New(), VehicleNo: vehicleNo, Condition: condition, KmDone: kmDone, Status: status}
	f.vehicles = append(f.vehicles, vehicle)
	return &vehicle, nil
}

func (f *fakeVehicleStore) Update(_ context.Context, id uuid.UUID, _ model.VehicleUpdate) error {
	_, err := f.GetByID(context.Background(), id)
	return err
}

func (f *fakeVehicleStore) Delete(_ context.Context, id uuid.UUID) error {
	_, err := f.GetByID(context.Background(), id)
	return err
}

type fakeRideStore struct {
	rides      []model.Ride
	created    []model.Ride
	listCalls  []repository.ListOptions
	countCalls []repository.ListOptions

	countErr error
}

func (f *fakeRideStore) List(_ context.Context, opts repository.ListOptions) ([]model.Ride, error) {
	f.listCalls = append(f.listCalls, opts)
	return f.rides, nil
}

func (f *fakeRideStore) Count(_ context.Context, opts repository.ListOptions) (int64, error) {
	f.countCalls = append(f.countCalls, opts)
	if f.countErr != nil {
		return 0, f.countErr
	}

	var count int64
	for _, ride := range f.rides {
		if status, ok := opts.Equals["status"]; ok && string(ride.Status) != status {
			continue
		}
		if opts.CreatedFrom != nil && ride.CreatedAt.Before(*opts.CreatedFrom) {
			continue
		}
		if opts.CreatedTo != nil && !ride.CreatedAt.Before(*opts.CreatedTo) {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeRideStore) GetByID(_ context.Context, id uuid.UUID) (*model.Ride, error) {
	for i := range f.rides {
		if f.rides[i].ID == id {
			ride := f.rides[i]
			return &ride, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRideStore) Create(_ context.Context, ride model.Ride) (*model.Ride, error) {
	ride.ID = uuid.New()
	f.created = append(f.created, ride)
	f.rides = append(f.rides, ride)
	return &ride, nil
}

func (f *fakeRideStore) Update(_ context.Context, id uuid.UUID, _ model.RideUpdate) error {
	_, err := f.GetByID(context.Background(), id)
	return err
}

func (f *fakeRideStore) Delete(_ context.Context, id uuid.UUID) error {
	_, err := f.GetByID(context.Background(), id)
	return err
}

type fakeGarbageStore struct {
	records []model.GarbageRecord
}

func (f *fakeGarbageStore) List(_ context.Context) ([]model.GarbageRecord, error) {
	return f.records, nil
}

func (f *fakeGarbageStore) Create(_ context.Context, rideID uuid.UUID, categories []string) (*model.GarbageRecord, error) {
	record := model.GarbageRecord{ID: uuid.New(), RideID: rideID, Categories: categories}
	f.records = append(f.records, record)
	return &record, nil
}

func (f *fakeGarbageStore) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

type fakeNotificationStore struct {
	created []model.Notification
}

func (f *fakeNotificationStore) Create(_ context.Context, notification model.Notification) (*model.Notification, error) {
	notification.ID = uuid.New()
	f.created = append(f.created, notification)
	return &notification, nil
}

func (f *fakeNotificationStore) ListForUser(_ context.Context, _ uuid.UUID) ([]model.Notification, error) {
	return f.created, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, _ uuid.UUID) error {
	return nil
}

type fakePusher struct {
	tokens []string
	bodies []string
	err    error
}

func (f *fakePusher) Send(_ context.Context, token, _, body string) error {
	f.tokens = append(f.tokens, token)
	f.bodies = append(f.bodies, body)
	return f.err
}

type fakeExporter struct {
	tables []model.ReportTable
	data   []byte
	err    error
}

func (f *fakeExporter) Generate(table model.ReportTable) ([]byte, error) {
	f.tables = append(f.tables, table)
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}
