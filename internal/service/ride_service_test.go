package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/fleetadmin/internal/model"
)

type rideFixture struct {
	svc           *RideService
	rides         *fakeRideStore
	users         *fakeUserStore
	notifications *fakeNotificationStore
	pusher        *fakePusher
}

func newRideFixture(users ...model.User) rideFixture {
	rides := &fakeRideStore{}
	userStore := newFakeUserStore(users...)
	notifications := &fakeNotificationStore{}
	pusher := &fakePusher{}
	svc := NewRideService(rides, userStore, notifications, pusher, zerolog.Nop())
	return rideFixture{svc: svc, rides: rides, users: userStore, notifications: notifications, pusher: pusher}
}

func validAssignInput(driverID uuid.UUID) AssignRideInput {
	return AssignRideInput{
		DriverID:      driverID,
		VehicleNo:     "KZ 123",
		StartLocation: &model.Coordinate{Latitude: 43.23, Longitude: 76.88},
		EndLocation:   &model.Coordinate{Latitude: 43.25, Longitude: 76.95},
		RideTime:      "10:00 AM",
	}
}

func TestAssignRideNotifiesDriver(t *testing.T) {
	token := "fcm-token"
	driver := model.User{
		ID: uuid.New(), FirstName: "Aidos", LastName: "Bekov",
		UserName: "aidos", Role: model.RoleDriver, PushToken: &token,
	}
	fx := newRideFixture(driver)

	ride, err := fx.svc.AssignRide(context.Background(), validAssignInput(driver.ID))
	require.NoError(t, err)

	assert.Equal(t, model.RideStatusAssigned, ride.Status)
	require.Len(t, fx.notifications.created, 1)
	notification := fx.notifications.created[0]
	assert.Equal(t, driver.ID, notification.UserID)
	assert.Equal(t, model.AudienceDriver, notification.Audience)
	assert.Equal(t,
		"Dear aidos, a new ride has been assigned to you at 10:00 AM. Please get ready and ensure your vehicle (KZ 123) is prepared for the trip.",
		notification.Message)

	require.Len(t, fx.pusher.tokens, 1)
	assert.Equal(t, token, fx.pusher.tokens[0])
	assert.Equal(t, notification.Message, fx.pusher.bodies[0])
}

func TestAssignRideNotifiesRequestingUser(t *testing.T) {
	driver := model.User{ID: uuid.New(), UserName: "aidos", Role: model.RoleDriver}
	user := model.User{ID: uuid.New(), UserName: "dana", Role: model.RoleUser}
	fx := newRideFixture(driver, user)

	input := validAssignInput(driver.ID)
	input.UserID = &user.ID

	_, err := fx.svc.AssignRide(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, fx.notifications.created, 2)
	assert.Equal(t, model.AudienceUser, fx.notifications.created[1].Audience)
	assert.Equal(t,
		"Dear dana, your ride has been successfully assigned to aidos at 10:00 AM. Please ensure you are ready at the pickup location.",
		fx.notifications.created[1].Message)
}

func TestAssignRideRejectsNonDriver(t *testing.T) {
	user := model.User{ID: uuid.New(), Role: model.RoleUser}
	fx := newRideFixture(user)

	_, err := fx.svc.AssignRide(context.Background(), validAssignInput(user.ID))

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, fx.rides.created)
}

func TestAssignRideUnknownDriver(t *testing.T) {
	fx := newRideFixture()

	_, err := fx.svc.AssignRide(context.Background(), validAssignInput(uuid.New()))

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignRideValidation(t *testing.T) {
	driver := model.User{ID: uuid.New(), Role: model.RoleDriver}
	fx := newRideFixture(driver)

	input := validAssignInput(driver.ID)
	input.StartLocation = nil

	_, err := fx.svc.AssignRide(context.Background(), input)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAssignRideSurvivesPushFailure(t *testing.T) {
	token := "fcm-token"
	driver := model.User{ID: uuid.New(), UserName: "aidos", Role: model.RoleDriver, PushToken: &token}
	fx := newRideFixture(driver)
	fx.pusher.err = assert.AnError

	_, err := fx.svc.AssignRide(context.Background(), validAssignInput(driver.ID))

	assert.NoError(t, err)
	assert.Len(t, fx.rides.created, 1)
}

func TestUpdateRideStatusRejectsUnknownStatus(t *testing.T) {
	fx := newRideFixture()

	err := fx.svc.UpdateRideStatus(context.Background(), uuid.New(), model.RideStatus("Cancelled"))

	assert.ErrorIs(t, err, ErrInvalidInput)
}
