package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/fleetadmin/internal/auth"
	"github.com/nurpe/fleetadmin/internal/http/middleware"
	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/repository"
	"github.com/nurpe/fleetadmin/internal/service"
)

const testSecret = "test-secret"

type memUserStore struct {
	users []model.User
}

func (s *memUserStore) List(_ context.Context, opts repository.ListOptions) ([]model.User, error) {
	if role, ok := opts.Equals["role"]; ok {
		var filtered []model.User
		for _, user := range s.users {
			if string(user.Role) == role {
				filtered = append(filtered, user)
			}
		}
		return filtered, nil
	}
	return s.users, nil
}

func (s *memUserStore) Count(ctx context.Context, opts repository.ListOptions) (int64, error) {
	users, _ := s.List(ctx, opts)
	return int64(len(users)), nil
}

func (s *memUserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserStore) Create(_ context.Context, user model.User) (*model.User, error) {
	s.users = append(s.users, user)
	return &user, nil
}

func (s *memUserStore) Update(_ context.Context, id uuid.UUID, _ model.UserUpdate) error {
	if _, err := s.GetByID(context.Background(), id); err != nil {
		return err
	}
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id uuid.UUID) error {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memCredentialStore struct {
	credentials map[string]*repository.Credential
}

func (s *memCredentialStore) Create(_ context.Context, email, hash string) (uuid.UUID, error) {
	id := uuid.New()
	s.credentials[email] = &repository.Credential{ID: id, Email: email, PasswordHash: hash}
	return id, nil
}

func (s *memCredentialStore) GetByEmail(_ context.Context, email string) (*repository.Credential, error) {
	credential, ok := s.credentials[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return credential, nil
}

func (s *memCredentialStore) UpdateEmail(_ context.Context, _ uuid.UUID, _ string) error { return nil }
func (s *memCredentialStore) UpdatePassword(_ context.Context, _ uuid.UUID, _ string) error {
	return nil
}

type memRideStore struct {
	rides []model.Ride
}

func (s *memRideStore) List(_ context.Context, _ repository.ListOptions) ([]model.Ride, error) {
	return s.rides, nil
}
func (s *memRideStore) Count(_ context.Context, _ repository.ListOptions) (int64, error) {
	return int64(len(s.rides)), nil
}
func (s *memRideStore) GetByID(_ context.Context, _ uuid.UUID) (*model.Ride, error) {
	return nil, repository.ErrNotFound
}
func (s *memRideStore) Create(_ context.Context, ride model.Ride) (*model.Ride, error) {
	ride.ID = uuid.New()
	s.rides = append(s.rides, ride)
	return &ride, nil
}
func (s *memRideStore) Update(_ context.Context, _ uuid.UUID, _ model.RideUpdate) error {
	return repository.ErrNotFound
}
func (s *memRideStore) Delete(_ context.Context, _ uuid.UUID) error { return repository.ErrNotFound }

type memVehicleStore struct{}

func (memVehicleStore) List(_ context.Context, _ repository.ListOptions) ([]model.Vehicle, error) {
	return nil, nil
}
func (memVehicleStore) Count(_ context.Context, _ repository.ListOptions) (int64, error) {
	return 0, nil
}
func (memVehicleStore) GetByID(_ context.Context, _ uuid.UUID) (*model.Vehicle, error) {
	return nil, repository.ErrNotFound
}
func (memVehicleStore) Create(_ context.Context, vehicleNo, condition string, kmDone int64, lastServiceDate string, status model.VehicleStatus) (*model.Vehicle, error) {
	return &model.Vehicle{ID: uuid.New(), VehicleNo: vehicleNo, Condition: condition, KmDone: kmDone, Status: status}, nil
}
func (memVehicleStore) Update(_ context.Context, _ uuid.UUID, _ model.VehicleUpdate) error {
	return repository.ErrNotFound
}
func (memVehicleStore) Delete(_ context.Context, _ uuid.UUID) error { return repository.ErrNotFound }

type memGarbageStore struct{}

func (memGarbageStore) List(_ context.Context) ([]model.GarbageRecord, error) { return nil, nil }
func (memGarbageStore) Create(_ context.Context, rideID uuid.UUID, categories []string) (*model.GarbageRecord, error) {
	return &model.GarbageRecord{ID: uuid.New(), RideID: rideID, Categories: categories}, nil
}
func (memGarbageStore) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type stubExporter struct{ data []byte }

func (s stubExporter) Generate(_ model.ReportTable) ([]byte, error) { return s.data, nil }

type testEnv struct {
	router      *gin.Engine
	users       *memUserStore
	credentials *memCredentialStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memUserStore{}
	credentials := &memCredentialStore{credentials: map[string]*repository.Credential{}}
	rides := &memRideStore{}
	vehicles := memVehicleStore{}
	garbage := memGarbageStore{}

	issuer := auth.NewIssuer(testSecret, time.Hour)
	log := zerolog.Nop()

	authService := service.NewAuthService(credentials, users, issuer, 5*time.Minute)
	userService := service.NewUserService(users, credentials)
	vehicleService := service.NewVehicleService(vehicles)
	rideService := service.NewRideService(rides, users, nopNotificationStore{}, nopPusher{}, log)
	newsService := service.NewNewsService(nopNewsStore{})
	notificationService := service.NewNotificationService(nopNotificationStore{})
	garbageService := service.NewGarbageService(garbage, rides)
	dashboardService := service.NewDashboardService(users, vehicles, rides)
	reportService := service.NewReportService(users, vehicles, rides, garbage,
		stubExporter{data: []byte("xlsx")}, stubExporter{data: []byte("csv")}, stubExporter{data: []byte("pdf")})

	handler := NewHandler(authService, userService, vehicleService, rideService, newsService,
		notificationService, garbageService, dashboardService, reportService, log)
	router := NewRouter(handler, middleware.Auth(auth.NewParser(testSecret)), "test")

	return &testEnv{router: router, users: users, credentials: credentials}
}

type nopNotificationStore struct{}

func (nopNotificationStore) Create(_ context.Context, n model.Notification) (*model.Notification, error) {
	return &n, nil
}
func (nopNotificationStore) ListForUser(_ context.Context, _ uuid.UUID) ([]model.Notification, error) {
	return nil, nil
}
func (nopNotificationStore) MarkRead(_ context.Context, _ uuid.UUID) error { return nil }

type nopPusher struct{}

func (nopPusher) Send(_ context.Context, _, _, _ string) error { return nil }

type nopNewsStore struct{}

func (nopNewsStore) List(_ context.Context) ([]model.NewsItem, error) { return nil, nil }
func (nopNewsStore) GetByID(_ context.Context, _ uuid.UUID) (*model.NewsItem, error) {
	return nil, repository.ErrNotFound
}
func (nopNewsStore) Create(_ context.Context, heading, content string) (*model.NewsItem, error) {
	return &model.NewsItem{ID: uuid.New(), Heading: heading, Content: content}, nil
}
func (nopNewsStore) Update(_ context.Context, _ uuid.UUID, _ model.NewsUpdate) error {
	return repository.ErrNotFound
}
func (nopNewsStore) Delete(_ context.Context, _ uuid.UUID) error { return repository.ErrNotFound }

func (e *testEnv) seedAccount(t *testing.T, email, password string, role model.Role) uuid.UUID {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	id, err := e.credentials.Create(context.Background(), email, hash)
	require.NoError(t, err)
	_, err = e.users.Create(context.Background(), model.User{
		ID: id, FirstName: "Test", LastName: "User", Email: email, Role: role,
	})
	require.NoError(t, err)
	return id
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	recorder := e.do(http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var response struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response.Token
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin@example.com", "secret1", model.RoleAdmin)

	recorder := env.do(http.MethodPost, "/auth/login", "", gin.H{"email": "admin@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.JSONEq(t, `{"message":"Incorrect password."}`, recorder.Body.String())

	recorder = env.do(http.MethodPost, "/auth/login", "", gin.H{"email": "ghost@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.JSONEq(t, `{"message":"No user found with this email."}`, recorder.Body.String())

	recorder = env.do(http.MethodPost, "/auth/login", "", gin.H{"email": "not-an-email", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"message":"Invalid email address."}`, recorder.Body.String())
}

func TestPublicUsersEmptyIs404(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(http.MethodGet, "/users", "", nil)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"message":"No users found"}`, recorder.Body.String())
}

func TestPublicUsersListsWithoutAuth(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin@example.com", "secret1", model.RoleAdmin)

	recorder := env.do(http.MethodGet, "/users", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var users []model.User
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &users))
	assert.Len(t, users, 1)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "driver@example.com", "secret1", model.RoleDriver)
	token := env.login(t, "driver@example.com", "secret1")

	recorder := env.do(http.MethodGet, "/admin/vehicles", token, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = env.do(http.MethodGet, "/admin/vehicles", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestExportEmptyReportIs204(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin@example.com", "secret1", model.RoleAdmin)
	token := env.login(t, "admin@example.com", "secret1")

	recorder := env.do(http.MethodGet, "/admin/reports/csv?type=rides", token, nil)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestExportSetsDownloadHeaders(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin@example.com", "secret1", model.RoleAdmin)
	token := env.login(t, "admin@example.com", "secret1")

	recorder := env.do(http.MethodGet, "/admin/reports/csv?type=users", token, nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, `attachment; filename="users_report.csv"`, recorder.Header().Get("Content-Disposition"))
	assert.Equal(t, "csv", recorder.Body.String())
}

func TestDashboardSummary(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin@example.com", "secret1", model.RoleAdmin)
	token := env.login(t, "admin@example.com", "secret1")

	recorder := env.do(http.MethodGet, "/admin/dashboard", token, nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	var summary struct {
		TotalUsers   int64             `json:"totalUsers"`
		TotalDrivers int64             `json:"totalDrivers"`
		MonthlyRides []json.RawMessage `json:"monthlyRides"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &summary))
	assert.Equal(t, int64(0), summary.TotalUsers)
	assert.Len(t, summary.MonthlyRides, 12)
}

func TestInvalidReportTypeIs400(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "admin@example.com", "secret1", model.RoleAdmin)
	token := env.login(t, "admin@example.com", "secret1")

	recorder := env.do(http.MethodGet, "/admin/reports/table?type=unknown", token, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = env.do(http.MethodGet, "/admin/reports/docx?type=rides", token, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
