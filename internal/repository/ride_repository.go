package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleetadmin/internal/model"
)

var rideColumns = map[string]bool{
	"driver_id":  true,
	"vehicle_no": true,
	"status":     true,
	"created_at": true,
}

type RideRepository struct {
	db *gorm.DB
}

func NewRideRepository(db *gorm.DB) *RideRepository {
	return &RideRepository{db: db}
}

type rideRow struct {
	ID             uuid.UUID
	DriverID       uuid.UUID
	VehicleNo      string
	StartLatitude  *float64
	StartLongitude *float64
	EndLatitude    *float64
	EndLongitude   *float64
	RideTime       string
	Status         string
	CreatedAt      time.Time
}

func (row rideRow) toModel() model.Ride {
	ride := model.Ride{
		ID:        row.ID,
		DriverID:  row.DriverID,
		VehicleNo: row.VehicleNo,
		RideTime:  row.RideTime,
		Status:    model.RideStatus(row.Status),
		CreatedAt: row.CreatedAt,
	}
	if row.StartLatitude != nil && row.StartLongitude != nil {
		ride.StartLocation = &model.Coordinate{Latitude: *row.StartLatitude, Longitude: *row.StartLongitude}
	}
	if row.EndLatitude != nil && row.EndLongitude != nil {
		ride.EndLocation = &model.Coordinate{Latitude: *row.EndLatitude, Longitude: *row.EndLongitude}
	}
	return ride
}

const rideSelect = `
	SELECT id, driver_id, vehicle_no, start_latitude, start_longitude,
		end_latitude, end_longitude, ride_time, status, created_at
	FROM rides`

func (r *RideRepository) List(ctx context.Context, opts ListOptions) ([]model.Ride, error) {
	query, args, err := applyOptions(rideSelect, nil, opts, rideColumns)
	if err != nil {
		return nil, err
	}

	var rows []rideRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, wrapStore(err)
	}

	rides := make([]model.Ride, 0, len(rows))
	for _, row := range rows {
		rides = append(rides, row.toModel())
	}
	return rides, nil
}

func (r *RideRepository) Count(ctx context.Context, opts ListOptions) (int64, error) {
	query, args, err := applyOptions(`SELECT COUNT(*) FROM rides`, nil, opts, rideColumns)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&count).Error; err != nil {
		return 0, wrapStore(err)
	}
	return count, nil
}

func (r *RideRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Ride, error) {
	var row rideRow
	err := r.db.WithContext(ctx).Raw(rideSelect+` WHERE id = ? LIMIT 1`, id).Scan(&row).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	if row.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	ride := row.toModel()
	return &ride, nil
}

func (r *RideRepository) Create(ctx context.Context, ride model.Ride) (*model.Ride, error) {
	var startLat, startLng, endLat, endLng *float64
	if ride.StartLocation != nil {
		startLat = &ride.StartLocation.Latitude
		startLng = &ride.StartLocation.Longitude
	}
	if ride.EndLocation != nil {
		endLat = &ride.EndLocation.Latitude
		endLng = &ride.EndLocation.Longitude
	}

	var saved rideRow
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO rides (driver_id, vehicle_no, start_latitude, start_longitude, end_latitude, end_longitude, ride_time, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, driver_id, vehicle_no, start_latitude, start_longitude,
			end_latitude, end_longitude, ride_time, status, created_at
	`,
		ride.DriverID,
		ride.VehicleNo,
		startLat,
		startLng,
		endLat,
		endLng,
		ride.RideTime,
		string(ride.Status),
	).Scan(&saved).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	created := saved.toModel()
	return &created, nil
}

func (r *RideRepository) Update(ctx context.Context, id uuid.UUID, update model.RideUpdate) error {
	var sets []string
	var args []interface{}
	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*update.Status))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	result := r.db.WithContext(ctx).Exec(
		`UPDATE rides SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RideRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM rides WHERE id = ?`, id)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
