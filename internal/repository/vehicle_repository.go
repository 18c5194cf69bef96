package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleetadmin/internal/model"
)

var vehicleColumns = map[string]bool{
	"vehicle_no": true,
	"status":     true,
	"created_at": true,
}

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

type vehicleRow struct {
	ID              uuid.UUID
	VehicleNo       string
	Condition       string
	KmDone          int64
	LastServiceDate *string
	Status          string
	CreatedAt       time.Time
}

func (row vehicleRow) toModel() model.Vehicle {
	return model.Vehicle{
		ID:          row.ID,
		VehicleNo:   row.VehicleNo,
		Condition:   row.Condition,
		KmDone:      row.KmDone,
		LastService: NormalizeDate(row.LastServiceDate),
		Status:      model.VehicleStatus(row.Status),
		CreatedAt:   row.CreatedAt,
	}
}

const vehicleSelect = `
	SELECT id, vehicle_no, condition, km_done, last_service_date, status, created_at
	FROM vehicles`

func (r *VehicleRepository) List(ctx context.Context, opts ListOptions) ([]model.Vehicle, error) {
	query, args, err := applyOptions(vehicleSelect, nil, opts, vehicleColumns)
	if err != nil {
		return nil, err
	}

	var rows []vehicleRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, wrapStore(err)
	}

	vehicles := make([]model.Vehicle, 0, len(rows))
	for _, row := range rows {
		vehicles = append(vehicles, row.toModel())
	}
	return vehicles, nil
}

func (r *VehicleRepository) Count(ctx context.Context, opts ListOptions) (int64, error) {
	query, args, err := applyOptions(`SELECT COUNT(*) FROM vehicles`, nil, opts, vehicleColumns)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&count).Error; err != nil {
		return 0, wrapStore(err)
	}
	return count, nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	var row vehicleRow
	err := r.db.WithContext(ctx).Raw(vehicleSelect+` WHERE id = ? LIMIT 1`, id).Scan(&row).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	if row.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	vehicle := row.toModel()
	return &vehicle, nil
}

// Create stores the service date exactly as submitted; normalization happens
// on the way back out.
func (r *VehicleRepository) Create(ctx context.Context, vehicleNo, condition string, kmDone int64, lastServiceDate string, status model.VehicleStatus) (*model.Vehicle, error) {
	var saved vehicleRow
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO vehicles (vehicle_no, condition, km_done, last_service_date, status)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, vehicle_no, condition, km_done, last_service_date, status, created_at
	`, vehicleNo, condition, kmDone, lastServiceDate, string(status)).Scan(&saved).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	created := saved.toModel()
	return &created, nil
}

func (r *VehicleRepository) Update(ctx context.Context, id uuid.UUID, update model.VehicleUpdate) error {
	var sets []string
	var args []interface{}
	add := func(clause string, value interface{}) {
		sets = append(sets, clause)
		args = append(args, value)
	}

	if update.VehicleNo != nil {
		add("vehicle_no = ?", *update.VehicleNo)
	}
	if update.Condition != nil {
		add("condition = ?", *update.Condition)
	}
	if update.KmDone != nil {
		add("km_done = ?", *update.KmDone)
	}
	if update.LastService != nil {
		add("last_service_date = ?", *update.LastService)
	}
	if update.Status != nil {
		add("status = ?", string(*update.Status))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	result := r.db.WithContext(ctx).Exec(
		`UPDATE vehicles SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
