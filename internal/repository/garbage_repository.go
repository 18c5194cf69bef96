package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleetadmin/internal/model"
)

type GarbageRepository struct {
	db *gorm.DB
}

func NewGarbageRepository(db *gorm.DB) *GarbageRepository {
	return &GarbageRepository{db: db}
}

type garbageRow struct {
	ID         uuid.UUID
	RideID     uuid.UUID
	Categories string
	CreatedAt  time.Time
}

func (row garbageRow) toModel() model.GarbageRecord {
	var categories []string
	if err := json.Unmarshal([]byte(row.Categories), &categories); err != nil || categories == nil {
		categories = []string{}
	}
	return model.GarbageRecord{
		ID:         row.ID,
		RideID:     row.RideID,
		Categories: categories,
		CreatedAt:  row.CreatedAt,
	}
}

func (r *GarbageRepository) List(ctx context.Context) ([]model.GarbageRecord, error) {
	var rows []garbageRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, ride_id, categories, created_at
		FROM garbage_categories
		ORDER BY created_at DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, wrapStore(err)
	}

	records := make([]model.GarbageRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toModel())
	}
	return records, nil
}

func (r *GarbageRepository) Create(ctx context.Context, rideID uuid.UUID, categories []string) (*model.GarbageRecord, error) {
	if categories == nil {
		categories = []string{}
	}
	encoded, err := json.Marshal(categories)
	if err != nil {
		return nil, wrapStore(err)
	}

	var saved garbageRow
	err = r.db.WithContext(ctx).Raw(`
		INSERT INTO garbage_categories (ride_id, categories)
		VALUES (?, ?)
		RETURNING id, ride_id, categories, created_at
	`, rideID, string(encoded)).Scan(&saved).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	created := saved.toModel()
	return &created, nil
}

func (r *GarbageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM garbage_categories WHERE id = ?`, id)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
