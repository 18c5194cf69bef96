package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleetadmin/internal/model"
)

type NewsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

type newsRow struct {
	ID        uuid.UUID
	Heading   string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (row newsRow) toModel() model.NewsItem {
	return model.NewsItem{
		ID:        row.ID,
		Heading:   row.Heading,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// List returns all items newest first, the only order the screens use.
func (r *NewsRepository) List(ctx context.Context) ([]model.NewsItem, error) {
	var rows []newsRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, heading, content, created_at, updated_at
		FROM news
		ORDER BY created_at DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, wrapStore(err)
	}

	items := make([]model.NewsItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return items, nil
}

func (r *NewsRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.NewsItem, error) {
	var row newsRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, heading, content, created_at, updated_at
		FROM news
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	if row.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	item := row.toModel()
	return &item, nil
}

func (r *NewsRepository) Create(ctx context.Context, heading, content string) (*model.NewsItem, error) {
	var saved newsRow
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO news (heading, content)
		VALUES (?, ?)
		RETURNING id, heading, content, created_at, updated_at
	`, heading, content).Scan(&saved).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	item := saved.toModel()
	return &item, nil
}

// Update stamps updated_at alongside whatever fields change.
func (r *NewsRepository) Update(ctx context.Context, id uuid.UUID, update model.NewsUpdate) error {
	sets := []string{"updated_at = NOW()"}
	var args []interface{}
	if update.Heading != nil {
		sets = append(sets, "heading = ?")
		args = append(args, *update.Heading)
	}
	if update.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *update.Content)
	}
	args = append(args, id)

	result := r.db.WithContext(ctx).Exec(
		`UPDATE news SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NewsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM news WHERE id = ?`, id)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
