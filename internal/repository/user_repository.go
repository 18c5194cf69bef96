package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleetadmin/internal/model"
)

var userColumns = map[string]bool{
	"role":       true,
	"status":     true,
	"email":      true,
	"user_name":  true,
	"created_at": true,
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	UserName  string
	Email     string
	Role      string
	Status    string
	Address   string
	Latitude  *float64
	Longitude *float64
	PushToken *string
	CreatedAt time.Time
}

func (row userRow) toModel() model.User {
	user := model.User{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		UserName:  row.UserName,
		Email:     row.Email,
		Role:      model.Role(row.Role),
		Status:    row.Status,
		Address:   row.Address,
		PushToken: row.PushToken,
		CreatedAt: row.CreatedAt,
	}
	if row.Latitude != nil && row.Longitude != nil {
		user.Location = &model.Coordinate{Latitude: *row.Latitude, Longitude: *row.Longitude}
	}
	return user
}

const userSelect = `
	SELECT id, first_name, last_name, user_name, email, role, status, address,
		latitude, longitude, push_token, created_at
	FROM users`

func (r *UserRepository) List(ctx context.Context, opts ListOptions) ([]model.User, error) {
	query, args, err := applyOptions(userSelect, nil, opts, userColumns)
	if err != nil {
		return nil, err
	}

	var rows []userRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, wrapStore(err)
	}

	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context, opts ListOptions) (int64, error) {
	query, args, err := applyOptions(`SELECT COUNT(*) FROM users`, nil, opts, userColumns)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&count).Error; err != nil {
		return 0, wrapStore(err)
	}
	return count, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Raw(userSelect+` WHERE id = ? LIMIT 1`, id).Scan(&row).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	if row.ID == uuid.Nil {
		return nil, ErrNotFound
	}
	user := row.toModel()
	return &user, nil
}

// Create inserts a profile keyed by the caller-supplied id (the identity
// account id for drivers) and stamps created_at at write time.
func (r *UserRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	var latitude, longitude *float64
	if user.Location != nil {
		latitude = &user.Location.Latitude
		longitude = &user.Location.Longitude
	}

	var saved userRow
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO users (id, first_name, last_name, user_name, email, role, status, address, latitude, longitude, push_token)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, first_name, last_name, user_name, email, role, status, address,
			latitude, longitude, push_token, created_at
	`,
		user.ID,
		user.FirstName,
		user.LastName,
		user.UserName,
		user.Email,
		string(user.Role),
		user.Status,
		user.Address,
		latitude,
		longitude,
		user.PushToken,
	).Scan(&saved).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	created := saved.toModel()
	return &created, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update model.UserUpdate) error {
	var sets []string
	var args []interface{}
	add := func(clause string, value interface{}) {
		sets = append(sets, clause)
		args = append(args, value)
	}

	if update.FirstName != nil {
		add("first_name = ?", *update.FirstName)
	}
	if update.LastName != nil {
		add("last_name = ?", *update.LastName)
	}
	if update.UserName != nil {
		add("user_name = ?", *update.UserName)
	}
	if update.Email != nil {
		add("email = ?", *update.Email)
	}
	if update.Status != nil {
		add("status = ?", *update.Status)
	}
	if update.Address != nil {
		add("address = ?", *update.Address)
	}
	if update.Location != nil {
		add("latitude = ?", update.Location.Latitude)
		add("longitude = ?", update.Location.Longitude)
	}
	if update.PushToken != nil {
		add("push_token = ?", *update.PushToken)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	result := r.db.WithContext(ctx).Exec(
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM users WHERE id = ?`, id)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
