package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleetadmin/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationRow struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Message          string
	RideID           uuid.UUID
	NotificationType string
	Read             bool
	CreatedAt        time.Time
}

func (row notificationRow) toModel() model.Notification {
	return model.Notification{
		ID:        row.ID,
		UserID:    row.UserID,
		Message:   row.Message,
		RideID:    row.RideID,
		Audience:  model.Audience(row.NotificationType),
		Read:      row.Read,
		CreatedAt: row.CreatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	var saved notificationRow
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO notifications (user_id, message, ride_id, notification_type, read)
		VALUES (?, ?, ?, ?, FALSE)
		RETURNING id, user_id, message, ride_id, notification_type, read, created_at
	`,
		notification.UserID,
		notification.Message,
		notification.RideID,
		string(notification.Audience),
	).Scan(&saved).Error
	if err != nil {
		return nil, wrapStore(err)
	}
	created := saved.toModel()
	return &created, nil
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	var rows []notificationRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, user_id, message, ride_id, notification_type, read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID).Scan(&rows).Error
	if err != nil {
		return nil, wrapStore(err)
	}

	notifications := make([]model.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, row.toModel())
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`UPDATE notifications SET read = TRUE WHERE id = ?`, id)
	if result.Error != nil {
		return wrapStore(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
