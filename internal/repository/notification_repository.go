package repository

import (
	"context"

	"gorm.io/gorm"

	"dataconsult/internal/model"
)

// NotificationRepository defines notification persistence operations.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, unreadOnly bool, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkAllRead(ctx context.Context) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) List(ctx context.Context, unreadOnly bool, limit int) ([]model.Notification, error) {
	q := r.db.WithContext(ctx).Model(&model.Notification{})
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var items []model.Notification
	if err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("is_read = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkAllRead flips every unread notification and returns how many changed.
func (r *notificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("is_read = ?", false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
