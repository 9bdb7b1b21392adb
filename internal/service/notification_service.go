package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "dataconsult/internal/errors"
	"dataconsult/internal/model"
	"dataconsult/internal/repository"
)

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

// NotificationList is the admin notification feed.
type NotificationList struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int64                `json:"unreadCount"`
}

// NotificationService manages admin notifications.
type NotificationService interface {
	Notify(ctx context.Context, kind model.NotificationType, title, message, link string)
	List(ctx context.Context, unreadOnly bool, limit int) (*NotificationList, error)
	MarkAllRead(ctx context.Context) (int64, error)
}

type notificationService struct {
	repo   repository.NotificationRepository
	logger *slog.Logger
}

// NewNotificationService creates a notification service.
func NewNotificationService(repo repository.NotificationRepository, logger *slog.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

// Notify records a notification. It is a side effect of another write, so a
// failure is logged and never fails the triggering request.
func (s *notificationService) Notify(ctx context.Context, kind model.NotificationType, title, message, link string) {
	n := &model.Notification{Type: kind, Title: title, Message: message, Link: link}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.ErrorContext(ctx, "create notification failed", "type", kind, "error", err)
	}
}

// List returns the newest notifications and the total unread count.
func (s *notificationService) List(ctx context.Context, unreadOnly bool, limit int) (*NotificationList, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	items, err := s.repo.List(ctx, unreadOnly, limit)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("list notifications: %w", err))
	}
	unread, err := s.repo.CountUnread(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("count unread: %w", err))
	}
	if items == nil {
		items = []model.Notification{}
	}
	return &NotificationList{Notifications: items, UnreadCount: unread}, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx)
	if err != nil {
		return 0, apperrors.Internal(fmt.Errorf("mark all read: %w", err))
	}
	return n, nil
}
