package model

import "time"

// NotificationType tells the admin UI what triggered a notification.
type NotificationType string

const (
	NotificationContact     NotificationType = "CONTACT"
	NotificationFAQQuestion NotificationType = "FAQ_QUESTION"
	NotificationApplication NotificationType = "APPLICATION"
)

// Notification is an admin-facing, system-created message. Only the read flag changes.
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	Type      NotificationType `json:"type" gorm:"size:30;not null;index"`
	Title     string           `json:"title" gorm:"size:255;not null"`
	Message   string           `json:"message" gorm:"type:text"`
	Link      string           `json:"link" gorm:"size:512"`
	Read      bool             `json:"read" gorm:"column:is_read;not null;default:false;index"`
	CreatedAt time.Time        `json:"createdAt" gorm:"index"`
}
