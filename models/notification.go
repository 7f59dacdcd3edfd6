package models

import "gorm.io/gorm"

const (
	NotificationSystem       = "SYSTEM"
	NotificationAnnouncement = "ANNOUNCEMENT"
	NotificationAlert        = "ALERT"
	NotificationReminder     = "REMINDER"
)

type Notification struct {
	gorm.Model
	SenderID    uint   `gorm:"not null;index" json:"sender_id"`
	RecipientID uint   `gorm:"not null;index" json:"recipient_id"`
	Role        string `gorm:"not null" json:"role"` // recipient's role at send time
	Title       string `gorm:"size:100;not null" json:"title"`
	Message     string `gorm:"not null" json:"message"`
	IsRead      bool   `gorm:"default:false" json:"is_read"`
	Type        string `gorm:"default:SYSTEM" json:"type"` // SYSTEM, ANNOUNCEMENT, ALERT, REMINDER
}
