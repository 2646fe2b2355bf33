package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"not null;index"`
	Type          string         `json:"type" gorm:"not null"` // TASK_ASSIGNED, TASK_COMPLETED, GENERAL
	Title         string         `json:"title" gorm:"not null"`
	Message       string         `json:"message"`
	IsRead        bool           `json:"is_read" gorm:"default:false"`
	RelatedTaskID *uint          `json:"related_task_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type NotificationType string

const (
	NotificationTaskAssigned  NotificationType = "TASK_ASSIGNED"
	NotificationTaskCompleted NotificationType = "TASK_COMPLETED"
	NotificationGeneral       NotificationType = "GENERAL"
)
