package models

import (
	"time"

	"gorm.io/gorm"
)

type Subtask struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	TaskID        uint           `json:"task_id" gorm:"not null;index"`
	Title         string         `json:"title" gorm:"not null"`
	Position      int            `json:"position" gorm:"default:0"`
	IsCompleted   bool           `json:"is_completed" gorm:"default:false"`
	CompletedByID *uint          `json:"completed_by_id"`
	CompletedAt   *time.Time     `json:"completed_at"`
	ReportBefore  string         `json:"report_before"`
	ReportAfter   string         `json:"report_after"`
	PhotosBefore  []string       `json:"photos_before" gorm:"serializer:json"`
	PhotosAfter   []string       `json:"photos_after" gorm:"serializer:json"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
