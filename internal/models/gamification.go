package models

import (
	"time"
)

// UserGamification keeps one row of points/streak counters per worker.
type UserGamification struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	UserID          uint       `json:"user_id" gorm:"unique;not null"`
	Points          int        `json:"points" gorm:"default:0"`
	Level           int        `json:"level" gorm:"default:1"`
	CurrentStreak   int        `json:"current_streak" gorm:"default:0"`
	LongestStreak   int        `json:"longest_streak" gorm:"default:0"`
	LastCheckInDate *time.Time `json:"last_check_in_date" gorm:"type:date"`
	EarlyCheckIns   int        `json:"early_check_ins" gorm:"default:0"`
	TasksCompleted  int        `json:"tasks_completed" gorm:"default:0"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
