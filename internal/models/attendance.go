package models

import (
	"time"

	"gorm.io/gorm"
)

type Attendance struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_attendance_user_date"`
	Date      time.Time      `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date"`
	CheckIn   *time.Time     `json:"check_in"`
	CheckOut  *time.Time     `json:"check_out"`
	Status    string         `json:"status" gorm:"default:'PRESENT'"` // PRESENT, LATE
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceLate    AttendanceStatus = "LATE"
)
