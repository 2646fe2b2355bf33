package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	Title              string         `json:"title" gorm:"not null"`
	Description        string         `json:"description"`
	Status             string         `json:"status" gorm:"default:'PENDING';index"` // PENDING, IN_PROGRESS, COMPLETED
	Priority           string         `json:"priority" gorm:"default:'MEDIUM'"`      // LOW, MEDIUM, HIGH, URGENT
	Category           string         `json:"category"`
	ScheduledStartDate time.Time      `json:"scheduled_start_date" gorm:"not null"`
	ScheduledEndDate   time.Time      `json:"scheduled_end_date" gorm:"not null"`
	ActualStartDate    *time.Time     `json:"actual_start_date"`
	ActualEndDate      *time.Time     `json:"actual_end_date"`
	CreatedByID        uint           `json:"created_by_id" gorm:"not null;index"`
	Assignees          []User         `json:"assignees" gorm:"many2many:task_assignments"`
	IsRecurring        bool           `json:"is_recurring" gorm:"default:false"`
	RecurrencePattern  string         `json:"recurrence_pattern"` // DAILY, WEEKLY, MONTHLY
	RecurrenceEndDate  *time.Time     `json:"recurrence_end_date"`
	ParentTaskID       *uint          `json:"parent_task_id" gorm:"index"` // generated instance -> recurring template
	Subtasks           []Subtask      `json:"subtasks" gorm:"constraint:OnDelete:CASCADE"`
	Costs              []TaskCost     `json:"costs" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "DAILY"
	RecurrenceWeekly  RecurrencePattern = "WEEKLY"
	RecurrenceMonthly RecurrencePattern = "MONTHLY"
)
