package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskCost struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	TaskID      uint           `json:"task_id" gorm:"not null;index"`
	Description string         `json:"description"`
	Amount      float64        `json:"amount" gorm:"not null"`
	Type        string         `json:"type" gorm:"default:'MATERIAL'"` // MATERIAL, LABOR, OTHER
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type CostType string

const (
	CostMaterial CostType = "MATERIAL"
	CostLabor    CostType = "LABOR"
	CostOther    CostType = "OTHER"
)
