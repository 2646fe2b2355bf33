package repository

import (
	"condo_manager/internal/models"

	"gorm.io/gorm"
)

type SubtaskRepository interface {
	GetByID(id uint) (*models.Subtask, error)
	CountIncomplete(taskID uint) (int64, error)
	Update(subtask *models.Subtask) error
}

type subtaskRepository struct {
	db *gorm.DB
}

func NewSubtaskRepository(db *gorm.DB) SubtaskRepository {
	return &subtaskRepository{db: db}
}

func (r *subtaskRepository) GetByID(id uint) (*models.Subtask, error) {
	var subtask models.Subtask
	err := r.db.First(&subtask, id).Error
	if err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (r *subtaskRepository) CountIncomplete(taskID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Subtask{}).
		Where("task_id = ? AND is_completed = ?", taskID, false).Count(&count).Error
	return count, err
}

func (r *subtaskRepository) Update(subtask *models.Subtask) error {
	return r.db.Save(subtask).Error
}
