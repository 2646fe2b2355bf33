package repository

import (
	"condo_manager/internal/models"

	"gorm.io/gorm"
)

// TaskFilter narrows List results. Zero values mean "no filter".
type TaskFilter struct {
	CreatedByID uint // admin scope: tasks owned by this admin
	AssigneeID  uint // worker scope: tasks assigned to this worker
	Status      string
	Priority    string
	Page        int
	Limit       int
	All         bool
}

type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(id uint) (*models.Task, error)
	List(filter TaskFilter) ([]models.Task, int64, error)
	Update(task *models.Task) error
	Delete(id uint) error
	CountByStatus(createdByID uint) (map[string]int64, error)
	CountByStatusForAssignee(assigneeID uint) (map[string]int64, error)
	GetRecentCompleted(createdByID uint, limit int) ([]models.Task, error)
	GetActive(createdByID uint) ([]models.Task, error)
	GetAssignedToUser(userID uint) ([]models.Task, error)
	IsAssigned(taskID, userID uint) (bool, error)
	GetRecurringTemplates() ([]models.Task, error)
	GetLatestInstance(parentTaskID uint) (*models.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

func (r *taskRepository) GetByID(id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.Preload("Assignees").Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("subtasks.position asc")
	}).Preload("Costs").First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{})

	if filter.CreatedByID != 0 {
		query = query.Where("created_by_id = ?", filter.CreatedByID)
	}
	if filter.AssigneeID != 0 {
		query = query.Joins("JOIN task_assignments ON task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", filter.AssigneeID)
	}
	if filter.Status != "" {
		query = query.Where("tasks.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("tasks.priority = ?", filter.Priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Assignees").Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("subtasks.position asc")
	}).Preload("Costs").Order("tasks.created_at desc")

	if !filter.All {
		offset := (filter.Page - 1) * filter.Limit
		query = query.Offset(offset).Limit(filter.Limit)
	}

	var tasks []models.Task
	err := query.Find(&tasks).Error
	return tasks, total, err
}

func (r *taskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

func (r *taskRepository) Delete(id uint) error {
	return r.db.Delete(&models.Task{}, id).Error
}

func (r *taskRepository) CountByStatus(createdByID uint) (map[string]int64, error) {
	return r.countGrouped(r.db.Model(&models.Task{}).Where("created_by_id = ?", createdByID))
}

func (r *taskRepository) CountByStatusForAssignee(assigneeID uint) (map[string]int64, error) {
	return r.countGrouped(r.db.Model(&models.Task{}).
		Joins("JOIN task_assignments ON task_assignments.task_id = tasks.id").
		Where("task_assignments.user_id = ?", assigneeID))
}

func (r *taskRepository) countGrouped(query *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := query.Select("tasks.status as status, count(*) as count").Group("tasks.status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *taskRepository) GetRecentCompleted(createdByID uint, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("created_by_id = ? AND status = ? AND actual_end_date IS NOT NULL",
		createdByID, string(models.TaskCompleted)).
		Order("actual_end_date desc").Limit(limit).Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) GetActive(createdByID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("Assignees").
		Where("created_by_id = ? AND status IN ?", createdByID,
			[]string{string(models.TaskPending), string(models.TaskInProgress)}).
		Order("scheduled_end_date asc").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) GetAssignedToUser(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("subtasks.position asc")
	}).Joins("JOIN task_assignments ON task_assignments.task_id = tasks.id").
		Where("task_assignments.user_id = ?", userID).
		Order("tasks.created_at desc").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) IsAssigned(taskID, userID uint) (bool, error) {
	var count int64
	err := r.db.Table("task_assignments").
		Where("task_id = ? AND user_id = ?", taskID, userID).Count(&count).Error
	return count > 0, err
}

func (r *taskRepository) GetRecurringTemplates() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("Assignees").Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("subtasks.position asc")
	}).Preload("Costs").Where("is_recurring = ?", true).Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) GetLatestInstance(parentTaskID uint) (*models.Task, error) {
	var task models.Task
	err := r.db.Where("parent_task_id = ?", parentTaskID).
		Order("scheduled_start_date desc").First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}
