package services

import (
	"errors"
	"fmt"
	"time"

	"condo_manager/internal/models"
	"condo_manager/internal/repository"
	"condo_manager/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompleteSubtaskInput struct {
	ReportBefore string
	ReportAfter  string
	PhotosBefore []string
	PhotosAfter  []string
}

type SubtaskService interface {
	Complete(subtaskID, userID uint, input CompleteSubtaskInput) (*models.Subtask, error)
}

type subtaskService struct {
	subtaskRepo   repository.SubtaskRepository
	taskRepo      repository.TaskRepository
	notifications NotificationService
	gamification  GamificationService
	now           func() time.Time
}

func NewSubtaskService(
	subtaskRepo repository.SubtaskRepository,
	taskRepo repository.TaskRepository,
	notifications NotificationService,
	gamification GamificationService,
) SubtaskService {
	return &subtaskService{
		subtaskRepo:   subtaskRepo,
		taskRepo:      taskRepo,
		notifications: notifications,
		gamification:  gamification,
		now:           time.Now,
	}
}

func (s *subtaskService) Complete(subtaskID, userID uint, input CompleteSubtaskInput) (*models.Subtask, error) {
	subtask, err := s.subtaskRepo.GetByID(subtaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	assigned, err := s.taskRepo.IsAssigned(subtask.TaskID, userID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrNotFound
	}
	if subtask.IsCompleted {
		return nil, ErrSubtaskCompleted
	}

	now := s.now()
	subtask.IsCompleted = true
	subtask.CompletedByID = &userID
	subtask.CompletedAt = &now
	subtask.ReportBefore = input.ReportBefore
	subtask.ReportAfter = input.ReportAfter
	subtask.PhotosBefore = input.PhotosBefore
	subtask.PhotosAfter = input.PhotosAfter

	if err := s.subtaskRepo.Update(subtask); err != nil {
		return nil, err
	}

	if err := s.recomputeTaskStatus(subtask.TaskID, userID, now); err != nil {
		return nil, err
	}
	return subtask, nil
}

// recomputeTaskStatus derives the parent task's status from its
// subtasks: all complete -> COMPLETED, first completion while PENDING
// -> IN_PROGRESS.
func (s *subtaskService) recomputeTaskStatus(taskID, completedByID uint, now time.Time) error {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return err
	}

	incomplete, err := s.subtaskRepo.CountIncomplete(taskID)
	if err != nil {
		return err
	}

	if incomplete == 0 {
		task.Status = string(models.TaskCompleted)
		task.ActualEndDate = &now
		if task.ActualStartDate == nil {
			task.ActualStartDate = &now
		}
		if err := s.taskRepo.Update(task); err != nil {
			return err
		}

		s.notifications.NotifyUsers([]uint{task.CreatedByID}, string(models.NotificationTaskCompleted),
			"Task completed", fmt.Sprintf("%q was completed", task.Title), &task.ID)

		// Points are best-effort and never block completion
		if s.gamification != nil {
			if err := s.gamification.AwardTaskCompletion(completedByID, task.Priority); err != nil {
				logger.Log.Warn("task completion points failed",
					zap.Uint("user_id", completedByID), zap.Error(err))
			}
		}
		return nil
	}

	if task.Status == string(models.TaskPending) {
		task.Status = string(models.TaskInProgress)
		task.ActualStartDate = &now
		return s.taskRepo.Update(task)
	}
	return nil
}
