package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"condo_manager/internal/models"
	"condo_manager/internal/repository"
	"condo_manager/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

func clampLimit(limit, fallback, max int) int {
	if limit < 1 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

// TaskListInput carries the raw query options; limits are clamped here.
type TaskListInput struct {
	Status   string
	Priority string
	Page     int
	Limit    int
	All      bool
}

type TaskListResult struct {
	Tasks []models.Task `json:"tasks"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// GenerateResult aggregates a generate-recurring sweep. Templates are
// processed independently; partial completion is possible.
type GenerateResult struct {
	Generated int      `json:"generated"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

type CreateTaskInput struct {
	Title              string
	Description        string
	Priority           string
	Category           string
	ScheduledStartDate time.Time
	ScheduledEndDate   time.Time
	AssigneeIDs        []uint
	Subtasks           []string
	Costs              []CostInput
	IsRecurring        bool
	RecurrencePattern  string
	RecurrenceEndDate  *time.Time
}

type CostInput struct {
	Description string
	Amount      float64
	Type        string
}

type TaskService interface {
	Create(adminID uint, input CreateTaskInput) (*models.Task, error)
	GetByID(id, actorID uint, role string) (*models.Task, error)
	List(actorID uint, role string, input TaskListInput) (*TaskListResult, error)
	Delete(id, adminID uint) error
	GenerateRecurring() (*GenerateResult, error)
	GetAssignedToUser(userID uint) ([]models.Task, error)
}

type taskService struct {
	taskRepo      repository.TaskRepository
	userRepo      repository.UserRepository
	notifications NotificationService
	now           func() time.Time
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
) TaskService {
	return &taskService{
		taskRepo:      taskRepo,
		userRepo:      userRepo,
		notifications: notifications,
		now:           time.Now,
	}
}

func (s *taskService) Create(adminID uint, input CreateTaskInput) (*models.Task, error) {
	if input.IsRecurring && !ValidRecurrencePattern(input.RecurrencePattern) {
		return nil, ErrInvalidRecurrence
	}

	assignees := make([]models.User, 0, len(input.AssigneeIDs))
	for _, id := range input.AssigneeIDs {
		user, err := s.userRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		// Admins may only assign their own workers
		if user.ParentID == nil || *user.ParentID != adminID {
			return nil, ErrNotFound
		}
		assignees = append(assignees, *user)
	}

	task := &models.Task{
		Title:              input.Title,
		Description:        input.Description,
		Status:             string(models.TaskPending),
		Priority:           input.Priority,
		Category:           input.Category,
		ScheduledStartDate: input.ScheduledStartDate,
		ScheduledEndDate:   input.ScheduledEndDate,
		CreatedByID:        adminID,
		Assignees:          assignees,
		IsRecurring:        input.IsRecurring,
		RecurrencePattern:  input.RecurrencePattern,
		RecurrenceEndDate:  input.RecurrenceEndDate,
	}
	for i, title := range input.Subtasks {
		task.Subtasks = append(task.Subtasks, models.Subtask{Title: title, Position: i})
	}
	for _, cost := range input.Costs {
		task.Costs = append(task.Costs, models.TaskCost{
			Description: cost.Description,
			Amount:      cost.Amount,
			Type:        cost.Type,
		})
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	s.notifications.NotifyUsers(input.AssigneeIDs, string(models.NotificationTaskAssigned),
		"New task assigned", fmt.Sprintf("You were assigned to %q", task.Title), &task.ID)

	return task, nil
}

func (s *taskService) GetByID(id, actorID uint, role string) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role == string(models.RoleAdmin) {
		if task.CreatedByID != actorID {
			return nil, ErrNotFound
		}
		return task, nil
	}

	assigned, err := s.taskRepo.IsAssigned(id, actorID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrNotFound
	}
	return task, nil
}

func (s *taskService) List(actorID uint, role string, input TaskListInput) (*TaskListResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := clampLimit(input.Limit, defaultPageSize, maxPageSize)

	filter := repository.TaskFilter{
		Status:   input.Status,
		Priority: input.Priority,
		Page:     page,
		Limit:    limit,
		All:      input.All,
	}
	if role == string(models.RoleAdmin) {
		filter.CreatedByID = actorID
	} else {
		filter.AssigneeID = actorID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, err
	}

	return &TaskListResult{Tasks: tasks, Total: total, Page: page, Limit: limit}, nil
}

func (s *taskService) Delete(id, adminID uint) error {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if task.CreatedByID != adminID {
		return ErrNotFound
	}

	return s.taskRepo.Delete(id)
}

// GenerateRecurring is an idempotent catch-up: each template spawns at
// most one new instance per run, and only when its next occurrence is
// already due.
func (s *taskService) GenerateRecurring() (*GenerateResult, error) {
	templates, err := s.taskRepo.GetRecurringTemplates()
	if err != nil {
		return nil, err
	}

	endOfToday := DayEnd(s.now())
	result := &GenerateResult{}
	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := range templates {
		template := templates[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			generated, err := s.generateInstance(&template, endOfToday)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("task %d: %v", template.ID, err))
			case generated:
				result.Generated++
			default:
				result.Skipped++
			}
		}()
	}
	wg.Wait()

	if result.Failed > 0 {
		logger.Log.Warn("recurring generation completed with failures",
			zap.Int("generated", result.Generated), zap.Int("failed", result.Failed))
	}
	return result, nil
}

func (s *taskService) generateInstance(template *models.Task, endOfToday time.Time) (bool, error) {
	// An unknown pattern would project the "next" occurrence onto
	// itself and spawn a duplicate every sweep.
	if !ValidRecurrencePattern(template.RecurrencePattern) {
		return false, fmt.Errorf("unrecognized recurrence pattern %q", template.RecurrencePattern)
	}

	base := template.ScheduledStartDate
	latest, err := s.taskRepo.GetLatestInstance(template.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if latest != nil {
		base = latest.ScheduledStartDate
	}

	next := NextOccurrence(base, template.RecurrencePattern)
	if next.After(endOfToday) {
		return false, nil
	}
	if template.RecurrenceEndDate != nil && next.After(*template.RecurrenceEndDate) {
		return false, nil
	}

	duration := template.ScheduledEndDate.Sub(template.ScheduledStartDate)
	parentID := template.ID
	instance := &models.Task{
		Title:              template.Title,
		Description:        template.Description,
		Status:             string(models.TaskPending),
		Priority:           template.Priority,
		Category:           template.Category,
		ScheduledStartDate: next,
		ScheduledEndDate:   next.Add(duration),
		CreatedByID:        template.CreatedByID,
		ParentTaskID:       &parentID,
		Assignees:          template.Assignees,
	}
	for _, subtask := range template.Subtasks {
		instance.Subtasks = append(instance.Subtasks, models.Subtask{
			Title:    subtask.Title,
			Position: subtask.Position,
		})
	}
	for _, cost := range template.Costs {
		instance.Costs = append(instance.Costs, models.TaskCost{
			Description: cost.Description,
			Amount:      cost.Amount,
			Type:        cost.Type,
		})
	}

	if err := s.taskRepo.Create(instance); err != nil {
		return false, err
	}

	assigneeIDs := make([]uint, 0, len(instance.Assignees))
	for _, assignee := range instance.Assignees {
		assigneeIDs = append(assigneeIDs, assignee.ID)
	}
	s.notifications.NotifyUsers(assigneeIDs, string(models.NotificationTaskAssigned),
		"Recurring task scheduled", fmt.Sprintf("%q is due on %s", instance.Title,
			instance.ScheduledStartDate.Format("2006-01-02")), &instance.ID)

	return true, nil
}

func (s *taskService) GetAssignedToUser(userID uint) ([]models.Task, error) {
	return s.taskRepo.GetAssignedToUser(userID)
}
