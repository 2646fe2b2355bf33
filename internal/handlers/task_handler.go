package handlers

import (
	"net/http"
	"strconv"
	"time"

	"condo_manager/internal/middleware"
	"condo_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) List(c *gin.Context) {
	input := services.TaskListInput{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		All:      c.Query("all") == "true",
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		input.Limit = limit
	}

	result, err := h.taskService.List(middleware.UserID(c), middleware.Role(c), input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Title              string     `json:"title" binding:"required"`
		Description        string     `json:"description"`
		Priority           string     `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH URGENT"`
		Category           string     `json:"category"`
		ScheduledStartDate time.Time  `json:"scheduled_start_date" binding:"required"`
		ScheduledEndDate   time.Time  `json:"scheduled_end_date" binding:"required"`
		AssigneeIDs        []uint     `json:"assignee_ids"`
		Subtasks           []string   `json:"subtasks"`
		IsRecurring        bool       `json:"is_recurring"`
		RecurrencePattern  string     `json:"recurrence_pattern" binding:"required_if=IsRecurring true,omitempty,oneof=DAILY WEEKLY MONTHLY"`
		RecurrenceEndDate  *time.Time `json:"recurrence_end_date"`
		Costs              []struct {
			Description string  `json:"description"`
			Amount      float64 `json:"amount" binding:"required"`
			Type        string  `json:"type" binding:"omitempty,oneof=MATERIAL LABOR OTHER"`
		} `json:"costs"`
	}
	if !bindJSON(c, &req) {
		return
	}

	input := services.CreateTaskInput{
		Title:              req.Title,
		Description:        req.Description,
		Priority:           req.Priority,
		Category:           req.Category,
		ScheduledStartDate: req.ScheduledStartDate,
		ScheduledEndDate:   req.ScheduledEndDate,
		AssigneeIDs:        req.AssigneeIDs,
		Subtasks:           req.Subtasks,
		IsRecurring:        req.IsRecurring,
		RecurrencePattern:  req.RecurrencePattern,
		RecurrenceEndDate:  req.RecurrenceEndDate,
	}
	for _, cost := range req.Costs {
		input.Costs = append(input.Costs, services.CostInput{
			Description: cost.Description,
			Amount:      cost.Amount,
			Type:        cost.Type,
		})
	}

	task, err := h.taskService.Create(middleware.UserID(c), input)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(id, middleware.UserID(c), middleware.Role(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(id, middleware.UserID(c)); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *TaskHandler) GenerateRecurring(c *gin.Context) {
	result, err := h.taskService.GenerateRecurring()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
