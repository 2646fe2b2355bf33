package handlers

import (
	"net/http"

	"condo_manager/internal/middleware"
	"condo_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	taskService services.TaskService
}

func NewUserHandler(userService services.UserService, taskService services.TaskService) *UserHandler {
	return &UserHandler{userService: userService, taskService: taskService}
}

func (h *UserHandler) List(c *gin.Context) {
	workers, err := h.userService.GetWorkers(middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": workers})
}

func (h *UserHandler) Create(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
		Name      string `json:"name" binding:"required"`
		Phone     string `json:"phone"`
		Apartment string `json:"apartment"`
	}
	if !bindJSON(c, &req) {
		return
	}

	worker, err := h.userService.CreateWorker(middleware.UserID(c), services.CreateWorkerInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Phone:     req.Phone,
		Apartment: req.Apartment,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": worker})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	worker, err := h.userService.GetOwnedWorker(middleware.UserID(c), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": worker})
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name      *string `json:"name"`
		Phone     *string `json:"phone"`
		Apartment *string `json:"apartment"`
		IsActive  *bool   `json:"is_active"`
	}
	if !bindJSON(c, &req) {
		return
	}

	worker, err := h.userService.Update(middleware.UserID(c), id, services.UpdateUserInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Apartment: req.Apartment,
		IsActive:  req.IsActive,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": worker})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(middleware.UserID(c), id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name      *string `json:"name"`
		Phone     *string `json:"phone"`
		Apartment *string `json:"apartment"`
		AvatarURL *string `json:"avatar_url"`
	}
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(middleware.UserID(c), middleware.Role(c), id, services.UpdateProfileInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Apartment: req.Apartment,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Tasks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Ownership check before exposing the worker's tasks
	if _, err := h.userService.GetOwnedWorker(middleware.UserID(c), id); err != nil {
		handleError(c, err)
		return
	}

	tasks, err := h.taskService.GetAssignedToUser(id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}
