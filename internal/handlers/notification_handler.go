package handlers

import (
	"net/http"

	"condo_manager/internal/middleware"
	"condo_manager/internal/models"
	"condo_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService services.NotificationService
	userService         services.UserService
}

func NewNotificationHandler(
	notificationService services.NotificationService,
	userService services.UserService,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		userService:         userService,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.notificationService.GetForUser(middleware.UserID(c), unreadOnly)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var req struct {
		UserID        uint   `json:"user_id" binding:"required"`
		Type          string `json:"type" binding:"omitempty,oneof=TASK_ASSIGNED TASK_COMPLETED GENERAL"`
		Title         string `json:"title" binding:"required"`
		Message       string `json:"message"`
		RelatedTaskID *uint  `json:"related_task_id"`
	}
	if !bindJSON(c, &req) {
		return
	}

	// Admin may only notify workers it owns
	if _, err := h.userService.GetOwnedWorker(middleware.UserID(c), req.UserID); err != nil {
		handleError(c, err)
		return
	}

	notifType := req.Type
	if notifType == "" {
		notifType = string(models.NotificationGeneral)
	}

	notification := &models.Notification{
		UserID:        req.UserID,
		Type:          notifType,
		Title:         req.Title,
		Message:       req.Message,
		RelatedTaskID: req.RelatedTaskID,
	}
	if err := h.notificationService.Create(notification); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notification": notification})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(id, middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": notification})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(id, middleware.UserID(c)); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
