package handlers

import (
	"net/http"

	"condo_manager/internal/middleware"
	"condo_manager/internal/models"
	"condo_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats serves the role-appropriate dashboard: admins get aggregate
// task counts and efficiency, workers their own summary.
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID := middleware.UserID(c)

	if middleware.Role(c) == string(models.RoleAdmin) {
		stats, err := h.dashboardService.Stats(userID)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
		return
	}

	stats, err := h.dashboardService.WorkerStats(userID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) CriticalTasks(c *gin.Context) {
	result, err := h.dashboardService.CriticalTasks(middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DashboardHandler) Workers(c *gin.Context) {
	workers, err := h.dashboardService.Workers(middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}
