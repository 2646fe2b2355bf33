package handlers

import (
	"net/http"
	"strconv"

	"condo_manager/internal/middleware"
	"condo_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	attendanceService services.AttendanceService
}

func NewAttendanceHandler(attendanceService services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	attendance, err := h.attendanceService.CheckIn(middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"attendance": attendance})
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	attendance, err := h.attendanceService.CheckOut(middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": attendance})
}

func (h *AttendanceHandler) CloseActive(c *gin.Context) {
	result, err := h.attendanceService.CloseActive()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AttendanceHandler) Today(c *gin.Context) {
	attendance, err := h.attendanceService.Today(middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": attendance})
}

func (h *AttendanceHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	attendances, err := h.attendanceService.Recent(middleware.UserID(c), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendances": attendances})
}
