package handlers

import (
	"net/http"

	"condo_manager/internal/middleware"
	"condo_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type SubtaskHandler struct {
	subtaskService services.SubtaskService
}

func NewSubtaskHandler(subtaskService services.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{subtaskService: subtaskService}
}

func (h *SubtaskHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ReportBefore string   `json:"report_before"`
		ReportAfter  string   `json:"report_after" binding:"required"`
		PhotosBefore []string `json:"photos_before"`
		PhotosAfter  []string `json:"photos_after"`
	}
	if !bindJSON(c, &req) {
		return
	}

	subtask, err := h.subtaskService.Complete(id, middleware.UserID(c), services.CompleteSubtaskInput{
		ReportBefore: req.ReportBefore,
		ReportAfter:  req.ReportAfter,
		PhotosBefore: req.PhotosBefore,
		PhotosAfter:  req.PhotosAfter,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subtask": subtask})
}
