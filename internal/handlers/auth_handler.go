package handlers

import (
	"net/http"

	"condo_manager/internal/middleware"
	"condo_manager/internal/models"
	"condo_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  services.AuthService
	sessionHours int
}

func NewAuthHandler(authService services.AuthService, sessionHours int) *AuthHandler {
	return &AuthHandler{authService: authService, sessionHours: sessionHours}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Name     string `json:"name" binding:"required"`
		Role     string `json:"role" binding:"required,oneof=ADMIN WORKER"`
		ParentID *uint  `json:"parent_id"`
	}
	if !bindJSON(c, &req) {
		return
	}

	// Open ADMIN registration only for first-run setup
	if req.Role == string(models.RoleAdmin) {
		needsSetup, err := h.authService.NeedsSetup()
		if err != nil {
			handleError(c, err)
			return
		}
		if !needsSetup {
			handleError(c, services.ErrSetupDone)
			return
		}
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
		ParentID: req.ParentID,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookie, token, h.sessionHours*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *AuthHandler) SetupCheck(c *gin.Context) {
	needsSetup, err := h.authService.NeedsSetup()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"needs_setup": needsSetup})
}
