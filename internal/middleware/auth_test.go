package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"condo_manager/internal/models"
	"condo_manager/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	services.AuthService
	claims map[string]*services.SessionClaims
}

func (s *stubAuthService) ParseToken(token string) (*services.SessionClaims, error) {
	if claims, ok := s.claims[token]; ok {
		return claims, nil
	}
	return nil, services.ErrInvalidCredentials
}

func newTestRouter(auth services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authed := router.Group("", RequireAuth(auth))
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c), "role": Role(c)})
	})
	authed.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRequireAuth(t *testing.T) {
	auth := &stubAuthService{claims: map[string]*services.SessionClaims{
		"worker-token": {UserID: 7, Role: string(models.RoleWorker)},
		"admin-token":  {UserID: 1, Role: string(models.RoleAdmin)},
	}}
	router := newTestRouter(auth)

	t.Run("missing cookie", func(t *testing.T) {
		resp := doRequest(router, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := doRequest(router, "/me", "garbage")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		resp := doRequest(router, "/me", "worker-token")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"user_id":7`)
	})
}

func TestRequireAdmin(t *testing.T) {
	auth := &stubAuthService{claims: map[string]*services.SessionClaims{
		"worker-token": {UserID: 7, Role: string(models.RoleWorker)},
		"admin-token":  {UserID: 1, Role: string(models.RoleAdmin)},
	}}
	router := newTestRouter(auth)

	resp := doRequest(router, "/admin", "worker-token")
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = doRequest(router, "/admin", "admin-token")
	assert.Equal(t, http.StatusOK, resp.Code)
}
