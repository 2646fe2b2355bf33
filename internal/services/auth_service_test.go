package services

import (
	"testing"
	"time"

	"condo_manager/internal/models"
	"condo_manager/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB) AuthService {
	t.Helper()

	return NewAuthService(
		repository.NewUserRepository(db),
		newGamificationService(t, db),
		"test-secret",
		time.Hour,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	needsSetup, err := svc.NeedsSetup()
	require.NoError(t, err)
	assert.True(t, needsSetup)

	admin, err := svc.Register(RegisterInput{
		Email:    "admin@condo.local",
		Password: "secret123",
		Name:     "Admin",
		Role:     string(models.RoleAdmin),
	})
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", admin.Password) // stored hashed

	needsSetup, err = svc.NeedsSetup()
	require.NoError(t, err)
	assert.False(t, needsSetup)

	user, token, err := svc.Login("admin@condo.local", "secret123")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, user.ID)
	assert.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.Register(RegisterInput{
		Email:    "admin@condo.local",
		Password: "secret123",
		Name:     "Admin",
		Role:     string(models.RoleAdmin),
	})
	require.NoError(t, err)

	_, _, err = svc.Login("admin@condo.local", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@condo.local", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterWorkerRequiresParent(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	_, err := svc.Register(RegisterInput{
		Email:    "worker@condo.local",
		Password: "secret123",
		Name:     "Worker",
		Role:     string(models.RoleWorker),
	})
	assert.ErrorIs(t, err, ErrParentRequired)
}

func TestRegisterWorkerInitializesGamification(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	admin, err := svc.Register(RegisterInput{
		Email:    "admin@condo.local",
		Password: "secret123",
		Name:     "Admin",
		Role:     string(models.RoleAdmin),
	})
	require.NoError(t, err)

	worker, err := svc.Register(RegisterInput{
		Email:    "worker@condo.local",
		Password: "secret123",
		Name:     "Worker",
		Role:     string(models.RoleWorker),
		ParentID: &admin.ID,
	})
	require.NoError(t, err)

	var record models.UserGamification
	require.NoError(t, db.Where("user_id = ?", worker.ID).First(&record).Error)
	assert.Equal(t, 1, record.Level)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	input := RegisterInput{
		Email:    "admin@condo.local",
		Password: "secret123",
		Name:     "Admin",
		Role:     string(models.RoleAdmin),
	}
	_, err := svc.Register(input)
	require.NoError(t, err)

	_, err = svc.Register(input)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	admin, err := svc.Register(RegisterInput{
		Email:    "admin@condo.local",
		Password: "secret123",
		Name:     "Admin",
		Role:     string(models.RoleAdmin),
	})
	require.NoError(t, err)

	token, err := svc.GenerateToken(admin)
	require.NoError(t, err)

	_, err = svc.ParseToken(token + "x")
	assert.Error(t, err)

	other := NewAuthService(repository.NewUserRepository(db), nil, "other-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}
