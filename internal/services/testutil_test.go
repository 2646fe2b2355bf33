package services

import (
	"testing"
	"time"

	"condo_manager/internal/database"
	"condo_manager/internal/models"
	"condo_manager/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	admin := &models.User{
		Email:    "admin@test.local",
		Password: "hash",
		Name:     "Admin",
		Role:     string(models.RoleAdmin),
		IsActive: true,
	}
	require.NoError(t, repository.NewUserRepository(db).Create(admin))
	return admin
}

func createTestWorker(t *testing.T, db *gorm.DB, admin *models.User, email string) *models.User {
	t.Helper()

	worker := &models.User{
		Email:    email,
		Password: "hash",
		Name:     "Worker " + email,
		Role:     string(models.RoleWorker),
		ParentID: &admin.ID,
		IsActive: true,
	}
	require.NoError(t, repository.NewUserRepository(db).Create(worker))
	return worker
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
