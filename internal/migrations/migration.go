package migrations

import (
	"log"

	"condo_manager/internal/database"
	"condo_manager/internal/models"
	"condo_manager/internal/repository"
	"condo_manager/internal/services"

	"gorm.io/gorm"
)

// RunMigrations recreates the schema and seeds the first admin account.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	log.Println("Dropping existing tables...")
	err := db.Migrator().DropTable(
		&models.User{},
		&models.Attendance{},
		&models.Task{},
		&models.Subtask{},
		&models.TaskCost{},
		&models.Notification{},
		&models.UserGamification{},
		"task_assignments",
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	log.Println("Creating tables...")
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	if err := createDefaultAdmin(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultAdmin(db *gorm.DB) error {
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, nil, "", 0)

	needsSetup, err := authService.NeedsSetup()
	if err != nil {
		return err
	}
	if !needsSetup {
		log.Println("Admin user already exists")
		return nil
	}

	log.Println("Creating default admin user...")
	_, err = authService.Register(services.RegisterInput{
		Email:    "admin@condo.local",
		Password: "admin123",
		Name:     "Administrator",
		Role:     string(models.RoleAdmin),
	})
	if err != nil {
		return err
	}

	log.Println("Default admin created (admin@condo.local / admin123) - change the password")
	return nil
}
