package services

import (
	"errors"

	"condo_manager/internal/models"
	"condo_manager/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateWorkerInput struct {
	Email     string
	Password  string
	Name      string
	Phone     string
	Apartment string
}

type UpdateUserInput struct {
	Name      *string
	Phone     *string
	Apartment *string
	IsActive  *bool
}

type UpdateProfileInput struct {
	Name      *string
	Phone     *string
	Apartment *string
	AvatarURL *string
}

type UserService interface {
	CreateWorker(adminID uint, input CreateWorkerInput) (*models.User, error)
	GetWorkers(adminID uint) ([]models.User, error)
	GetOwnedWorker(adminID, workerID uint) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Update(adminID, workerID uint, input UpdateUserInput) (*models.User, error)
	UpdateProfile(actorID uint, actorRole string, targetID uint, input UpdateProfileInput) (*models.User, error)
	Delete(adminID, workerID uint) error
}

type userService struct {
	userRepo     repository.UserRepository
	gamification GamificationService
}

func NewUserService(userRepo repository.UserRepository, gamification GamificationService) UserService {
	return &userService{userRepo: userRepo, gamification: gamification}
}

func (s *userService) CreateWorker(adminID uint, input CreateWorkerInput) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	parentID := adminID
	worker := &models.User{
		Email:     input.Email,
		Password:  string(hashedPassword),
		Name:      input.Name,
		Role:      string(models.RoleWorker),
		ParentID:  &parentID,
		Phone:     input.Phone,
		Apartment: input.Apartment,
		IsActive:  true,
	}
	if err := s.userRepo.Create(worker); err != nil {
		return nil, err
	}

	if s.gamification != nil {
		_ = s.gamification.InitializeForWorker(worker.ID)
	}
	return worker, nil
}

func (s *userService) GetWorkers(adminID uint) ([]models.User, error) {
	return s.userRepo.GetByParentID(adminID)
}

// GetOwnedWorker resolves a worker only when it belongs to the admin;
// anything else reads as not found.
func (s *userService) GetOwnedWorker(adminID, workerID uint) (*models.User, error) {
	worker, err := s.userRepo.GetByID(workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if worker.ParentID == nil || *worker.ParentID != adminID {
		return nil, ErrNotFound
	}
	return worker, nil
}

func (s *userService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(adminID, workerID uint, input UpdateUserInput) (*models.User, error) {
	worker, err := s.GetOwnedWorker(adminID, workerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		worker.Name = *input.Name
	}
	if input.Phone != nil {
		worker.Phone = *input.Phone
	}
	if input.Apartment != nil {
		worker.Apartment = *input.Apartment
	}
	if input.IsActive != nil {
		worker.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(worker); err != nil {
		return nil, err
	}
	return worker, nil
}

func (s *userService) UpdateProfile(actorID uint, actorRole string, targetID uint, input UpdateProfileInput) (*models.User, error) {
	if actorID != targetID {
		// Only the owning admin may edit someone else's profile
		if actorRole != string(models.RoleAdmin) {
			return nil, ErrNotFound
		}
		if _, err := s.GetOwnedWorker(actorID, targetID); err != nil {
			return nil, err
		}
	}

	user, err := s.GetByID(targetID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Apartment != nil {
		user.Apartment = *input.Apartment
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(adminID, workerID uint) error {
	worker, err := s.GetOwnedWorker(adminID, workerID)
	if err != nil {
		return err
	}

	worker.IsActive = false
	if err := s.userRepo.Update(worker); err != nil {
		return err
	}
	return s.userRepo.Delete(worker.ID)
}
