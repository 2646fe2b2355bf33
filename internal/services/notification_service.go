package services

import (
	"errors"
	"sync"

	"condo_manager/internal/models"
	"condo_manager/internal/repository"
	"condo_manager/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NotificationService interface {
	Create(notification *models.Notification) error
	GetForUser(userID uint, unreadOnly bool) ([]models.Notification, error)
	MarkRead(id, userID uint) (*models.Notification, error)
	Delete(id, userID uint) error
	NotifyUsers(userIDs []uint, notifType, title, message string, relatedTaskID *uint)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Create(notification *models.Notification) error {
	return s.notificationRepo.Create(notification)
}

func (s *notificationService) GetForUser(userID uint, unreadOnly bool) ([]models.Notification, error) {
	return s.notificationRepo.GetByUserID(userID, unreadOnly)
}

func (s *notificationService) MarkRead(id, userID uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, ErrNotFound
	}

	notification.IsRead = true
	if err := s.notificationRepo.Update(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) Delete(id, userID uint) error {
	notification, err := s.notificationRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if notification.UserID != userID {
		return ErrNotFound
	}

	return s.notificationRepo.Delete(id)
}

// NotifyUsers fans out one notification per user. Failures are logged,
// never surfaced: notifications must not block the primary action.
func (s *notificationService) NotifyUsers(userIDs []uint, notifType, title, message string, relatedTaskID *uint) {
	var wg sync.WaitGroup
	for _, userID := range userIDs {
		userID := userID
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.notificationRepo.Create(&models.Notification{
				UserID:        userID,
				Type:          notifType,
				Title:         title,
				Message:       message,
				RelatedTaskID: relatedTaskID,
			})
			if err != nil {
				logger.Log.Warn("failed to create notification", zap.Uint("user_id", userID), zap.Error(err))
			}
		}()
	}
	wg.Wait()
}
