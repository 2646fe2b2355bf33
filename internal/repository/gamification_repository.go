package repository

import (
	"condo_manager/internal/models"

	"gorm.io/gorm"
)

type GamificationRepository interface {
	Create(record *models.UserGamification) error
	GetByUserID(userID uint) (*models.UserGamification, error)
	GetTopByUserIDs(userIDs []uint, limit int) ([]models.UserGamification, error)
	Update(record *models.UserGamification) error
}

type gamificationRepository struct {
	db *gorm.DB
}

func NewGamificationRepository(db *gorm.DB) GamificationRepository {
	return &gamificationRepository{db: db}
}

func (r *gamificationRepository) Create(record *models.UserGamification) error {
	return r.db.Create(record).Error
}

func (r *gamificationRepository) GetByUserID(userID uint) (*models.UserGamification, error) {
	var record models.UserGamification
	err := r.db.Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *gamificationRepository) GetTopByUserIDs(userIDs []uint, limit int) ([]models.UserGamification, error) {
	var records []models.UserGamification
	err := r.db.Where("user_id IN ?", userIDs).
		Order("points desc").Limit(limit).Find(&records).Error
	return records, err
}

func (r *gamificationRepository) Update(record *models.UserGamification) error {
	return r.db.Save(record).Error
}
