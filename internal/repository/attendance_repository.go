package repository

import (
	"time"

	"condo_manager/internal/models"

	"gorm.io/gorm"
)

type AttendanceRepository interface {
	Create(attendance *models.Attendance) error
	GetByUserAndDate(userID uint, date time.Time) (*models.Attendance, error)
	GetActiveByDate(date time.Time) ([]models.Attendance, error)
	GetRecentByUserIDs(userIDs []uint, limit int) ([]models.Attendance, error)
	Update(attendance *models.Attendance) error
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(attendance *models.Attendance) error {
	return r.db.Create(attendance).Error
}

func (r *attendanceRepository) GetByUserAndDate(userID uint, date time.Time) (*models.Attendance, error) {
	var attendance models.Attendance
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

// GetActiveByDate returns rows with a check-in and no check-out for the given day.
func (r *attendanceRepository) GetActiveByDate(date time.Time) ([]models.Attendance, error) {
	var attendances []models.Attendance
	err := r.db.Where("date = ? AND check_in IS NOT NULL AND check_out IS NULL", date).Find(&attendances).Error
	return attendances, err
}

func (r *attendanceRepository) GetRecentByUserIDs(userIDs []uint, limit int) ([]models.Attendance, error) {
	var attendances []models.Attendance
	err := r.db.Where("user_id IN ?", userIDs).Order("date desc, check_in desc").Limit(limit).Find(&attendances).Error
	return attendances, err
}

func (r *attendanceRepository) Update(attendance *models.Attendance) error {
	return r.db.Save(attendance).Error
}
