package services

import (
	"errors"
	"sync"
	"time"

	"condo_manager/internal/models"
	"condo_manager/internal/repository"
	"condo_manager/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CloseActiveResult reports the outcome of a close-active sweep. Rows are
// closed independently, so some may fail while others succeed.
type CloseActiveResult struct {
	Closed int      `json:"closed"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

type AttendanceService interface {
	CheckIn(userID uint) (*models.Attendance, error)
	CheckOut(userID uint) (*models.Attendance, error)
	CloseActive() (*CloseActiveResult, error)
	Today(userID uint) (*models.Attendance, error)
	Recent(adminID uint, limit int) ([]models.Attendance, error)
}

type attendanceService struct {
	attendanceRepo   repository.AttendanceRepository
	userRepo         repository.UserRepository
	gamification     GamificationService
	workStartMinutes int
	now              func() time.Time
}

func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	userRepo repository.UserRepository,
	gamification GamificationService,
	workStartMinutes int,
) AttendanceService {
	return &attendanceService{
		attendanceRepo:   attendanceRepo,
		userRepo:         userRepo,
		gamification:     gamification,
		workStartMinutes: workStartMinutes,
		now:              time.Now,
	}
}

func (s *attendanceService) CheckIn(userID uint) (*models.Attendance, error) {
	now := s.now()
	today := DayStart(now)

	existing, err := s.attendanceRepo.GetByUserAndDate(userID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && existing.CheckIn != nil {
		return nil, ErrAlreadyCheckedIn
	}

	attendance := existing
	if attendance == nil {
		attendance = &models.Attendance{UserID: userID, Date: today}
	}
	attendance.CheckIn = &now
	attendance.Status = string(CheckInStatus(now, s.workStartMinutes))

	if existing == nil {
		err = s.attendanceRepo.Create(attendance)
	} else {
		err = s.attendanceRepo.Update(attendance)
	}
	if err != nil {
		return nil, err
	}

	// Gamification is best-effort: never blocks the check-in response
	if s.gamification != nil {
		if err := s.gamification.UpdateCheckInStreak(userID, now); err != nil {
			logger.Log.Warn("check-in streak update failed", zap.Uint("user_id", userID), zap.Error(err))
		}
		if err := s.gamification.CheckEarlyCheckIn(userID, now); err != nil {
			logger.Log.Warn("early check-in bonus failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}

	return attendance, nil
}

func (s *attendanceService) CheckOut(userID uint) (*models.Attendance, error) {
	now := s.now()
	today := DayStart(now)

	attendance, err := s.attendanceRepo.GetByUserAndDate(userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}
	if attendance.CheckIn == nil {
		return nil, ErrNotCheckedIn
	}
	if attendance.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	attendance.CheckOut = &now
	if err := s.attendanceRepo.Update(attendance); err != nil {
		return nil, err
	}
	return attendance, nil
}

// CloseActive force-closes every open session for today. Compensates for
// workers who never checked out; each row is closed independently.
func (s *attendanceService) CloseActive() (*CloseActiveResult, error) {
	now := s.now()
	active, err := s.attendanceRepo.GetActiveByDate(DayStart(now))
	if err != nil {
		return nil, err
	}

	result := &CloseActiveResult{}
	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := range active {
		attendance := active[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			attendance.CheckOut = &now
			err := s.attendanceRepo.Update(&attendance)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, err.Error())
				return
			}
			result.Closed++
		}()
	}
	wg.Wait()

	if result.Failed > 0 {
		logger.Log.Warn("close-active completed with failures",
			zap.Int("closed", result.Closed), zap.Int("failed", result.Failed))
	}
	return result, nil
}

func (s *attendanceService) Today(userID uint) (*models.Attendance, error) {
	attendance, err := s.attendanceRepo.GetByUserAndDate(userID, DayStart(s.now()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return attendance, nil
}

func (s *attendanceService) Recent(adminID uint, limit int) ([]models.Attendance, error) {
	workers, err := s.userRepo.GetByParentID(adminID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(workers))
	for _, worker := range workers {
		ids = append(ids, worker.ID)
	}
	if len(ids) == 0 {
		return []models.Attendance{}, nil
	}

	return s.attendanceRepo.GetRecentByUserIDs(ids, clampLimit(limit, defaultPageSize, maxPageSize))
}
