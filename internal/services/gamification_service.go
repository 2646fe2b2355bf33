package services

import (
	"errors"
	"time"

	"condo_manager/internal/models"
	"condo_manager/internal/redis"
	"condo_manager/internal/repository"
	"condo_manager/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	checkInPoints       = 5
	earlyCheckInPoints  = 10
	streakBonusPoints   = 20
	streakBonusInterval = 7
	pointsPerLevel      = 100
	leaderboardMax      = 50
)

var taskCompletionPoints = map[string]int{
	string(models.PriorityLow):    10,
	string(models.PriorityMedium): 20,
	string(models.PriorityHigh):   30,
	string(models.PriorityUrgent): 50,
}

type GamificationStats struct {
	Points         int        `json:"points"`
	Level          int        `json:"level"`
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	EarlyCheckIns  int        `json:"early_check_ins"`
	TasksCompleted int        `json:"tasks_completed"`
	NextLevelAt    int        `json:"next_level_at"`
	LastCheckIn    *time.Time `json:"last_check_in"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Level  int    `json:"level"`
	Streak int    `json:"streak"`
}

type GamificationService interface {
	InitializeForWorker(userID uint) error
	UpdateCheckInStreak(userID uint, checkIn time.Time) error
	CheckEarlyCheckIn(userID uint, checkIn time.Time) error
	AwardTaskCompletion(userID uint, priority string) error
	ComputeStats(userID uint) (*GamificationStats, error)
	Leaderboard(adminID uint, limit int) ([]LeaderboardEntry, error)
}

type gamificationService struct {
	gamificationRepo  repository.GamificationRepository
	userRepo          repository.UserRepository
	redis             *redis.Client
	earlyBonusMinutes int
	cacheTTL          time.Duration
}

func NewGamificationService(
	gamificationRepo repository.GamificationRepository,
	userRepo repository.UserRepository,
	redisClient *redis.Client,
	earlyBonusMinutes int,
	cacheTTL time.Duration,
) GamificationService {
	return &gamificationService{
		gamificationRepo:  gamificationRepo,
		userRepo:          userRepo,
		redis:             redisClient,
		earlyBonusMinutes: earlyBonusMinutes,
		cacheTTL:          cacheTTL,
	}
}

func (s *gamificationService) InitializeForWorker(userID uint) error {
	_, err := s.gamificationRepo.GetByUserID(userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.gamificationRepo.Create(&models.UserGamification{
		UserID: userID,
		Level:  1,
	})
}

func (s *gamificationService) UpdateCheckInStreak(userID uint, checkIn time.Time) error {
	record, err := s.getOrCreate(userID)
	if err != nil {
		return err
	}

	today := DayStart(checkIn)
	switch {
	case record.LastCheckInDate == nil:
		record.CurrentStreak = 1
	case DayStart(*record.LastCheckInDate).Equal(today):
		// Already counted today, nothing to do
		return nil
	case DayStart(*record.LastCheckInDate).AddDate(0, 0, 1).Equal(today):
		record.CurrentStreak++
	default:
		record.CurrentStreak = 1
	}

	record.LastCheckInDate = &today
	record.Points += checkInPoints
	if record.CurrentStreak > 0 && record.CurrentStreak%streakBonusInterval == 0 {
		record.Points += streakBonusPoints
	}
	if record.CurrentStreak > record.LongestStreak {
		record.LongestStreak = record.CurrentStreak
	}
	record.Level = record.Points/pointsPerLevel + 1

	if err := s.gamificationRepo.Update(record); err != nil {
		return err
	}
	s.invalidateLeaderboard(userID)
	return nil
}

func (s *gamificationService) CheckEarlyCheckIn(userID uint, checkIn time.Time) error {
	if MinutesSinceMidnight(checkIn) > s.earlyBonusMinutes {
		return nil
	}

	record, err := s.getOrCreate(userID)
	if err != nil {
		return err
	}

	record.EarlyCheckIns++
	record.Points += earlyCheckInPoints
	record.Level = record.Points/pointsPerLevel + 1

	if err := s.gamificationRepo.Update(record); err != nil {
		return err
	}
	s.invalidateLeaderboard(userID)
	return nil
}

func (s *gamificationService) AwardTaskCompletion(userID uint, priority string) error {
	points, ok := taskCompletionPoints[priority]
	if !ok {
		points = taskCompletionPoints[string(models.PriorityMedium)]
	}

	record, err := s.getOrCreate(userID)
	if err != nil {
		return err
	}

	record.TasksCompleted++
	record.Points += points
	record.Level = record.Points/pointsPerLevel + 1

	if err := s.gamificationRepo.Update(record); err != nil {
		return err
	}
	s.invalidateLeaderboard(userID)
	return nil
}

func (s *gamificationService) ComputeStats(userID uint) (*GamificationStats, error) {
	record, err := s.gamificationRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &GamificationStats{
		Points:         record.Points,
		Level:          record.Level,
		CurrentStreak:  record.CurrentStreak,
		LongestStreak:  record.LongestStreak,
		EarlyCheckIns:  record.EarlyCheckIns,
		TasksCompleted: record.TasksCompleted,
		NextLevelAt:    record.Level * pointsPerLevel,
		LastCheckIn:    record.LastCheckInDate,
	}, nil
}

func (s *gamificationService) Leaderboard(adminID uint, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > leaderboardMax {
		limit = leaderboardMax
	}

	if s.redis != nil {
		var cached []LeaderboardEntry
		if err := s.redis.GetLeaderboard(adminID, limit, &cached); err == nil {
			return cached, nil
		}
	}

	workers, err := s.userRepo.GetByParentID(adminID)
	if err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(workers))
	ids := make([]uint, 0, len(workers))
	for _, worker := range workers {
		ids = append(ids, worker.ID)
		names[worker.ID] = worker.Name
	}

	records, err := s.gamificationRepo.GetTopByUserIDs(ids, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(records))
	for i, record := range records {
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			UserID: record.UserID,
			Name:   names[record.UserID],
			Points: record.Points,
			Level:  record.Level,
			Streak: record.CurrentStreak,
		})
	}

	if s.redis != nil {
		if err := s.redis.SetLeaderboard(adminID, limit, entries, s.cacheTTL); err != nil {
			logger.Log.Warn("failed to cache leaderboard", zap.Uint("admin_id", adminID), zap.Error(err))
		}
	}
	return entries, nil
}

func (s *gamificationService) getOrCreate(userID uint) (*models.UserGamification, error) {
	record, err := s.gamificationRepo.GetByUserID(userID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record = &models.UserGamification{UserID: userID, Level: 1}
	if err := s.gamificationRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *gamificationService) invalidateLeaderboard(userID uint) {
	if s.redis == nil {
		return
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil || user.ParentID == nil {
		return
	}
	if err := s.redis.InvalidateLeaderboards(*user.ParentID); err != nil {
		logger.Log.Warn("failed to invalidate leaderboard cache", zap.Uint("user_id", userID), zap.Error(err))
	}
}
