package services

import (
	"math"
	"time"

	"condo_manager/internal/models"
	"condo_manager/internal/redis"
	"condo_manager/internal/repository"
	"condo_manager/pkg/logger"

	"go.uber.org/zap"
)

const (
	efficiencySampleSize = 100
	criticalTopN         = 10
	completionGrace      = 24 * time.Hour
)

type DashboardStats struct {
	TotalTasks      int64            `json:"total_tasks"`
	TasksByStatus   map[string]int64 `json:"tasks_by_status"`
	CompletedSample int              `json:"completed_sample"`
	OnTime          int              `json:"on_time"`
	Early           int              `json:"early"`
	Late            int              `json:"late"`
	EfficiencyRate  int              `json:"efficiency_rate"`
}

type WorkerDashboard struct {
	TasksByStatus map[string]int64   `json:"tasks_by_status"`
	Attendance    *models.Attendance `json:"attendance"`
	Gamification  *GamificationStats `json:"gamification"`
}

type CriticalTasks struct {
	Urgent            []models.Task    `json:"urgent"`
	Overdue           []models.Task    `json:"overdue"`
	DueToday          []models.Task    `json:"due_today"`
	UnassignedUrgent  []models.Task    `json:"unassigned_urgent"`
	PriorityBreakdown map[string]int   `json:"priority_breakdown"`
	CategoryBreakdown map[string]int   `json:"category_breakdown"`
	TotalActive       int              `json:"total_active"`
}

type WorkerOverview struct {
	User             models.User `json:"user"`
	AttendanceStatus string      `json:"attendance_status"` // NOT_CHECKED_IN, PRESENT, LATE, CHECKED_OUT
	ActiveTasks      int         `json:"active_tasks"`
	CompletedTasks   int64       `json:"completed_tasks"`
	Points           int         `json:"points"`
}

type DashboardService interface {
	Stats(adminID uint) (*DashboardStats, error)
	WorkerStats(userID uint) (*WorkerDashboard, error)
	CriticalTasks(adminID uint) (*CriticalTasks, error)
	Workers(adminID uint) ([]WorkerOverview, error)
}

type dashboardService struct {
	taskRepo       repository.TaskRepository
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	gamification   GamificationService
	redis          *redis.Client
	cacheTTL       time.Duration
	now            func() time.Time
}

func NewDashboardService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRepository,
	gamification GamificationService,
	redisClient *redis.Client,
	cacheTTL time.Duration,
) DashboardService {
	return &dashboardService{
		taskRepo:       taskRepo,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		gamification:   gamification,
		redis:          redisClient,
		cacheTTL:       cacheTTL,
		now:            time.Now,
	}
}

func (s *dashboardService) Stats(adminID uint) (*DashboardStats, error) {
	if s.redis != nil {
		var cached DashboardStats
		if err := s.redis.GetDashboardStats(adminID, &cached); err == nil {
			return &cached, nil
		}
	}

	counts, err := s.taskRepo.CountByStatus(adminID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TasksByStatus: counts}
	for _, count := range counts {
		stats.TotalTasks += count
	}

	// Efficiency over a bounded sample of the most recent completions
	completed, err := s.taskRepo.GetRecentCompleted(adminID, efficiencySampleSize)
	if err != nil {
		return nil, err
	}
	for _, task := range completed {
		if task.ActualEndDate == nil {
			continue
		}
		switch ClassifyCompletion(*task.ActualEndDate, task.ScheduledEndDate) {
		case CompletionEarly:
			stats.Early++
		case CompletionOnTime:
			stats.OnTime++
		default:
			stats.Late++
		}
	}
	stats.CompletedSample = stats.Early + stats.OnTime + stats.Late
	stats.EfficiencyRate = EfficiencyRate(stats.OnTime, stats.Early, stats.CompletedSample)

	if s.redis != nil {
		if err := s.redis.SetDashboardStats(adminID, stats, s.cacheTTL); err != nil {
			logger.Log.Warn("failed to cache dashboard stats", zap.Uint("admin_id", adminID), zap.Error(err))
		}
	}
	return stats, nil
}

func (s *dashboardService) WorkerStats(userID uint) (*WorkerDashboard, error) {
	counts, err := s.taskRepo.CountByStatusForAssignee(userID)
	if err != nil {
		return nil, err
	}

	dashboard := &WorkerDashboard{TasksByStatus: counts}

	attendance, err := s.attendanceRepo.GetByUserAndDate(userID, DayStart(s.now()))
	if err == nil {
		dashboard.Attendance = attendance
	}

	if stats, err := s.gamification.ComputeStats(userID); err == nil {
		dashboard.Gamification = stats
	}
	return dashboard, nil
}

func (s *dashboardService) CriticalTasks(adminID uint) (*CriticalTasks, error) {
	active, err := s.taskRepo.GetActive(adminID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	todayEnd := DayEnd(now)
	result := &CriticalTasks{
		Urgent:            []models.Task{},
		Overdue:           []models.Task{},
		DueToday:          []models.Task{},
		UnassignedUrgent:  []models.Task{},
		PriorityBreakdown: make(map[string]int),
		CategoryBreakdown: make(map[string]int),
		TotalActive:       len(active),
	}

	for _, task := range active {
		result.PriorityBreakdown[task.Priority]++
		if task.Category != "" {
			result.CategoryBreakdown[task.Category]++
		}

		highPriority := task.Priority == string(models.PriorityHigh) || task.Priority == string(models.PriorityUrgent)
		overdue := task.ScheduledEndDate.Before(now)

		if highPriority && len(result.Urgent) < criticalTopN {
			result.Urgent = append(result.Urgent, task)
		}
		if overdue && len(result.Overdue) < criticalTopN {
			result.Overdue = append(result.Overdue, task)
		}
		if !overdue && !task.ScheduledEndDate.After(todayEnd) && len(result.DueToday) < criticalTopN {
			result.DueToday = append(result.DueToday, task)
		}
		if highPriority && len(task.Assignees) == 0 && len(result.UnassignedUrgent) < criticalTopN {
			result.UnassignedUrgent = append(result.UnassignedUrgent, task)
		}
	}
	return result, nil
}

func (s *dashboardService) Workers(adminID uint) ([]WorkerOverview, error) {
	workers, err := s.userRepo.GetByParentID(adminID)
	if err != nil {
		return nil, err
	}

	today := DayStart(s.now())
	overviews := make([]WorkerOverview, 0, len(workers))
	for _, worker := range workers {
		overview := WorkerOverview{User: worker, AttendanceStatus: "NOT_CHECKED_IN"}

		if attendance, err := s.attendanceRepo.GetByUserAndDate(worker.ID, today); err == nil {
			overview.AttendanceStatus = attendance.Status
			if attendance.CheckOut != nil {
				overview.AttendanceStatus = "CHECKED_OUT"
			}
		}

		if counts, err := s.taskRepo.CountByStatusForAssignee(worker.ID); err == nil {
			overview.ActiveTasks = int(counts[string(models.TaskPending)] + counts[string(models.TaskInProgress)])
			overview.CompletedTasks = counts[string(models.TaskCompleted)]
		}

		if stats, err := s.gamification.ComputeStats(worker.ID); err == nil {
			overview.Points = stats.Points
		}

		overviews = append(overviews, overview)
	}
	return overviews, nil
}

type CompletionClass string

const (
	CompletionEarly  CompletionClass = "EARLY"
	CompletionOnTime CompletionClass = "ON_TIME"
	CompletionLate   CompletionClass = "LATE"
)

// ClassifyCompletion compares the actual finish against the schedule,
// allowing a 24h grace window before a completion counts as late.
func ClassifyCompletion(actualEnd, scheduledEnd time.Time) CompletionClass {
	if actualEnd.Before(scheduledEnd) {
		return CompletionEarly
	}
	if !actualEnd.After(scheduledEnd.Add(completionGrace)) {
		return CompletionOnTime
	}
	return CompletionLate
}

// EfficiencyRate is the rounded percentage of non-late completions.
// An empty sample counts as fully efficient.
func EfficiencyRate(onTime, early, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(onTime+early) / float64(total)))
}
