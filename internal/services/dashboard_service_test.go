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

func newDashboardService(t *testing.T, db *gorm.DB, now time.Time) *dashboardService {
	t.Helper()

	svc := NewDashboardService(
		repository.NewTaskRepository(db),
		repository.NewUserRepository(db),
		repository.NewAttendanceRepository(db),
		newGamificationService(t, db),
		nil,
		time.Minute,
	).(*dashboardService)
	svc.now = fixedClock(now)
	return svc
}

func completedTask(admin *models.User, scheduledEnd, actualEnd time.Time) *models.Task {
	return &models.Task{
		Title:              "done",
		Status:             string(models.TaskCompleted),
		Priority:           string(models.PriorityMedium),
		ScheduledStartDate: scheduledEnd.Add(-2 * time.Hour),
		ScheduledEndDate:   scheduledEnd,
		ActualEndDate:      &actualEnd,
		CreatedByID:        admin.ID,
	}
}

func TestClassifyCompletion(t *testing.T) {
	scheduled := time.Date(2025, 8, 1, 17, 0, 0, 0, time.UTC)

	assert.Equal(t, CompletionEarly, ClassifyCompletion(scheduled.Add(-time.Hour), scheduled))
	assert.Equal(t, CompletionOnTime, ClassifyCompletion(scheduled, scheduled))
	assert.Equal(t, CompletionOnTime, ClassifyCompletion(scheduled.Add(24*time.Hour), scheduled))
	assert.Equal(t, CompletionLate, ClassifyCompletion(scheduled.Add(24*time.Hour+time.Second), scheduled))
}

func TestEfficiencyRate(t *testing.T) {
	assert.Equal(t, 100, EfficiencyRate(0, 0, 0))
	assert.Equal(t, 100, EfficiencyRate(2, 2, 4))
	assert.Equal(t, 50, EfficiencyRate(1, 1, 4))
	assert.Equal(t, 67, EfficiencyRate(2, 0, 3))
}

func TestStatsAggregatesCounts(t *testing.T) {
	db := newTestDB(t)
	admin := createTestAdmin(t, db)

	now := time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)
	scheduled := now.AddDate(0, 0, -2)

	require.NoError(t, db.Create(completedTask(admin, scheduled, scheduled.Add(-time.Hour))).Error) // early
	require.NoError(t, db.Create(completedTask(admin, scheduled, scheduled.Add(2*time.Hour))).Error) // on time
	require.NoError(t, db.Create(completedTask(admin, scheduled, scheduled.Add(30*time.Hour))).Error) // late
	require.NoError(t, db.Create(&models.Task{
		Title:              "open",
		Status:             string(models.TaskPending),
		Priority:           string(models.PriorityLow),
		ScheduledStartDate: now,
		ScheduledEndDate:   now.Add(time.Hour),
		CreatedByID:        admin.ID,
	}).Error)

	svc := newDashboardService(t, db, now)
	stats, err := svc.Stats(admin.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 4, stats.TotalTasks)
	assert.EqualValues(t, 3, stats.TasksByStatus[string(models.TaskCompleted)])
	assert.EqualValues(t, 1, stats.TasksByStatus[string(models.TaskPending)])
	assert.Equal(t, 1, stats.Early)
	assert.Equal(t, 1, stats.OnTime)
	assert.Equal(t, 1, stats.Late)
	assert.Equal(t, 67, stats.EfficiencyRate)
}

func TestStatsEmptySampleIsFullyEfficient(t *testing.T) {
	db := newTestDB(t)
	admin := createTestAdmin(t, db)

	svc := newDashboardService(t, db, time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC))
	stats, err := svc.Stats(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.EfficiencyRate)
	assert.EqualValues(t, 0, stats.TotalTasks)
}

func TestCriticalTasksClassification(t *testing.T) {
	db := newTestDB(t)
	admin := createTestAdmin(t, db)
	worker := createTestWorker(t, db, admin, "worker@test.local")

	now := time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)

	overdue := &models.Task{
		Title: "overdue", Status: string(models.TaskPending), Priority: string(models.PriorityLow),
		ScheduledStartDate: now.AddDate(0, 0, -2), ScheduledEndDate: now.AddDate(0, 0, -1),
		CreatedByID: admin.ID, Category: "plumbing",
	}
	dueToday := &models.Task{
		Title: "due today", Status: string(models.TaskInProgress), Priority: string(models.PriorityMedium),
		ScheduledStartDate: now.Add(-time.Hour), ScheduledEndDate: now.Add(3 * time.Hour),
		CreatedByID: admin.ID, Category: "cleaning",
	}
	urgentUnassigned := &models.Task{
		Title: "urgent", Status: string(models.TaskPending), Priority: string(models.PriorityUrgent),
		ScheduledStartDate: now, ScheduledEndDate: now.AddDate(0, 0, 3),
		CreatedByID: admin.ID, Category: "electric",
	}
	urgentAssigned := &models.Task{
		Title: "urgent assigned", Status: string(models.TaskPending), Priority: string(models.PriorityHigh),
		ScheduledStartDate: now, ScheduledEndDate: now.AddDate(0, 0, 5),
		CreatedByID: admin.ID, Assignees: []models.User{*worker},
	}
	completed := &models.Task{
		Title: "closed", Status: string(models.TaskCompleted), Priority: string(models.PriorityUrgent),
		ScheduledStartDate: now, ScheduledEndDate: now,
		CreatedByID: admin.ID,
	}
	for _, task := range []*models.Task{overdue, dueToday, urgentUnassigned, urgentAssigned, completed} {
		require.NoError(t, db.Create(task).Error)
	}

	svc := newDashboardService(t, db, now)
	result, err := svc.CriticalTasks(admin.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalActive)
	require.Len(t, result.Overdue, 1)
	assert.Equal(t, "overdue", result.Overdue[0].Title)
	require.Len(t, result.DueToday, 1)
	assert.Equal(t, "due today", result.DueToday[0].Title)
	assert.Len(t, result.Urgent, 2)
	require.Len(t, result.UnassignedUrgent, 1)
	assert.Equal(t, "urgent", result.UnassignedUrgent[0].Title)
	assert.Equal(t, 2, result.PriorityBreakdown[string(models.PriorityLow)]+result.PriorityBreakdown[string(models.PriorityMedium)])
	assert.Equal(t, 1, result.CategoryBreakdown["plumbing"])
}

func TestWorkersOverview(t *testing.T) {
	db := newTestDB(t)
	admin := createTestAdmin(t, db)
	worker := createTestWorker(t, db, admin, "worker@test.local")

	now := time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)
	attendanceSvc := newAttendanceService(t, db, now.Add(-2*time.Hour))
	_, err := attendanceSvc.CheckIn(worker.ID)
	require.NoError(t, err)

	svc := newDashboardService(t, db, now)
	overviews, err := svc.Workers(admin.ID)
	require.NoError(t, err)
	require.Len(t, overviews, 1)
	assert.Equal(t, worker.ID, overviews[0].User.ID)
	assert.Equal(t, string(models.AttendanceLate), overviews[0].AttendanceStatus)
}
