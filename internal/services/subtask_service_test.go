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

type subtaskFixture struct {
	db      *gorm.DB
	svc     *subtaskService
	admin   *models.User
	worker  *models.User
	task    *models.Task
	taskSvc *taskService
}

func newSubtaskFixture(t *testing.T, now time.Time, subtasks []string) *subtaskFixture {
	t.Helper()

	db := newTestDB(t)
	admin := createTestAdmin(t, db)
	worker := createTestWorker(t, db, admin, "worker@test.local")

	taskSvc := newTaskService(t, db, now)
	task, err := taskSvc.Create(admin.ID, CreateTaskInput{
		Title:              "Hallway repairs",
		Priority:           string(models.PriorityHigh),
		ScheduledStartDate: now,
		ScheduledEndDate:   now.Add(4 * time.Hour),
		AssigneeIDs:        []uint{worker.ID},
		Subtasks:           subtasks,
	})
	require.NoError(t, err)

	svc := NewSubtaskService(
		repository.NewSubtaskRepository(db),
		repository.NewTaskRepository(db),
		NewNotificationService(repository.NewNotificationRepository(db)),
		nil,
	).(*subtaskService)
	svc.now = fixedClock(now)

	return &subtaskFixture{db: db, svc: svc, admin: admin, worker: worker, task: task, taskSvc: taskSvc}
}

func TestCompleteFirstSubtaskStartsTask(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	f := newSubtaskFixture(t, now, []string{"Patch wall", "Paint wall"})

	subtask, err := f.svc.Complete(f.task.Subtasks[0].ID, f.worker.ID, CompleteSubtaskInput{
		ReportAfter: "patched",
	})
	require.NoError(t, err)
	assert.True(t, subtask.IsCompleted)
	require.NotNil(t, subtask.CompletedByID)
	assert.Equal(t, f.worker.ID, *subtask.CompletedByID)

	var task models.Task
	require.NoError(t, f.db.First(&task, f.task.ID).Error)
	assert.Equal(t, string(models.TaskInProgress), task.Status)
	require.NotNil(t, task.ActualStartDate)
	assert.Nil(t, task.ActualEndDate)
}

func TestCompleteLastSubtaskCompletesTask(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	f := newSubtaskFixture(t, now, []string{"Patch wall", "Paint wall"})

	_, err := f.svc.Complete(f.task.Subtasks[0].ID, f.worker.ID, CompleteSubtaskInput{ReportAfter: "done"})
	require.NoError(t, err)
	_, err = f.svc.Complete(f.task.Subtasks[1].ID, f.worker.ID, CompleteSubtaskInput{ReportAfter: "done"})
	require.NoError(t, err)

	var task models.Task
	require.NoError(t, f.db.First(&task, f.task.ID).Error)
	assert.Equal(t, string(models.TaskCompleted), task.Status)
	require.NotNil(t, task.ActualEndDate)

	// Creating admin is notified of the completion
	var notifications []models.Notification
	require.NoError(t, f.db.Where("user_id = ? AND type = ?", f.admin.ID,
		string(models.NotificationTaskCompleted)).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
}

func TestCompleteSubtaskTwiceRejected(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	f := newSubtaskFixture(t, now, []string{"Patch wall"})

	_, err := f.svc.Complete(f.task.Subtasks[0].ID, f.worker.ID, CompleteSubtaskInput{ReportAfter: "done"})
	require.NoError(t, err)

	_, err = f.svc.Complete(f.task.Subtasks[0].ID, f.worker.ID, CompleteSubtaskInput{ReportAfter: "again"})
	assert.ErrorIs(t, err, ErrSubtaskCompleted)
}

func TestCompleteSubtaskRequiresAssignment(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	f := newSubtaskFixture(t, now, []string{"Patch wall"})
	stranger := createTestWorker(t, f.db, f.admin, "stranger@test.local")

	_, err := f.svc.Complete(f.task.Subtasks[0].ID, stranger.ID, CompleteSubtaskInput{ReportAfter: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteSubtaskStampsReports(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	f := newSubtaskFixture(t, now, []string{"Patch wall"})

	subtask, err := f.svc.Complete(f.task.Subtasks[0].ID, f.worker.ID, CompleteSubtaskInput{
		ReportBefore: "hole in wall",
		ReportAfter:  "wall patched",
		PhotosBefore: []string{"before1.jpg"},
		PhotosAfter:  []string{"after1.jpg", "after2.jpg"},
	})
	require.NoError(t, err)

	var stored models.Subtask
	require.NoError(t, f.db.First(&stored, subtask.ID).Error)
	assert.Equal(t, "hole in wall", stored.ReportBefore)
	assert.Equal(t, "wall patched", stored.ReportAfter)
	assert.Equal(t, []string{"before1.jpg"}, stored.PhotosBefore)
	assert.Len(t, stored.PhotosAfter, 2)
}
