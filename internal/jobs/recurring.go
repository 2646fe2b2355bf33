package jobs

import (
	"fmt"

	"condo_manager/internal/services"
	"condo_manager/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RecurringTaskJob regenerates due recurring-task instances on a
// schedule. The same catch-up also runs behind the manual endpoint, so
// missing a tick only delays generation.
type RecurringTaskJob struct {
	cronScheduler *cron.Cron
	taskService   services.TaskService
	spec          string
	jobID         cron.EntryID
}

func NewRecurringTaskJob(taskService services.TaskService, spec string) *RecurringTaskJob {
	return &RecurringTaskJob{
		cronScheduler: cron.New(cron.WithSeconds()),
		taskService:   taskService,
		spec:          spec,
	}
}

// Start schedules the job and launches the scheduler.
func (j *RecurringTaskJob) Start() error {
	var err error
	j.jobID, err = j.cronScheduler.AddFunc(j.spec, j.run)
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	j.cronScheduler.Start()
	logger.Log.Info("recurring task scheduler started", zap.String("spec", j.spec))
	return nil
}

// Stop terminates the scheduler.
func (j *RecurringTaskJob) Stop() {
	if j.cronScheduler != nil {
		j.cronScheduler.Stop()
		logger.Log.Info("recurring task scheduler stopped")
	}
}

func (j *RecurringTaskJob) run() {
	result, err := j.taskService.GenerateRecurring()
	if err != nil {
		logger.Log.Error("recurring generation failed", zap.Error(err))
		return
	}
	logger.Log.Info("recurring generation completed",
		zap.Int("generated", result.Generated),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
}
