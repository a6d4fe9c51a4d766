package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	notificationRelayJob *NotificationRelayJob
}

// NewJobManager creates a job manager. relayHandler is usually the
// RelayNotificationsCommandHandler wired to the store and the notification dispatcher.
func NewJobManager(relayHandler relayHandler, relaySchedule string, relayBatchSize int, logger *zap.Logger) *JobManager {
	return &JobManager{
		notificationRelayJob: NewNotificationRelayJob(relayHandler, relaySchedule, relayBatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification relay job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.notificationRelayJob.Stop()
}
