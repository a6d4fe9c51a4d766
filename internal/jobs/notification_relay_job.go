package jobs

import (
	"context"

	"containerops/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultRelaySchedule = "*/5 * * * * *"

type relayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayNotificationsCommand) (int, error)
}

// NotificationRelayJob periodically forwards new notification log entries to the
// external sender. A run that is still going when the next tick fires makes that
// tick a no-op.
type NotificationRelayJob struct {
	handler   relayHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewNotificationRelayJob creates the relay job. schedule is a six-field cron expression
// with seconds; empty means every five seconds.
func NewNotificationRelayJob(handler relayHandler, schedule string, batchSize int, logger *zap.Logger) *NotificationRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultRelayBatchSize
	}

	named := logger.Named("notification_relay_job")
	cronLog := cronLogger{sugar: named.Sugar()}
	return &NotificationRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger: named,
	}
}

// Start schedules the relay.
func (j *NotificationRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("notification relay job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("notification relay job stopped")
}

func (j *NotificationRelayJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewRelayNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.Error("invalid relay command", zap.Error(err))
		return
	}

	if _, err = j.handler.Handle(ctx, cmd); err != nil {
		j.logger.Error("notification relay failed", zap.Error(err))
	}
}

// cronLogger routes cron's own messages to zap. Scheduling chatter goes to debug.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
