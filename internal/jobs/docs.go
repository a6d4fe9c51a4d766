// Package jobs provides scheduled background tasks for the order workflow service.
//
// Jobs run on github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. NotificationRelayJob - every 5 seconds by default, forwards new entries of the
// notification log to the notification dispatcher (kafka, or the service log when no
// broker is configured)
//
// # Usage
//
//	relay := root.CreateRelayNotificationsCommandHandler()
//	jobManager := jobs.NewJobManager(&relay, cfg.RelaySchedule, cfg.RelayBatchSize, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick from the same cursor. Runs never
// overlap: a tick that arrives while the previous run is still dispatching is skipped.
package jobs
