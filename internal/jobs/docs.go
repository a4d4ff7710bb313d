// Package jobs provides scheduled background tasks for the pricing pipeline.
//
// Jobs are cron based (github.com/robfig/cron/v3, seconds precision).
//
// # Available Jobs
//
// 1. StreamRedeliveryJob - sweeps the Redis Stream pending lists and hands entries whose
// handler failed with a retryable error back to their stage. Entries over the delivery
// budget are acknowledged and logged as dropped by the bus itself.
//
// The in-memory bus requeues failures on its own, so no job is scheduled for it.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(redisBus, "*/10 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Overlapping sweeps are skipped rather than queued.
package jobs
