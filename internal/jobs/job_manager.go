package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	streamRedeliveryJob *StreamRedeliveryJob
}

// NewJobManager wires the jobs the configured event bus needs.
// A nil redeliverer means the bus redelivers on its own and no sweep is scheduled.
func NewJobManager(redeliverer StreamRedeliverer, redeliverySchedule string, logger *slog.Logger) *JobManager {
	jm := &JobManager{}
	if redeliverer != nil {
		jm.streamRedeliveryJob = NewStreamRedeliveryJob(redeliverer, redeliverySchedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if jm.streamRedeliveryJob != nil {
		if err := jm.streamRedeliveryJob.Start(); err != nil {
			return fmt.Errorf("failed to start stream redelivery job: %w", err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.streamRedeliveryJob != nil {
		jm.streamRedeliveryJob.Stop()
	}
}
