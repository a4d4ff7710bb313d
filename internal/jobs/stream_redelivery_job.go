package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultRedeliverySchedule runs the sweep every ten seconds.
const DefaultRedeliverySchedule = "*/10 * * * * *"

// StreamRedeliverer re-dispatches event bus entries whose handlers failed with a retryable error.
type StreamRedeliverer interface {
	Redeliver(ctx context.Context) (int, error)
}

// StreamRedeliveryJob periodically hands pending stream entries back to their stage.
type StreamRedeliveryJob struct {
	redeliverer StreamRedeliverer
	schedule    string
	cron        *cron.Cron
	logger      *slog.Logger
}

func NewStreamRedeliveryJob(redeliverer StreamRedeliverer, schedule string, logger *slog.Logger) *StreamRedeliveryJob {
	if schedule == "" {
		schedule = DefaultRedeliverySchedule
	}
	return &StreamRedeliveryJob{
		redeliverer: redeliverer,
		schedule:    schedule,
		cron:        cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:      logger.With("component", "stream_redelivery_job"),
	}
}

func (j *StreamRedeliveryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stream redelivery job started", "schedule", j.schedule)
	return nil
}

// Run performs a single sweep.
func (j *StreamRedeliveryJob) Run() {
	ctx := context.Background()
	count, err := j.redeliverer.Redeliver(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stream redelivery failed", "error", err)
		return
	}
	if count > 0 {
		j.logger.InfoContext(ctx, "Redelivered pending events", "count", count)
	}
}

// Stop waits for a running sweep to finish.
func (j *StreamRedeliveryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stream redelivery job stopped")
}
