package application

import (
	"context"
	"errors"
	"time"

	"beatledger/domain/entities"
	"beatledger/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// DistributionWorker executes the membership distribution for the just-closed
// month once it becomes due. Re-running after a restart is harmless: an
// already-executed month is reported by the service and skipped.
type DistributionWorker struct {
	distributions interfaces.DistributionService
	metrics       MetricsRecorder
}

// NewDistributionWorker creates a new distribution worker
func NewDistributionWorker(distributions interfaces.DistributionService, metrics MetricsRecorder) *DistributionWorker {
	return &DistributionWorker{
		distributions: distributions,
		metrics:       metrics,
	}
}

// Start begins the worker and returns a stop function. The distribution for a
// month runs on the configured day-of-month and hour (UTC) of the following
// month.
func (w *DistributionWorker) Start(ctx context.Context, runDay, runHour int) func() {
	stopChan := make(chan struct{})

	calculateNextRun := func() time.Duration {
		now := time.Now().UTC()
		next := time.Date(now.Year(), now.Month(), runDay, runHour, 0, 0, 0, time.UTC)
		if !next.After(now) {
			next = next.AddDate(0, 1, 0)
		}
		return next.Sub(now)
	}

	go func() {
		log.Infof("distribution worker started, runs on day %d at %02d:00 UTC", runDay, runHour)

		for {
			waitDuration := calculateNextRun()
			log.Infof("distribution worker waiting %v until next run", waitDuration)

			select {
			case <-ctx.Done():
				log.Info("distribution worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("distribution worker shutting down (stop requested)...")
				return
			case <-time.After(waitDuration):
				w.runForPreviousMonth(ctx)
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// runForPreviousMonth executes the distribution for the month that just closed
func (w *DistributionWorker) runForPreviousMonth(ctx context.Context) {
	month := entities.MonthOf(time.Now().UTC()).Prev()

	records, err := w.distributions.Execute(ctx, month)
	if err != nil {
		if errors.Is(err, entities.ErrDistributionAlreadyExecuted) {
			log.Infof("distribution for %s already executed, skipping", month)
			return
		}
		log.Errorf("distribution run for %s failed: %v", month, err)
		return
	}

	if w.metrics != nil {
		w.metrics.DistributionExecuted(ctx, len(records))
	}
	log.Infof("distribution for %s posted %d records", month, len(records))
}
