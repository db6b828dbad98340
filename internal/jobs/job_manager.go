package jobs

import (
	"context"
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	ingestion  *IngestionScheduler
	prediction *PredictionJob
}

// NewJobManager groups the ingestion scheduler and the daily prediction job.
func NewJobManager(ingestion *IngestionScheduler, prediction *PredictionJob) *JobManager {
	return &JobManager{ingestion: ingestion, prediction: prediction}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if err := jm.ingestion.Start(ctx); err != nil {
		return fmt.Errorf("failed to start ingestion scheduler: %w", err)
	}

	if err := jm.prediction.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.ingestion.Stop(ctx)
		return fmt.Errorf("failed to start prediction job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully, waiting at most until ctx ends.
func (jm *JobManager) StopAll(ctx context.Context) {
	jm.prediction.Stop()
	jm.ingestion.Stop(ctx)
}
