// Package jobs provides scheduled background tasks for the AGU service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. IngestionScheduler - one entry per provider, run every provider frequency
// ("@every" semantics), fetching and storing gas levels or temperature forecasts
// 2. PredictionJob - once a day, forecasts consumption of every active AGU
// and raises alerts for projected critical levels
//
// # Usage
//
//	scheduler := jobs.NewIngestionScheduler(pipeline, lock, cycleTimeout, logger)
//	jobManager := jobs.NewJobManager(scheduler, jobs.NewPredictionJob(predictionService, "", 0, logger))
//
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll(shutdownCtx)
//
// The scheduler is also the ports.ProviderScheduler handed to the AGU service,
// so providers created or deleted through the API are scheduled immediately.
//
// # Error Handling
//
// - A failed fetch is logged and retried on the provider's next tick
// - A cycle for a provider that no longer exists unschedules it
// - Failed job starts will stop any already running jobs
package jobs
