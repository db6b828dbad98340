package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultPredictionSchedule runs the prediction every day at 05:00, after the night forecasts.
	DefaultPredictionSchedule = "0 0 5 * * *"
	// DefaultPredictionDays is how many days ahead the job forecasts.
	DefaultPredictionDays = 3
	predictionTimeout     = 10 * time.Minute
)

// ConsumptionPredictor is implemented by services.PredictionService.
type ConsumptionPredictor interface {
	PredictAll(ctx context.Context, days int) error
}

// PredictionJob forecasts consumption of every active AGU once a day.
type PredictionJob struct {
	predictor ConsumptionPredictor
	schedule  string
	days      int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPredictionJob uses a six-field cron expression (seconds first).
func NewPredictionJob(predictor ConsumptionPredictor, schedule string, days int, logger *slog.Logger) *PredictionJob {
	if schedule == "" {
		schedule = DefaultPredictionSchedule
	}
	if days <= 0 {
		days = DefaultPredictionDays
	}
	logger = logger.With("component", "prediction_job")
	return &PredictionJob{
		predictor: predictor,
		schedule:  schedule,
		days:      days,
		cron:      cron.New(cron.WithSeconds(), cron.WithLogger(cronLogger{logger: logger})),
		logger:    logger,
	}
}

func (j *PredictionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Prediction job started", "schedule", j.schedule, "days", j.days)
	return nil
}

func (j *PredictionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Prediction job stopped")
}

func (j *PredictionJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), predictionTimeout)
	defer cancel()

	if err := j.predictor.PredictAll(ctx, j.days); err != nil {
		j.logger.ErrorContext(ctx, "Prediction job failed", "error", err)
	}
}
