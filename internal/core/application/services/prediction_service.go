package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"agu/internal/core/application/tx"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/alert"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"
	"agu/internal/core/domain/model/measure"
	domainservices "agu/internal/core/domain/services"
	"agu/internal/core/ports"
	"agu/internal/pkg/either"
)

const (
	// DefaultHistoryDays is how far back consumption and temperatures are read for training.
	DefaultHistoryDays = 30
	// MinTrainingDays is the smallest number of days with both a consumption and a temperature.
	MinTrainingDays = 3
	// CriticalForecastTitle is the title of alerts raised by predictions.
	CriticalForecastTitle = "Critical level forecast"
)

// PredictionError enumerates PredictConsumption failures.
type PredictionError int

const (
	PredictionAGUNotFound PredictionError = iota + 1
	PredictionInvalidDays
	PredictionNotEnoughData
	PredictionUnavailable
)

var predictionKinds = []kind{
	{"AGUNotFound", CategoryNotFound},
	{"InvalidDays", CategoryInvalid},
	{"NotEnoughData", CategoryConflict},
	{"PredictionUnavailable", CategoryUnavailable},
}

func (e PredictionError) String() string     { return lookup(predictionKinds, int(e)).name }
func (e PredictionError) Category() Category { return lookup(predictionKinds, int(e)).category }

// ProjectedDay is the predicted consumption of one day and the level left after it.
type ProjectedDay = domainservices.ProjectedDay

// Prediction is the consumption forecast of one AGU. Alert is set when a
// projected level reaches the AGU critical level.
type Prediction struct {
	CUI          kernel.CUI
	CurrentLevel float64
	Days         []ProjectedDay
	Alert        *alert.Alert
}

type PredictionResult = either.Either[PredictionError, Prediction]

type predictionInput struct {
	agu          *agu.AGU
	gas          []measure.GasMeasure
	temperatures []measure.TemperatureMeasure
}

// PredictionService forecasts gas consumption from temperature forecasts.
type PredictionService struct {
	tx          *tx.Manager
	predictor   ports.Predictor
	clock       Clock
	historyDays int
	estimator   domainservices.ConsumptionEstimator
	logger      *slog.Logger
}

func NewPredictionService(m *tx.Manager, predictor ports.Predictor, clock Clock, logger *slog.Logger) *PredictionService {
	if clock == nil {
		clock = SystemClock
	}
	return &PredictionService{
		tx:          m,
		predictor:   predictor,
		clock:       clock,
		historyDays: DefaultHistoryDays,
		estimator:   domainservices.NewConsumptionEstimator(),
		logger:      logger.With("component", "PredictionService"),
	}
}

// PredictConsumption trains the prediction model on the AGU history, predicts
// the next days days and raises an alert when the projected level reaches the
// critical level.
func (s *PredictionService) PredictConsumption(ctx context.Context, rawCUI string, days int) (PredictionResult, error) {
	left := either.Left[PredictionError, Prediction]

	if days <= 0 {
		return left(PredictionInvalidDays), nil
	}
	cui, ok := parseCUI(rawCUI)
	if !ok {
		return left(PredictionAGUNotFound), nil
	}

	today := load.Day(s.clock())
	since := today.AddDate(0, 0, -s.historyDays)

	read, err := tx.Run(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (either.Either[PredictionError, predictionInput], error) {
		a, err := uow.AGURepository().Get(ctx, cui)
		if isNotFound(err) {
			return either.Left[PredictionError, predictionInput](PredictionAGUNotFound), nil
		}
		if err != nil {
			return either.Either[PredictionError, predictionInput]{}, fmt.Errorf("get agu: %w", err)
		}

		in := predictionInput{agu: a}
		if in.gas, err = uow.GasRepository().GetByAGU(ctx, cui, since); err != nil {
			return either.Either[PredictionError, predictionInput]{}, fmt.Errorf("get gas measures: %w", err)
		}
		if in.temperatures, err = uow.TemperatureRepository().GetByAGU(ctx, cui, since); err != nil {
			return either.Either[PredictionError, predictionInput]{}, fmt.Errorf("get temperature measures: %w", err)
		}
		return either.Right[PredictionError](in), nil
	})
	if err != nil {
		return PredictionResult{}, err
	}
	if failure, isLeft := read.Left(); isLeft {
		return left(failure), nil
	}
	in, _ := read.Right()

	consumptions, currentLevel := s.estimator.DailyConsumptions(in.gas)
	past, forecast := splitTemperatures(in.temperatures, today, days)
	training := pairByDate(past, consumptions)
	if len(training.Consumptions) < MinTrainingDays || len(forecast) == 0 {
		return left(PredictionNotEnoughData), nil
	}

	model, err := s.predictor.Train(ctx, training)
	if err != nil {
		s.logger.WarnContext(ctx, "training failed", "cui", cui.String(), "error", err)
		return left(PredictionUnavailable), nil
	}
	predicted, err := s.predictor.Predict(ctx, ports.ConsumptionRequest{
		Temperatures:         forecast,
		PreviousConsumptions: consumptions,
		Model:                model,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "prediction failed", "cui", cui.String(), "error", err)
		return left(PredictionUnavailable), nil
	}

	prediction := Prediction{CUI: cui, CurrentLevel: currentLevel, Days: s.estimator.Project(currentLevel, predicted)}
	critical := in.agu.Levels().Critical()
	if day, crosses := s.estimator.FirstCritical(prediction.Days, critical); crosses {
		prediction.Alert, err = s.raiseCriticalAlert(ctx, cui, day, critical)
		if err != nil {
			return PredictionResult{}, err
		}
	}

	return either.Right[PredictionError](prediction), nil
}

// PredictAll runs PredictConsumption for every active AGU. Expected failures
// are logged; infrastructure errors are collected and returned together.
func (s *PredictionService) PredictAll(ctx context.Context, days int) error {
	agus, err := tx.Execute(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) ([]*agu.AGU, error) {
		return uow.AGURepository().GetAllActive(ctx)
	})
	if err != nil {
		return fmt.Errorf("get active agus: %w", err)
	}

	var errs []error
	for _, a := range agus {
		if ctx.Err() != nil {
			return errors.Join(append(errs, ctx.Err())...)
		}

		res, err := s.PredictConsumption(ctx, a.CUI().String(), days)
		if err != nil {
			errs = append(errs, fmt.Errorf("predict %s: %w", a.CUI(), err))
			continue
		}
		if failure, isLeft := res.Left(); isLeft {
			s.logger.InfoContext(ctx, "prediction skipped", "cui", a.CUI().String(), "reason", failure.String())
		}
	}
	return errors.Join(errs...)
}

func (s *PredictionService) raiseCriticalAlert(
	ctx context.Context,
	cui kernel.CUI,
	day ProjectedDay,
	critical int,
) (*alert.Alert, error) {
	message := fmt.Sprintf("projected level %.1f%% on %s is at or below the critical level %d%%",
		day.Level, day.Date.Format(time.DateOnly), critical)

	return tx.Execute(ctx, s.tx, func(ctx context.Context, uow ports.UnitOfWork) (*alert.Alert, error) {
		a, err := alert.NewAlert(kernel.NewUUID(), cui, s.clock(), CriticalForecastTitle, message)
		if err != nil {
			return nil, err
		}
		if err := uow.AlertRepository().Add(ctx, a); err != nil {
			return nil, fmt.Errorf("add alert: %w", err)
		}
		s.logger.InfoContext(ctx, "critical level forecast", "cui", cui.String(), "date", day.Date.Format(time.DateOnly))
		return a, nil
	})
}

// splitTemperatures keeps the newest measure per day and splits them into
// days before today and forecasts for the next days days.
func splitTemperatures(
	temperatures []measure.TemperatureMeasure,
	today time.Time,
	days int,
) ([]ports.DailyTemperature, []ports.DailyTemperature) {
	newest := make(map[time.Time]measure.TemperatureMeasure)
	for _, m := range temperatures {
		day := load.Day(m.PredictionFor())
		if prev, ok := newest[day]; !ok || !m.Timestamp().Before(prev.Timestamp()) {
			newest[day] = m
		}
	}

	var past, forecast []ports.DailyTemperature
	horizon := today.AddDate(0, 0, days)
	for _, day := range slices.SortedFunc(maps.Keys(newest), func(a, b time.Time) int { return a.Compare(b) }) {
		m := newest[day]
		t := ports.DailyTemperature{Date: day, Min: m.Min(), Max: m.Max()}
		switch {
		case day.Before(today):
			past = append(past, t)
		case day.After(today) && !day.After(horizon):
			forecast = append(forecast, t)
		}
	}
	return past, forecast
}

func pairByDate(temperatures []ports.DailyTemperature, consumptions []ports.DailyConsumption) ports.TrainingRequest {
	byDate := make(map[time.Time]ports.DailyConsumption, len(consumptions))
	for _, c := range consumptions {
		byDate[c.Date] = c
	}

	var req ports.TrainingRequest
	for _, t := range temperatures {
		if c, ok := byDate[t.Date]; ok {
			req.Temperatures = append(req.Temperatures, t)
			req.Consumptions = append(req.Consumptions, c)
		}
	}
	return req
}
