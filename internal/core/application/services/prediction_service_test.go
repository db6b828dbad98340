package services_test

import (
	"errors"
	"testing"
	"time"

	"agu/internal/core/application/services"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/measure"
	"agu/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
}

// gasHistory drops tank 1 by five points a day from 70 on March 5th to 50 on March 9th.
func gasHistory() []measure.GasMeasure {
	var out []measure.GasMeasure
	for i, level := range []int{70, 65, 60, 55, 50} {
		ts := day(5 + i).Add(18 * time.Hour)
		out = append(out, measure.NewGasMeasure(ts, ts, 1, level))
	}
	return out
}

func temperatureHistory() []measure.TemperatureMeasure {
	var out []measure.TemperatureMeasure
	for d := 5; d <= 13; d++ {
		out = append(out, measure.NewTemperatureMeasure(fixedNow.AddDate(0, 0, -1), day(d), 4, 14))
	}
	return out
}

func TestPredictConsumption_RaisesAlertOnCriticalForecast(t *testing.T) {
	// Arrange
	cui := kernel.MustCUI(testCUI)
	uow := newMockUoW()
	uow.On("Begin", mock.Anything).Return(nil).Twice()
	uow.On("Commit", mock.Anything).Return(nil).Twice()
	uow.On("Rollback", mock.Anything).Return(nil).Twice()
	uow.agus.On("Get", mock.Anything, cui).Return(newTestAGU(t), nil).Once()
	uow.gas.On("GetByAGU", mock.Anything, cui, day(10).AddDate(0, 0, -services.DefaultHistoryDays)).
		Return(gasHistory(), nil).Once()
	uow.temps.On("GetByAGU", mock.Anything, cui, mock.Anything).Return(temperatureHistory(), nil).Once()
	uow.alerts.On("Add", mock.Anything, mock.Anything).Return(nil).Once()

	model := ports.ConsumptionModel{Coefficients: []float64{-0.5, -0.2}, Intercept: 12}
	predictor := new(MockPredictor)
	predictor.On("Train", mock.Anything, mock.MatchedBy(func(req ports.TrainingRequest) bool {
		return len(req.Consumptions) == 4 && len(req.Temperatures) == 4
	})).Return(model, nil).Once()
	predictor.On("Predict", mock.Anything, mock.MatchedBy(func(req ports.ConsumptionRequest) bool {
		return len(req.Temperatures) == 3 && req.Temperatures[0].Date.Equal(day(11)) &&
			len(req.PreviousConsumptions) == 4 && req.Model.Intercept == 12
	})).Return([]ports.DailyConsumption{
		{Date: day(11), Consumption: 12},
		{Date: day(12), Consumption: 12},
		{Date: day(13), Consumption: 12},
	}, nil).Once()

	svc := services.NewPredictionService(newManager(t, uow), predictor, fixedClock, discardLogger())

	// Act
	res, err := svc.PredictConsumption(t.Context(), testCUI, 3)

	// Assert
	require.NoError(t, err)
	prediction, isRight := res.Right()
	require.True(t, isRight)
	assert.InDelta(t, 50.0, prediction.CurrentLevel, 1e-9)
	require.Len(t, prediction.Days, 3)
	assert.InDelta(t, 14.0, prediction.Days[2].Level, 1e-9)
	require.NotNil(t, prediction.Alert)
	assert.Equal(t, services.CriticalForecastTitle, prediction.Alert.Title())
	assert.Contains(t, prediction.Alert.Message(), "2025-03-13")
	predictor.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPredictConsumption_NotEnoughData(t *testing.T) {
	// Arrange
	cui := kernel.MustCUI(testCUI)
	uow := newMockUoW()
	uow.expectCommitted()
	uow.agus.On("Get", mock.Anything, cui).Return(newTestAGU(t), nil).Once()
	uow.gas.On("GetByAGU", mock.Anything, cui, mock.Anything).Return(gasHistory()[:2], nil).Once()
	uow.temps.On("GetByAGU", mock.Anything, cui, mock.Anything).Return(temperatureHistory(), nil).Once()
	predictor := new(MockPredictor)
	svc := services.NewPredictionService(newManager(t, uow), predictor, fixedClock, discardLogger())

	// Act
	res, err := svc.PredictConsumption(t.Context(), testCUI, 3)

	// Assert
	require.NoError(t, err)
	failure, _ := res.Left()
	assert.Equal(t, services.PredictionNotEnoughData, failure)
	predictor.AssertNotCalled(t, "Train", mock.Anything, mock.Anything)
}

func TestPredictConsumption_PredictorDown(t *testing.T) {
	// Arrange
	cui := kernel.MustCUI(testCUI)
	uow := newMockUoW()
	uow.expectCommitted()
	uow.agus.On("Get", mock.Anything, cui).Return(newTestAGU(t), nil).Once()
	uow.gas.On("GetByAGU", mock.Anything, cui, mock.Anything).Return(gasHistory(), nil).Once()
	uow.temps.On("GetByAGU", mock.Anything, cui, mock.Anything).Return(temperatureHistory(), nil).Once()
	predictor := new(MockPredictor)
	predictor.On("Train", mock.Anything, mock.Anything).
		Return(ports.ConsumptionModel{}, errors.New("connection refused")).Once()
	svc := services.NewPredictionService(newManager(t, uow), predictor, fixedClock, discardLogger())

	// Act
	res, err := svc.PredictConsumption(t.Context(), testCUI, 3)

	// Assert
	require.NoError(t, err)
	failure, _ := res.Left()
	assert.Equal(t, services.PredictionUnavailable, failure)
	assert.Equal(t, services.CategoryUnavailable, failure.Category())
}

func TestPredictConsumption_InvalidDays(t *testing.T) {
	svc := services.NewPredictionService(newManager(t, newMockUoW()), new(MockPredictor), fixedClock, discardLogger())

	res, err := svc.PredictConsumption(t.Context(), testCUI, 0)

	require.NoError(t, err)
	failure, _ := res.Left()
	assert.Equal(t, services.PredictionInvalidDays, failure)
}
