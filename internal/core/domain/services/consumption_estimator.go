package services

import (
	"cmp"
	"maps"
	"slices"
	"time"

	"agu/internal/core/domain/model/load"
	"agu/internal/core/domain/model/measure"
)

// DailyConsumption is the gas used in one day, in percentage points of the AGU level.
type DailyConsumption struct {
	Date        time.Time
	Consumption float64
}

// ProjectedDay is the predicted consumption of one day and the level left after it.
type ProjectedDay struct {
	Date        time.Time
	Consumption float64
	Level       float64
}

// ConsumptionEstimator is a domain service that derives daily gas consumption
// from level measures and projects future levels from predicted consumption.
//
// Business rules:
//   - The level of a day is the mean over tanks of each tank's last measure that day
//   - The consumption of a day is the level drop from the previous measured day
//   - A day whose level rose was a refill and carries no consumption
//   - Projected levels never go below zero
//
// Example usage:
//
//	estimator := NewConsumptionEstimator()
//	consumptions, current := estimator.DailyConsumptions(gas)
//	days := estimator.Project(current, predicted)
//	if day, ok := estimator.FirstCritical(days, critical); ok {
//	    // raise an alert for day
//	}
type ConsumptionEstimator struct{}

// NewConsumptionEstimator creates a new ConsumptionEstimator instance.
func NewConsumptionEstimator() ConsumptionEstimator {
	return ConsumptionEstimator{}
}

// DailyConsumptions turns gas measures into per-day consumption.
//
// Parameters:
//   - gas: measures of any tanks of one AGU, in any order
//
// Returns:
//   - []DailyConsumption: one entry per measured day after the first, refill days left out, oldest first
//   - float64: the level of the last measured day, zero without measures
func (ConsumptionEstimator) DailyConsumptions(gas []measure.GasMeasure) ([]DailyConsumption, float64) {
	type tankDay struct {
		day  time.Time
		tank int
	}
	last := make(map[tankDay]measure.GasMeasure)
	for _, m := range gas {
		key := tankDay{day: load.Day(m.Timestamp()), tank: m.TankNumber()}
		if prev, ok := last[key]; !ok || !m.Timestamp().Before(prev.Timestamp()) {
			last[key] = m
		}
	}

	sums := make(map[time.Time][2]int)
	for key, m := range last {
		acc := sums[key.day]
		sums[key.day] = [2]int{acc[0] + m.Level(), acc[1] + 1}
	}

	days := slices.SortedFunc(maps.Keys(sums), func(a, b time.Time) int { return a.Compare(b) })
	if len(days) == 0 {
		return nil, 0
	}

	level := func(day time.Time) float64 {
		acc := sums[day]
		return float64(acc[0]) / float64(acc[1])
	}

	consumptions := make([]DailyConsumption, 0, len(days))
	for i := 1; i < len(days); i++ {
		drop := level(days[i-1]) - level(days[i])
		if drop < 0 {
			continue
		}
		consumptions = append(consumptions, DailyConsumption{Date: days[i], Consumption: drop})
	}
	return consumptions, level(days[len(days)-1])
}

// Project subtracts predicted consumption day by day from level.
//
// Parameters:
//   - level: the current level in percent
//   - predicted: consumption per future day, in any order
//
// Returns:
//   - []ProjectedDay: one entry per predicted day, oldest first
func (ConsumptionEstimator) Project(level float64, predicted []DailyConsumption) []ProjectedDay {
	sorted := slices.SortedFunc(slices.Values(predicted), func(a, b DailyConsumption) int {
		return cmp.Compare(a.Date.Unix(), b.Date.Unix())
	})

	out := make([]ProjectedDay, 0, len(sorted))
	for _, p := range sorted {
		level = max(level-p.Consumption, 0)
		out = append(out, ProjectedDay{Date: p.Date, Consumption: p.Consumption, Level: level})
	}
	return out
}

// FirstCritical returns the first projected day at or below the critical level.
func (ConsumptionEstimator) FirstCritical(days []ProjectedDay, critical int) (ProjectedDay, bool) {
	for _, d := range days {
		if d.Level <= float64(critical) {
			return d, true
		}
	}
	return ProjectedDay{}, false
}
