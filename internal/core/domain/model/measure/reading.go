package measure

import (
	"fmt"
	"time"
)

// Reading is a timestamped value obtained from an external provider.
// The interface is sealed: the only implementations are GasReading and
// TemperatureReading, and every dispatch site switches over both.
type Reading interface {
	// Timestamp is when the value was captured.
	Timestamp() time.Time
	// PredictionFor is the instant the value applies to. It equals Timestamp
	// unless the value is a forecast.
	PredictionFor() time.Time
	// ProviderType is the variant tag of the reading.
	ProviderType() ProviderType

	sealedReading()
}

// Measure is a Reading placed in the storage context of an AGU.
// Like Reading it is sealed to GasMeasure and TemperatureMeasure.
type Measure interface {
	Timestamp() time.Time
	PredictionFor() time.Time
	ProviderType() ProviderType

	sealedMeasure()
}

type sample struct {
	timestamp     time.Time
	predictionFor time.Time
}

func (s sample) Timestamp() time.Time {
	return s.timestamp
}

func (s sample) PredictionFor() time.Time {
	return s.predictionFor
}

// IsForecast reports whether the value applies to a different instant than the capture time.
func (s sample) IsForecast() bool {
	return !s.timestamp.Equal(s.predictionFor)
}

// GasReading is an instantaneous gas level, in percent of capacity.
type GasReading struct {
	sample
	level int
}

// NewGasReading creates a GasReading.
func NewGasReading(timestamp, predictionFor time.Time, level int) GasReading {
	return GasReading{sample: sample{timestamp: timestamp, predictionFor: predictionFor}, level: level}
}

// Level returns the gas level.
func (r GasReading) Level() int {
	return r.level
}

// ProviderType implements Reading.
func (GasReading) ProviderType() ProviderType {
	return Gas
}

func (GasReading) sealedReading() {}

// TemperatureReading is a daily min/max temperature, usually a forecast.
type TemperatureReading struct {
	sample
	minTemperature int
	maxTemperature int
}

// NewTemperatureReading creates a TemperatureReading.
func NewTemperatureReading(timestamp, predictionFor time.Time, minTemperature, maxTemperature int) TemperatureReading {
	return TemperatureReading{
		sample:         sample{timestamp: timestamp, predictionFor: predictionFor},
		minTemperature: minTemperature,
		maxTemperature: maxTemperature,
	}
}

// Min returns the minimum temperature.
func (r TemperatureReading) Min() int {
	return r.minTemperature
}

// Max returns the maximum temperature.
func (r TemperatureReading) Max() int {
	return r.maxTemperature
}

// ProviderType implements Reading.
func (TemperatureReading) ProviderType() ProviderType {
	return Temperature
}

func (TemperatureReading) sealedReading() {}

// GasMeasure is a gas level attributed to one tank of an AGU.
type GasMeasure struct {
	sample
	tankNumber int
	level      int
}

// NewGasMeasure creates a GasMeasure.
func NewGasMeasure(timestamp, predictionFor time.Time, tankNumber, level int) GasMeasure {
	return GasMeasure{
		sample:     sample{timestamp: timestamp, predictionFor: predictionFor},
		tankNumber: tankNumber,
		level:      level,
	}
}

// TankNumber returns the number of the tank the level belongs to.
func (m GasMeasure) TankNumber() int {
	return m.tankNumber
}

// Level returns the gas level.
func (m GasMeasure) Level() int {
	return m.level
}

// ProviderType implements Measure.
func (GasMeasure) ProviderType() ProviderType {
	return Gas
}

func (GasMeasure) sealedMeasure() {}

// TemperatureMeasure is a stored min/max temperature forecast for an AGU location.
type TemperatureMeasure struct {
	sample
	minTemperature int
	maxTemperature int
}

// NewTemperatureMeasure creates a TemperatureMeasure.
func NewTemperatureMeasure(timestamp, predictionFor time.Time, minTemperature, maxTemperature int) TemperatureMeasure {
	return TemperatureMeasure{
		sample:         sample{timestamp: timestamp, predictionFor: predictionFor},
		minTemperature: minTemperature,
		maxTemperature: maxTemperature,
	}
}

// Min returns the minimum temperature.
func (m TemperatureMeasure) Min() int {
	return m.minTemperature
}

// Max returns the maximum temperature.
func (m TemperatureMeasure) Max() int {
	return m.maxTemperature
}

// ProviderType implements Measure.
func (TemperatureMeasure) ProviderType() ProviderType {
	return Temperature
}

func (TemperatureMeasure) sealedMeasure() {}

// ToMeasure converts a reading into a measure. tankNumber is used for gas readings only.
func ToMeasure(r Reading, tankNumber int) Measure {
	switch v := r.(type) {
	case GasReading:
		return NewGasMeasure(v.timestamp, v.predictionFor, tankNumber, v.level)
	case TemperatureReading:
		return NewTemperatureMeasure(v.timestamp, v.predictionFor, v.minTemperature, v.maxTemperature)
	default:
		panic(fmt.Sprintf("measure: unsupported reading %T", r))
	}
}
