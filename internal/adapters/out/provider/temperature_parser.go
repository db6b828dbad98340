package provider

import (
	"errors"
	"math"
	"time"

	"agu/internal/core/domain/model/measure"
	"agu/internal/core/ports"

	"github.com/goccy/go-json"
)

// Forecast values outside this range in degrees Celsius are treated as malformed.
const (
	minTemperature = -90
	maxTemperature = 60
)

type temperaturePayload struct {
	Daily *struct {
		Time []string   `json:"time"`
		Min  []*float64 `json:"temperature_2m_min"`
		Max  []*float64 `json:"temperature_2m_max"`
	} `json:"daily"`
}

// TemperatureParser reads daily forecast arrays keyed by date:
//
//	{"daily": {"time": ["2025-03-10", ...], "temperature_2m_min": [...], "temperature_2m_max": [...]}}
//
// Each day becomes a measure whose predictionFor is that date at midnight UTC.
type TemperatureParser struct{}

func NewTemperatureParser() TemperatureParser {
	return TemperatureParser{}
}

func (TemperatureParser) Type() measure.ProviderType {
	return measure.Temperature
}

func (TemperatureParser) Parse(payload []byte, fetchedAt time.Time) (ports.ParseResult, error) {
	var doc temperaturePayload
	if err := json.Unmarshal(payload, &doc); err != nil {
		return ports.ParseResult{}, errors.Join(ErrMalformedPayload, err)
	}
	if doc.Daily == nil {
		return ports.ParseResult{}, errors.Join(ErrMalformedPayload, errors.New("daily section is missing"))
	}

	var result ports.ParseResult
	for i, raw := range doc.Daily.Time {
		day, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			result.Skipped++
			continue
		}

		lo, okMin := valueAt(doc.Daily.Min, i)
		hi, okMax := valueAt(doc.Daily.Max, i)
		if !okMin || !okMax || lo > hi {
			result.Skipped++
			continue
		}

		reading, err := measure.Temperature.BuildReading(fetchedAt, day.UTC(), lo, hi)
		if err != nil {
			result.Skipped++
			continue
		}
		result.Measures = append(result.Measures, measure.ToMeasure(reading, 0))
	}
	return result, nil
}

func valueAt(values []*float64, i int) (int, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	v := *values[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	rounded := math.Round(v)
	if rounded < minTemperature || rounded > maxTemperature {
		return 0, false
	}
	return int(rounded), true
}
