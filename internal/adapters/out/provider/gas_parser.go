package provider

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"agu/internal/core/domain/model/measure"
	"agu/internal/core/domain/validation"
	"agu/internal/core/ports"

	"github.com/goccy/go-json"
)

// TankLevelComponent is the normalized component name of a tank level item.
// It may be followed by the tank number; without one the item is for tank 1.
const TankLevelComponent = "nivel tanque"

// ErrMalformedPayload is returned when a payload is not the expected JSON document.
var ErrMalformedPayload = errors.New("malformed payload")

type gasPayload struct {
	Items []json.RawMessage `json:"items"`
}

type gasItem struct {
	Component string          `json:"component"`
	Value     json.RawMessage `json:"value"`
}

// GasParser reads telemetry payloads of the form
//
//	{"items": [{"component": "Nível Tanque 1", "value": 63.4}, ...]}
//
// or the bare item array. Items of other components are ignored.
type GasParser struct{}

func NewGasParser() GasParser {
	return GasParser{}
}

func (GasParser) Type() measure.ProviderType {
	return measure.Gas
}

func (GasParser) Parse(payload []byte, fetchedAt time.Time) (ports.ParseResult, error) {
	items, err := decodeGasItems(payload)
	if err != nil {
		return ports.ParseResult{}, err
	}

	var result ports.ParseResult
	for _, raw := range items {
		var item gasItem
		if err := json.Unmarshal(raw, &item); err != nil {
			result.Skipped++
			continue
		}

		tank, ok := tankNumber(item.Component)
		if !ok {
			continue
		}

		level, ok := parseLevel(item.Value)
		if !ok {
			result.Skipped++
			continue
		}

		reading, err := measure.Gas.BuildReading(fetchedAt, fetchedAt, level)
		if err != nil {
			result.Skipped++
			continue
		}
		result.Measures = append(result.Measures, measure.ToMeasure(reading, tank))
	}
	return result, nil
}

func decodeGasItems(payload []byte) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, errors.Join(ErrMalformedPayload, err)
		}
		return items, nil
	}

	var doc gasPayload
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, errors.Join(ErrMalformedPayload, err)
	}
	return doc.Items, nil
}

// tankNumber reports whether component is a tank level and which tank it is for.
func tankNumber(component string) (int, bool) {
	name := NormalizeName(component)
	rest, found := strings.CutPrefix(name, TankLevelComponent)
	if !found {
		return 0, false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return 1, true
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseLevel accepts a JSON number or a numeric string and rounds it to a percentage.
func parseLevel(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "null" {
		return 0, false
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
		if err != nil {
			return 0, false
		}
		value = parsed
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	level := int(math.Round(value))
	if !validation.IsPercentageValid(level) {
		return 0, false
	}
	return level, true
}
