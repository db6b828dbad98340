package load

import (
	"strings"

	"agu/internal/pkg/errs"
)

// TimeOfDay is the delivery window inside a day.
type TimeOfDay int

const (
	TimeOfDayUnknown TimeOfDay = iota
	Morning
	Afternoon
	Night
)

var timeOfDayNames = map[TimeOfDay]string{
	Morning:   "MORNING",
	Afternoon: "AFTERNOON",
	Night:     "NIGHT",
}

// ParseTimeOfDay accepts MORNING, AFTERNOON or NIGHT in any letter case.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for tod, name := range timeOfDayNames {
		if name == normalized {
			return tod, nil
		}
	}
	return TimeOfDayUnknown, errs.NewValueIsInvalidError("time of day")
}

func (t TimeOfDay) String() string {
	if name, ok := timeOfDayNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Validate rejects values outside the enumeration.
func (t TimeOfDay) Validate() error {
	if _, ok := timeOfDayNames[t]; !ok {
		return errs.NewValueIsInvalidError("time of day")
	}
	return nil
}
