package services

import "time"

// Clock returns the current time. Services stamp alerts, measures windows and
// predictions with it.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}
