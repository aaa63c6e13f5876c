package service

import "time"

// Clock returns the current time in the location the services reason in.
type Clock func() time.Time

// ClockIn returns a Clock that reports wall time in loc.
func ClockIn(loc *time.Location) Clock {
	return func() time.Time {
		return time.Now().In(loc)
	}
}
