package domain

import "time"

// Duration represents an elapsed session length in hours
type Duration struct {
	hours float64
}

// NewDuration creates a new duration value
func NewDuration(hours float64) (Duration, error) {
	if hours < 0 {
		return Duration{}, NewValidationError("duration", "duration cannot be negative")
	}
	return Duration{hours: hours}, nil
}

// DurationBetween derives a duration from two timestamps
func DurationBetween(start, end time.Time) Duration {
	hours := end.Sub(start).Hours()
	if hours < 0 {
		hours = 0
	}
	return Duration{hours: hours}
}

// Hours returns the duration in hours
func (d Duration) Hours() float64 {
	return d.hours
}

// Add returns the sum of two durations
func (d Duration) Add(other Duration) Duration {
	return Duration{hours: d.hours + other.hours}
}

// IsZero reports whether the duration is zero
func (d Duration) IsZero() bool {
	return d.hours == 0
}
