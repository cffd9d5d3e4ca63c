package schedule

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Parity classifies a calendar week as odd or even.
type Parity string

const (
	Odd  Parity = "odd"
	Even Parity = "even"
)

// ErrUnknownParity is returned by ParseParity for anything but odd/even.
var ErrUnknownParity = errors.New("week parity must be odd or even")

// ParseParity parses "odd" or "even", case-insensitively.
func ParseParity(s string) (Parity, error) {
	switch Parity(strings.ToLower(strings.TrimSpace(s))) {
	case Odd:
		return Odd, nil
	case Even:
		return Even, nil
	default:
		return "", ErrUnknownParity
	}
}

// Valid reports whether p is odd or even.
func (p Parity) Valid() bool { return p == Odd || p == Even }

// Other returns the opposite parity.
func (p Parity) Other() Parity {
	if p == Odd {
		return Even
	}
	return Odd
}

const week = 7 * 24 * time.Hour

// WeekNumber approximates the week of the year: the time elapsed since
// January 1st of now's year, in weeks, rounded up. It is not ISO 8601.
func WeekNumber(now time.Time) int {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return int(math.Ceil(float64(now.Sub(start)) / float64(week)))
}

// WeekParity returns Odd for odd week numbers and Even otherwise.
func WeekParity(weekNumber int) Parity {
	if weekNumber%2 == 1 {
		return Odd
	}
	return Even
}

// WeekType is WeekParity(WeekNumber(now)).
func WeekType(now time.Time) Parity {
	return WeekParity(WeekNumber(now))
}

// CurrentDay returns the weekday index of now, 0 being Sunday.
func CurrentDay(now time.Time) int {
	return int(now.Weekday())
}
