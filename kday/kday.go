// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kday finds days of a given weekday relative to another day.
//
// Weekdays use ISO 8601 numbering: 1 is Monday, 7 is Sunday. All functions
// operate on raw [ordinal.Day] values, so they apply to every calendar.
package kday

import (
	"errors"
	"fmt"

	"gonih.org/calendar/ordinal"
)

// Weekdays, as ISO 8601 numbers.
const (
	Monday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// ErrInvalidWeekday is returned for weekdays outside [1,7].
var ErrInvalidWeekday = errors.New("weekday out of range")

// ErrZeroOccurrence is returned by Nth if asked for the zeroth occurrence.
var ErrZeroOccurrence = errors.New("occurrence must not be zero")

// Valid reports whether k is a weekday.
func Valid(k int) bool {
	return k >= Monday && k <= Sunday
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// OnOrBefore returns the latest day of weekday k, that is not after d.
func OnOrBefore(d ordinal.Day, k int) ordinal.Day {
	return d - ordinal.Day(floorMod(int(d)-k, 7))
}

// OnOrAfter returns the earliest day of weekday k, that is not before d.
func OnOrAfter(d ordinal.Day, k int) ordinal.Day {
	return OnOrBefore(d+6, k)
}

// Nearest returns the day of weekday k closest to d. As the distance is at
// most three days, there are never two candidates.
func Nearest(d ordinal.Day, k int) ordinal.Day {
	return OnOrBefore(d+3, k)
}

// Before returns the latest day of weekday k strictly before d. If d is
// itself of weekday k, the result is a full week earlier.
func Before(d ordinal.Day, k int) ordinal.Day {
	return OnOrBefore(d-1, k)
}

// After returns the earliest day of weekday k strictly after d. If d is itself
// of weekday k, the result is a full week later.
func After(d ordinal.Day, k int) ordinal.Day {
	return OnOrAfter(d+1, k)
}

// Nth returns the n-th day of weekday k counting from d. For positive n,
// counting starts at d and moves forward, so Nth(d, 1, k) is OnOrAfter(d, k).
// For negative n it moves backwards, so Nth(d, -1, k) is OnOrBefore(d, k).
func Nth(d ordinal.Day, n, k int) (ordinal.Day, error) {
	if !Valid(k) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWeekday, k)
	}
	switch {
	case n > 0:
		return OnOrAfter(d, k) + ordinal.Day(7*(n-1)), nil
	case n < 0:
		return OnOrBefore(d, k) + ordinal.Day(7*(n+1)), nil
	}
	return 0, ErrZeroOccurrence
}

// First returns the first day of weekday k on or after d.
func First(d ordinal.Day, k int) ordinal.Day {
	return OnOrAfter(d, k)
}

// Last returns the last day of weekday k in the seven days ending on d.
func Last(d ordinal.Day, k int) ordinal.Day {
	return OnOrBefore(d, k)
}

// NthInMonth returns the n-th day of weekday k in the given Gregorian month.
// Negative n count from the end of the month, so -1 is the last such day.
// The result may fall outside the month if n exceeds the number of matching
// days.
func NthInMonth(year, month, n, k int) (ordinal.Day, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d", ordinal.ErrInvalidDate, month)
	}
	if n < 0 {
		return Nth(ordinal.FromGregorian(year, month, ordinal.DaysInMonth(year, month)), n, k)
	}
	return Nth(ordinal.FromGregorian(year, month, 1), n, k)
}
