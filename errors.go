// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"errors"
	"fmt"

	"gonih.org/calendar/ordinal"
)

var (
	// ErrInvalidDate is returned if a year, period and day do not name a
	// date in a calendar, or a step lands on a period that does not exist.
	// It is the same value as ordinal.ErrInvalidDate.
	ErrInvalidDate = ordinal.ErrInvalidDate

	// ErrConfig is returned for unknown, renamed, malformed or contradictory
	// configuration options.
	ErrConfig = errors.New("invalid calendar configuration")

	// ErrIncompatibleCalendar is returned if two dates of different
	// calendars are combined.
	ErrIncompatibleCalendar = errors.New("incompatible calendars")

	// ErrIncompatibleTimeZone is returned if two date-times with different
	// UTC offsets are combined.
	ErrIncompatibleTimeZone = errors.New("incompatible time zones")

	// ErrInvalidDateOrder is returned if the end of a duration lies before
	// its start.
	ErrInvalidDateOrder = errors.New("invalid date order")
)

// ConfigError describes a single problem with a calendar option.
type ConfigError struct {
	Option string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("calendar option %q: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("calendar option %q = %v: %s", e.Option, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrConfig) true for every ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// DateError describes a year, period and day that are not a date of a
// calendar.
type DateError struct {
	Calendar string
	Year     int
	Period   int
	Day      int
	Reason   string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s: %d-%02d-%02d is not a valid date: %s", e.Calendar, e.Year, e.Period, e.Day, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidDate) true for every DateError.
func (e *DateError) Is(target error) bool {
	return target == ErrInvalidDate
}
