// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"gonih.org/calendar/ordinal"
)

// engine does the arithmetic of one kind of calendar. Methods taking a
// year, period and day assume they are valid.
type engine interface {
	valid(y, p, d int) bool
	toOrdinal(y, p, d int) ordinal.Day
	fromOrdinal(o ordinal.Day) (y, p, d int)

	periodsInYear(y int) int
	daysInPeriod(y, p int) int
	firstDay(y int) ordinal.Day
	lastDay(y int) ordinal.Day
	longYear(y int) bool

	// weekStart returns the first day of week 1 of y.
	weekStart(y int) ordinal.Day
	// truncatedWeeks reports whether weeks restart with every year, making
	// the last week of a year shorter than seven days.
	truncatedWeeks() bool

	// monthBounds returns the first and last day of the m-th month of y.
	monthBounds(y, m int) (first, last ordinal.Day)
	// monthOf returns the month containing period p of y.
	monthOf(y, p int) int
}

// beginMonth returns the Gregorian month in which years of c begin.
func (c Config) beginMonth() int {
	if c.Edge == Ends {
		return c.MonthOfYear%12 + 1
	}
	return c.MonthOfYear
}

// startYear returns the Gregorian year in which the first month of the
// calendar year y lies.
func (c Config) startYear(y int) int {
	b := c.beginMonth()
	if b == 1 {
		return y
	}
	switch c.Year {
	case Beginning:
		return y
	case Ending:
		return y - 1
	}
	// Twelve months starting in b put 13-b of them into the first
	// Gregorian year. Ties go to the later year.
	if 13-b > b-1 {
		return y
	}
	return y - 1
}

// endYear returns the Gregorian year in which the last month of the
// calendar year y lies.
func (c Config) endYear(y int) int {
	if c.beginMonth() == 1 {
		return c.startYear(y)
	}
	return c.startYear(y) + 1
}

// yearOfStart inverts startYear.
func (c Config) yearOfStart(gy int) int {
	return gy + (gy - c.startYear(gy))
}
