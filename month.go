// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"gonih.org/calendar/kday"
	"gonih.org/calendar/ordinal"
)

// monthEngine implements calendars whose periods are Gregorian months,
// starting at an arbitrary month.
type monthEngine struct {
	cfg Config
	b   int // Gregorian month of period 1
}

func newMonthEngine(cfg Config) *monthEngine {
	return &monthEngine{cfg: cfg, b: cfg.beginMonth()}
}

// gregorian returns the Gregorian year and month of period p of year y.
func (e *monthEngine) gregorian(y, p int) (gy, gm int) {
	k := e.b - 1 + p - 1
	return e.cfg.startYear(y) + k/12, k%12 + 1
}

func (e *monthEngine) valid(y, p, d int) bool {
	if p < 1 || p > 12 {
		return false
	}
	return d >= 1 && d <= e.daysInPeriod(y, p)
}

func (e *monthEngine) toOrdinal(y, p, d int) ordinal.Day {
	gy, gm := e.gregorian(y, p)
	return ordinal.FromGregorian(gy, gm, d)
}

func (e *monthEngine) fromOrdinal(o ordinal.Day) (y, p, d int) {
	gy, gm, d := o.Gregorian()
	if gm >= e.b {
		return e.cfg.yearOfStart(gy), gm - e.b + 1, d
	}
	return e.cfg.yearOfStart(gy - 1), gm + 12 - e.b + 1, d
}

func (e *monthEngine) periodsInYear(int) int { return 12 }

func (e *monthEngine) daysInPeriod(y, p int) int {
	return ordinal.DaysInMonth(e.gregorian(y, p))
}

func (e *monthEngine) firstDay(y int) ordinal.Day {
	return ordinal.FromGregorian(e.cfg.startYear(y), e.b, 1)
}

func (e *monthEngine) lastDay(y int) ordinal.Day {
	return e.firstDay(y+1) - 1
}

func (e *monthEngine) longYear(y int) bool {
	return e.lastDay(y)-e.firstDay(y) == 365
}

func (e *monthEngine) weekStart(y int) ordinal.Day {
	first := e.firstDay(y)
	if e.truncatedWeeks() {
		return first
	}
	return kday.OnOrBefore(first+ordinal.Day(e.cfg.MinDaysInFirstWeek-1), e.cfg.DayOfWeek)
}

func (e *monthEngine) truncatedWeeks() bool {
	return e.cfg.DayOfWeek == FirstDayOfYear
}

func (e *monthEngine) monthBounds(y, m int) (first, last ordinal.Day) {
	first = e.toOrdinal(y, m, 1)
	return first, first + ordinal.Day(e.daysInPeriod(y, m)-1)
}

func (e *monthEngine) monthOf(_, p int) int { return p }
