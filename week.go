// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"gonih.org/calendar/internal/cache"
	"gonih.org/calendar/kday"
	"gonih.org/calendar/ordinal"
)

// weekEngine implements calendars made of whole weeks, whose years start or
// end on a given weekday relative to a given month.
type weekEngine struct {
	cfg    Config
	bounds cache.Cache[int, yearBounds]
}

type yearBounds struct {
	first, last ordinal.Day
}

func newWeekEngine(cfg Config) *weekEngine {
	return &weekEngine{cfg: cfg}
}

// anchor returns the day that starts (Begins) or ends (Ends) a year, in the
// Gregorian year gy.
func (e *weekEngine) anchor(gy int) ordinal.Day {
	m, k, md := e.cfg.MonthOfYear, e.cfg.DayOfWeek, e.cfg.MinDaysInFirstWeek
	switch e.cfg.Position {
	case Last:
		dim := ordinal.DaysInMonth(gy, m)
		return kday.OnOrAfter(ordinal.FromGregorian(gy, m, dim-md+1), k)
	case Nearest:
		// md days of the window lie on the near side of the pivot, so md 4
		// is kday.Nearest.
		if e.cfg.Edge == Ends {
			last := ordinal.FromGregorian(gy, m, ordinal.DaysInMonth(gy, m))
			return kday.OnOrBefore(last+ordinal.Day(7-md), k)
		}
		return kday.OnOrBefore(ordinal.FromGregorian(gy, m, 1)+ordinal.Day(md-1), k)
	}
	return kday.OnOrBefore(ordinal.FromGregorian(gy, m, md), k)
}

// cacheStats reports the year bounds computed so far.
func (e *weekEngine) cacheStats() (int, cache.Stats) {
	return e.bounds.Len(), e.bounds.Stats()
}

func (e *weekEngine) yearBounds(y int) yearBounds {
	return e.bounds.Get(y, func(y int) yearBounds {
		if e.cfg.Edge == Ends {
			return yearBounds{
				first: e.anchor(e.cfg.endYear(y-1)) + 1,
				last:  e.anchor(e.cfg.endYear(y)),
			}
		}
		return yearBounds{
			first: e.anchor(e.cfg.startYear(y)),
			last:  e.anchor(e.cfg.startYear(y+1)) - 1,
		}
	})
}

func (e *weekEngine) valid(y, p, d int) bool {
	return p >= 1 && p <= e.periodsInYear(y) && d >= 1 && d <= 7
}

func (e *weekEngine) toOrdinal(y, p, d int) ordinal.Day {
	return e.firstDay(y) + ordinal.Day(7*(p-1)+d-1)
}

func (e *weekEngine) fromOrdinal(o ordinal.Day) (y, p, d int) {
	gy, gm, _ := o.Gregorian()
	if gm < e.cfg.beginMonth() {
		gy--
	}
	y = e.cfg.yearOfStart(gy)
	// The anchor is at most a month away from the start of the Gregorian
	// month, so this moves at most one year.
	for o < e.firstDay(y) {
		y--
	}
	for o > e.lastDay(y) {
		y++
	}
	n := int(o - e.firstDay(y))
	return y, n/7 + 1, n%7 + 1
}

func (e *weekEngine) periodsInYear(y int) int {
	b := e.yearBounds(y)
	return int(b.last-b.first+1) / 7
}

func (e *weekEngine) daysInPeriod(int, int) int { return 7 }

func (e *weekEngine) firstDay(y int) ordinal.Day { return e.yearBounds(y).first }

func (e *weekEngine) lastDay(y int) ordinal.Day { return e.yearBounds(y).last }

func (e *weekEngine) longYear(y int) bool { return e.periodsInYear(y) == 53 }

func (e *weekEngine) weekStart(y int) ordinal.Day { return e.firstDay(y) }

func (e *weekEngine) truncatedWeeks() bool { return false }

// weeksInMonth returns the number of weeks of month m. The last month of a
// long year holds the extra week.
func (e *weekEngine) weeksInMonth(y, m int) int {
	n := e.cfg.WeeksInMonth[(m-1)%3]
	if m == 12 && e.longYear(y) {
		n++
	}
	return n
}

func (e *weekEngine) monthBounds(y, m int) (first, last ordinal.Day) {
	before := 13 * ((m - 1) / 3)
	for i := 1; i <= (m-1)%3; i++ {
		before += e.cfg.WeeksInMonth[i-1]
	}
	first = e.firstDay(y) + ordinal.Day(7*before)
	return first, first + ordinal.Day(7*e.weeksInMonth(y, m)) - 1
}

func (e *weekEngine) monthOf(y, p int) int {
	for m := 1; m < 12; m++ {
		p -= e.weeksInMonth(y, m)
		if p <= 0 {
			return m
		}
	}
	return 12
}
