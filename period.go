// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"fmt"
	"iter"
	"strings"

	"gonih.org/calendar/ordinal"
)

// Unit is a unit of calendar time.
type Unit int

const (
	Years Unit = iota
	Quarters
	Months
	Weeks
	Days
)

var unitNames = [...]string{Years: "year", Quarters: "quarter", Months: "month", Weeks: "week", Days: "day"}

func (u Unit) String() string { return enumString(unitNames[:], u) }

// ParseUnit parses the singular or plural name of a unit.
func ParseUnit(s string) (Unit, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	if u, ok := parseEnum[Unit](unitNames[:], s); ok {
		return u, nil
	}
	return 0, fmt.Errorf("unknown unit %q", s)
}

// A Range is a year, quarter, month, week or day of a calendar: a closed
// interval of days with a position in its year.
type Range struct {
	cal         *Calendar
	unit        Unit
	year, index int
	first, last ordinal.Day
}

// Year returns the range of year.
func (c *Calendar) Year(year int) Range {
	return Range{cal: c, unit: Years, year: year, index: year, first: c.eng.firstDay(year), last: c.eng.lastDay(year)}
}

// Quarter returns quarter q of year.
func (c *Calendar) Quarter(year, q int) (Range, error) {
	if q < 1 || q > 4 {
		return Range{}, c.dateError(year, q, 1, "quarter must be in [1,4]")
	}
	first, _ := c.eng.monthBounds(year, 3*q-2)
	_, last := c.eng.monthBounds(year, 3*q)
	return Range{cal: c, unit: Quarters, year: year, index: q, first: first, last: last}, nil
}

// Month returns month m of year. For week-based calendars, months are
// groups of weeks following the configured quarter layout.
func (c *Calendar) Month(year, m int) (Range, error) {
	if m < 1 || m > 12 {
		return Range{}, c.dateError(year, m, 1, "month must be in [1,12]")
	}
	first, last := c.eng.monthBounds(year, m)
	return Range{cal: c, unit: Months, year: year, index: m, first: first, last: last}, nil
}

// Week returns week w of year. For month-based calendars, week 1 may start
// in the previous year and the last week may end in the next one.
func (c *Calendar) Week(year, w int) (Range, error) {
	if n := c.WeeksInYear(year); w < 1 || w > n {
		return Range{}, c.dateError(year, w, 1, fmt.Sprintf("year has %d weeks", n))
	}
	first, last := c.weekBounds(year, w)
	return Range{cal: c, unit: Weeks, year: year, index: w, first: first, last: last}, nil
}

// Day returns the n-th day of year.
func (c *Calendar) Day(year, n int) (Range, error) {
	if days := c.DaysInYear(year); n < 1 || n > days {
		return Range{}, c.dateError(year, 1, n, fmt.Sprintf("year has %d days", days))
	}
	o := c.eng.firstDay(year) + ordinal.Day(n-1)
	return Range{cal: c, unit: Days, year: year, index: n, first: o, last: o}, nil
}

// RangeOf returns the range of the given unit containing d.
func (c *Calendar) RangeOf(u Unit, d Date) (Range, error) {
	d = d.In(c)
	switch u {
	case Years:
		return c.Year(d.year), nil
	case Quarters:
		return c.Quarter(d.year, d.Quarter())
	case Months:
		return c.Month(d.year, d.Month())
	case Weeks:
		y, w := d.Week()
		return c.Week(y, w)
	case Days:
		return c.Day(d.year, d.DayOfYear())
	}
	return Range{}, fmt.Errorf("%w: unknown unit %v", ErrInvalidDate, u)
}

// Calendar returns the calendar of r.
func (r Range) Calendar() *Calendar { return r.cal }

// Unit returns the unit of r.
func (r Range) Unit() Unit { return r.unit }

// Year returns the year r belongs to.
func (r Range) Year() int { return r.year }

// Index returns the position of r within its year: the quarter, month,
// week or day of year. For year ranges it is the year.
func (r Range) Index() int { return r.index }

// Bounds implements interval.Interval.
func (r Range) Bounds() (first, last ordinal.Day) { return r.first, r.last }

// First returns the first date of r.
func (r Range) First() Date { return r.cal.FromOrdinal(r.first) }

// Last returns the last date of r.
func (r Range) Last() Date { return r.cal.FromOrdinal(r.last) }

// Len returns the number of days in r.
func (r Range) Len() int { return int(r.last-r.first) + 1 }

// Contains reports whether d lies within r.
func (r Range) Contains(d Date) bool {
	return r.first <= d.o && d.o <= r.last
}

// Dates returns an iterator over the dates of r, in order.
func (r Range) Dates() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for o := r.first; o <= r.last; o++ {
			if !yield(r.cal.FromOrdinal(o)) {
				return
			}
		}
	}
}

// String formats r as its unit and position, such as "2024-Q2".
func (r Range) String() string {
	if r.cal == nil {
		return "<invalid range>"
	}
	switch r.unit {
	case Years:
		return fmt.Sprintf("%04d", r.year)
	case Quarters:
		return fmt.Sprintf("%04d-Q%d", r.year, r.index)
	case Months:
		return fmt.Sprintf("%04d-M%02d", r.year, r.index)
	case Weeks:
		return fmt.Sprintf("%04d-W%02d", r.year, r.index)
	}
	return fmt.Sprintf("%04d-%03d", r.year, r.index)
}

// Next returns the range following r by one u. Stepping by the unit of r
// moves to the adjacent range. Stepping by Years keeps the position within
// the year, and stepping a month by Quarters moves three months.
//
// If the position does not exist in the target year, such as week 53 of a
// year with 52 weeks, Next returns an error matching ErrInvalidDate unless
// coerce is set, in which case the last valid position is used.
func (r Range) Next(u Unit, coerce bool) (Range, error) {
	return r.step(u, 1, coerce)
}

// Previous is like Next, but steps backwards.
func (r Range) Previous(u Unit, coerce bool) (Range, error) {
	return r.step(u, -1, coerce)
}

func (r Range) step(u Unit, n int, coerce bool) (Range, error) {
	c := r.cal
	switch {
	case r.unit == Years && u == Years:
		return c.Year(r.year + n), nil
	case u == r.unit:
		y, i := carry(r.year, r.index+n, r.perYear(r.year))
		if n < 0 && y != r.year {
			// carry assumed the current year's length.
			i = r.perYear(y)
		}
		return r.at(y, i, coerce)
	case u == Years:
		return r.at(r.year+n, r.index, coerce)
	case u == Quarters && r.unit == Months:
		y, i := carry(r.year, r.index+3*n, 12)
		return r.at(y, i, coerce)
	}
	return Range{}, fmt.Errorf("%w: cannot step a %v by a %v", ErrInvalidDate, r.unit, u)
}

// perYear returns the number of ranges of r's unit in year.
func (r Range) perYear(year int) int {
	switch r.unit {
	case Quarters:
		return 4
	case Months:
		return 12
	case Weeks:
		return r.cal.WeeksInYear(year)
	case Days:
		return r.cal.DaysInYear(year)
	}
	return 1
}

// at returns the range of r's unit at index i of year, coercing i if asked.
func (r Range) at(year, i int, coerce bool) (Range, error) {
	if n := r.perYear(year); i > n && coerce {
		i = n
	}
	c := r.cal
	switch r.unit {
	case Quarters:
		return c.Quarter(year, i)
	case Months:
		return c.Month(year, i)
	case Weeks:
		return c.Week(year, i)
	case Days:
		return c.Day(year, i)
	}
	return c.Year(year), nil
}
