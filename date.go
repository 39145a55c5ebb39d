// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"fmt"
	"time"

	"gonih.org/calendar/kday"
	"gonih.org/calendar/ordinal"
)

// A Date is a day in a calendar. It can only be obtained from a Calendar, so
// it always names a valid date. The zero Date has no calendar and should not
// be used.
type Date struct {
	cal                *Calendar
	o                  ordinal.Day
	year, period, day int
}

// Calendar returns the calendar of d.
func (d Date) Calendar() *Calendar { return d.cal }

// Year returns the year of d.
func (d Date) Year() int { return d.year }

// Period returns the month (month-based) or week (week-based) of d.
func (d Date) Period() int { return d.period }

// Day returns the day of the period of d.
func (d Date) Day() int { return d.day }

// Ordinal returns the ordinal day of d.
func (d Date) Ordinal() ordinal.Day { return d.o }

// Weekday returns the ISO 8601 weekday of d, 1 for Monday through 7 for
// Sunday.
func (d Date) Weekday() int { return d.o.Weekday() }

// DayOfYear returns the number of d within its year, starting at 1.
func (d Date) DayOfYear() int {
	return int(d.o-d.cal.eng.firstDay(d.year)) + 1
}

// Month returns the month of d. For week-based calendars, this is the month
// of the quarter layout the week of d is grouped into.
func (d Date) Month() int {
	return d.cal.eng.monthOf(d.year, d.period)
}

// Quarter returns the quarter of d.
func (d Date) Quarter() int {
	return (d.Month()-1)/3 + 1
}

// Week returns the week-numbering year and week of d.
func (d Date) Week() (year, week int) {
	return d.cal.weekOf(d.o)
}

// Gregorian returns the Gregorian year, month and day of d.
func (d Date) Gregorian() (year, month, day int) {
	return d.o.Gregorian()
}

// Time returns the given moment in time on d, in loc.
func (d Date) Time(hour, min, sec, nsec int, loc *time.Location) time.Time {
	return d.o.Time(hour, min, sec, nsec, loc)
}

// In returns the same day in cal.
func (d Date) In(cal *Calendar) Date {
	return cal.FromOrdinal(d.o)
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return d.cal.FromOrdinal(d.o + ordinal.Day(n))
}

// Compare returns -1, 0 or +1 depending on whether d is before, on the same
// day as, or after e. Dates of different calendars compare by their day.
func (d Date) Compare(e Date) int {
	switch {
	case d.o < e.o:
		return -1
	case d.o > e.o:
		return 1
	}
	return 0
}

// Before reports whether d is before e.
func (d Date) Before(e Date) bool { return d.o < e.o }

// After reports whether d is after e.
func (d Date) After(e Date) bool { return d.o > e.o }

// Equal reports whether d and e are the same day.
func (d Date) Equal(e Date) bool { return d.o == e.o }

// Bounds implements interval.Interval as the single day d.
func (d Date) Bounds() (first, last ordinal.Day) { return d.o, d.o }

// KdayOnOrBefore returns the last date of weekday k not after d.
func (d Date) KdayOnOrBefore(k int) Date {
	return d.cal.FromOrdinal(kday.OnOrBefore(d.o, k))
}

// KdayOnOrAfter returns the first date of weekday k not before d.
func (d Date) KdayOnOrAfter(k int) Date {
	return d.cal.FromOrdinal(kday.OnOrAfter(d.o, k))
}

// KdayNearest returns the date of weekday k nearest to d.
func (d Date) KdayNearest(k int) Date {
	return d.cal.FromOrdinal(kday.Nearest(d.o, k))
}

// KdayBefore returns the last date of weekday k strictly before d.
func (d Date) KdayBefore(k int) Date {
	return d.cal.FromOrdinal(kday.Before(d.o, k))
}

// KdayAfter returns the first date of weekday k strictly after d.
func (d Date) KdayAfter(k int) Date {
	return d.cal.FromOrdinal(kday.After(d.o, k))
}

// NthKday returns the n-th date of weekday k counting from d. See kday.Nth.
func (d Date) NthKday(n, k int) (Date, error) {
	o, err := kday.Nth(d.o, n, k)
	if err != nil {
		return Date{}, err
	}
	return d.cal.FromOrdinal(o), nil
}

// Plus returns d moved by n units. Years and months (or periods) keep the
// day of the period. If that day does not exist in the target period, Plus
// returns an error matching ErrInvalidDate, unless coerce is set, in which
// case the day is clamped to the last day of the period. Weeks and days
// never need coercion.
func (d Date) Plus(u Unit, n int, coerce bool) (Date, error) {
	c := d.cal
	switch u {
	case Days:
		return d.AddDays(n), nil
	case Weeks:
		return d.AddDays(7 * n), nil
	case Years:
		return c.clamped(d.year+n, d.period, d.day, coerce)
	case Quarters:
		n *= 3
		fallthrough
	case Months:
		if c.cfg.Kind == WeekBased {
			return d.plusMonths(n, coerce)
		}
		y, p := carry(d.year, d.period+n, 12)
		return c.clamped(y, p, d.day, coerce)
	}
	return Date{}, fmt.Errorf("%w: cannot add %v", ErrInvalidDate, u)
}

// plusMonths moves a date of a week-based calendar by whole months of its
// quarter layout, keeping the day offset within the month.
func (d Date) plusMonths(n int, coerce bool) (Date, error) {
	c := d.cal
	m := d.Month()
	first, _ := c.eng.monthBounds(d.year, m)
	offset := int(d.o - first)
	y, m := carry(d.year, m+n, 12)
	first, last := c.eng.monthBounds(y, m)
	o := first + ordinal.Day(offset)
	if o > last {
		if !coerce {
			return Date{}, c.dateError(y, m, offset+1, "day does not exist in month")
		}
		o = last
	}
	return c.FromOrdinal(o), nil
}

// clamped returns the date year, period, day, clamping period and day into
// range if coerce is set.
func (c *Calendar) clamped(year, period, day int, coerce bool) (Date, error) {
	if c.eng.valid(year, period, day) || !coerce {
		return c.Date(year, period, day)
	}
	period = min(period, c.eng.periodsInYear(year))
	day = min(day, c.eng.daysInPeriod(year, period))
	return c.Date(year, period, day)
}

// carry normalizes a one-based index into [1,n], moving whole multiples of n
// into y.
func carry(y, i, n int) (int, int) {
	i--
	y += i / n
	i %= n
	if i < 0 {
		i += n
		y--
	}
	return y, i + 1
}

// String formats d as year-period-day, such as "2024-03-17" or, for
// week-based calendars, "2024-W11-7".
func (d Date) String() string {
	if d.cal == nil {
		return "<invalid date>"
	}
	if d.cal.cfg.Kind == WeekBased {
		return d.Format(ISOWeekDate)
	}
	return d.Format(ISODate)
}

// GoString implements fmt.GoStringer.
func (d Date) GoString() string {
	if d.cal == nil {
		return "calendar.Date{}"
	}
	return fmt.Sprintf("%s.Date(%d, %d, %d)", d.cal.name, d.year, d.period, d.day)
}
