// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calendar implements configurable calendars: the Gregorian calendar,
// fiscal calendars starting in any month, and week-based calendars such as
// ISO 8601 week dates or the 4-4-5 retail calendars.
//
// Every calendar converts its dates to and from an [ordinal.Day], so dates of
// different calendars can be compared and converted into each other. A date
// is a year, a period and a day of that period. For month-based calendars the
// period is a month. For week-based calendars it is a week, and the day is
// the day of that week.
//
// A calendar is described by a [Config]. Calendars are immutable values and
// safe for concurrent use. A [Registry] keeps calendars by name.
package calendar

import (
	"fmt"
	"time"

	"gonih.org/calendar/kday"
	"gonih.org/calendar/ordinal"
)

// Calendar is a configured calendar.
type Calendar struct {
	name string
	cfg  Config
	eng  engine
}

// New returns a calendar with the given name and configuration.
func New(name string, cfg Config) (*Calendar, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("calendar %q: %w", name, err)
	}
	cfg = cfg.withDefaults()
	c := &Calendar{name: name, cfg: cfg}
	switch cfg.Kind {
	case WeekBased:
		c.eng = newWeekEngine(cfg)
	default:
		c.eng = newMonthEngine(cfg)
	}
	return c, nil
}

// MustNew is like New, but panics if cfg is invalid. It is meant for
// calendars defined at package initialization.
func MustNew(name string, cfg Config) *Calendar {
	c, err := New(name, cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// FromOptions returns a calendar configured by opts. See NewConfig.
func FromOptions(name string, opts Options) (*Calendar, error) {
	cfg, err := NewConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("calendar %q: %w", name, err)
	}
	return New(name, cfg)
}

// Predefined calendars.
var (
	// Gregorian is the proleptic Gregorian calendar. Its weeks start on
	// Monday and week 1 is the week containing January 1st.
	Gregorian = MustNew("gregorian", Config{
		DayOfWeek:          kday.Monday,
		MinDaysInFirstWeek: 1,
	})

	// ISOWeek is the ISO 8601 week date calendar.
	ISOWeek = MustNew("iso_week", Config{
		Kind:               WeekBased,
		DayOfWeek:          kday.Monday,
		MonthOfYear:        1,
		MinDaysInFirstWeek: 4,
	})

	// USFiscal is the fiscal year of the US federal government. It begins
	// in October and is named after the year it ends in.
	USFiscal = MustNew("us_fiscal", Config{
		DayOfWeek:          kday.Sunday,
		MonthOfYear:        10,
		MinDaysInFirstWeek: 1,
	})

	// UKFiscal begins in April and is named after the year it begins in.
	UKFiscal = MustNew("uk_fiscal", Config{
		DayOfWeek:          kday.Monday,
		MonthOfYear:        4,
		MinDaysInFirstWeek: 4,
	})

	// AUFiscal begins in July and is named after the year it ends in.
	AUFiscal = MustNew("au_fiscal", Config{
		DayOfWeek:          kday.Monday,
		MonthOfYear:        7,
		MinDaysInFirstWeek: 1,
	})

	// NRF is the 4-5-4 retail calendar of the National Retail Federation.
	// Years end on the Saturday nearest to the end of January.
	NRF = MustNew("nrf", Config{
		Kind:         WeekBased,
		DayOfWeek:    kday.Saturday,
		MonthOfYear:  1,
		Edge:         Ends,
		Position:     Nearest,
		WeeksInMonth: [3]int{4, 5, 4},
	})
)

// Name returns the name of c.
func (c *Calendar) Name() string { return c.name }

// Config returns the configuration of c, with defaults applied.
func (c *Calendar) Config() Config { return c.cfg }

// String returns the name of c.
func (c *Calendar) String() string { return c.name }

// ValidDate reports whether year, period and day name a date of c.
func (c *Calendar) ValidDate(year, period, day int) bool {
	return c.eng.valid(year, period, day)
}

func (c *Calendar) dateError(year, period, day int, reason string) error {
	return &DateError{Calendar: c.name, Year: year, Period: period, Day: day, Reason: reason}
}

// checkDate returns a DateError explaining why the date is invalid, or nil.
func (c *Calendar) checkDate(year, period, day int) error {
	if c.eng.valid(year, period, day) {
		return nil
	}
	if n := c.eng.periodsInYear(year); period < 1 || period > n {
		return c.dateError(year, period, day, fmt.Sprintf("year has %d periods", n))
	}
	return c.dateError(year, period, day, fmt.Sprintf("period has %d days", c.eng.daysInPeriod(year, period)))
}

// Date returns the date with the given year, period and day.
func (c *Calendar) Date(year, period, day int) (Date, error) {
	if err := c.checkDate(year, period, day); err != nil {
		return Date{}, err
	}
	return Date{cal: c, o: c.eng.toOrdinal(year, period, day), year: year, period: period, day: day}, nil
}

// ToOrdinal returns the ordinal day of the given date.
func (c *Calendar) ToOrdinal(year, period, day int) (ordinal.Day, error) {
	if err := c.checkDate(year, period, day); err != nil {
		return 0, err
	}
	return c.eng.toOrdinal(year, period, day), nil
}

// FromOrdinal returns the date of c on the day o. Every ordinal day is a
// date of every calendar.
func (c *Calendar) FromOrdinal(o ordinal.Day) Date {
	y, p, d := c.eng.fromOrdinal(o)
	return Date{cal: c, o: o, year: y, period: p, day: d}
}

// DateOf returns the date of c on the calendar day of t, in t's location.
func (c *Calendar) DateOf(t time.Time) Date {
	return c.FromOrdinal(ordinal.FromTime(t))
}

// Today returns the current date of c in the given location.
func (c *Calendar) Today(loc *time.Location) Date {
	return c.FromOrdinal(ordinal.Today(loc))
}

// PeriodsInYear returns the number of periods of year: 12 for month-based
// calendars, 52 or 53 for week-based calendars.
func (c *Calendar) PeriodsInYear(year int) int {
	return c.eng.periodsInYear(year)
}

// DaysInPeriod returns the number of days in a period of year.
func (c *Calendar) DaysInPeriod(year, period int) (int, error) {
	if n := c.eng.periodsInYear(year); period < 1 || period > n {
		return 0, c.dateError(year, period, 1, fmt.Sprintf("year has %d periods", n))
	}
	return c.eng.daysInPeriod(year, period), nil
}

// DaysInYear returns the number of days in year.
func (c *Calendar) DaysInYear(year int) int {
	return int(c.eng.lastDay(year)-c.eng.firstDay(year)) + 1
}

// LongYear reports whether year is a leap year (for month-based calendars)
// or has 53 weeks (for week-based calendars).
func (c *Calendar) LongYear(year int) bool {
	return c.eng.longYear(year)
}

// FirstDayOfYear returns the first day of year.
func (c *Calendar) FirstDayOfYear(year int) Date {
	return c.FromOrdinal(c.eng.firstDay(year))
}

// LastDayOfYear returns the last day of year.
func (c *Calendar) LastDayOfYear(year int) Date {
	return c.FromOrdinal(c.eng.lastDay(year))
}

// WeeksInYear returns the number of weeks of year.
func (c *Calendar) WeeksInYear(year int) int {
	if c.eng.truncatedWeeks() {
		return (c.DaysInYear(year) + 6) / 7
	}
	return int(c.eng.weekStart(year+1)-c.eng.weekStart(year)) / 7
}

// weekOf returns the week-numbering year and week of o. For calendars whose
// weeks cross year boundaries, the week-numbering year can differ from the
// year of o.
func (c *Calendar) weekOf(o ordinal.Day) (year, week int) {
	year, _, _ = c.eng.fromOrdinal(o)
	if c.eng.truncatedWeeks() {
		return year, int(o-c.eng.firstDay(year))/7 + 1
	}
	if start := c.eng.weekStart(year); o < start {
		year--
	} else if o >= c.eng.weekStart(year+1) {
		year++
	}
	return year, int(o-c.eng.weekStart(year))/7 + 1
}

// weekBounds returns the first and last day of week w of year.
func (c *Calendar) weekBounds(year, week int) (first, last ordinal.Day) {
	first = c.eng.weekStart(year) + ordinal.Day(7*(week-1))
	last = first + 6
	if c.eng.truncatedWeeks() {
		last = min(last, c.eng.lastDay(year))
	}
	return first, last
}

// Compatible reports whether c and o describe the same calendar.
func (c *Calendar) Compatible(o *Calendar) bool {
	return c == o || (c != nil && o != nil && c.cfg == o.cfg)
}
