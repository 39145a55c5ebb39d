// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"cloudeng.io/errors"
	"github.com/mitchellh/mapstructure"

	"gonih.org/calendar/kday"
)

// Kind selects the engine of a calendar.
type Kind int

const (
	// MonthBased calendars have twelve periods that map onto Gregorian
	// months, possibly shifted to start in another month.
	MonthBased Kind = iota
	// WeekBased calendars have 52 or 53 periods of seven days each.
	WeekBased
)

// Edge selects whether the anchor describes the beginning or the end of a
// year.
type Edge int

const (
	Begins Edge = iota
	Ends
)

// Position selects how the anchor weekday is found relative to the anchor
// month.
type Position int

const (
	// First is the first anchor weekday such that at least
	// MinDaysInFirstWeek days of the anchor month follow.
	First Position = iota
	// Last is the last anchor weekday such that at least
	// MinDaysInFirstWeek days of the anchor month precede.
	Last
	// Nearest is the anchor weekday nearest to the first (Begins) or last
	// (Ends) day of the anchor month. MinDaysInFirstWeek breaks the tie: it
	// is the number of days of the seven-day window on the month's side of
	// that day, and defaults to 4, which picks the closest occurrence.
	Nearest
)

// Attribution selects which Gregorian year labels a calendar year that spans
// two of them.
type Attribution int

const (
	// Majority labels a year by the Gregorian year holding most of its
	// months. An even split goes to the year the calendar year ends in.
	Majority Attribution = iota
	Beginning
	Ending
)

// FirstDayOfYear is the DayOfWeek sentinel for month-based calendars whose
// weeks start on the first day of the year, whatever weekday that is.
const FirstDayOfYear = 0

var (
	kindNames        = [...]string{MonthBased: "month", WeekBased: "week"}
	edgeNames        = [...]string{Begins: "begins", Ends: "ends"}
	positionNames    = [...]string{First: "first", Last: "last", Nearest: "nearest"}
	attributionNames = [...]string{Majority: "majority", Beginning: "beginning", Ending: "ending"}
	weekdayNames     = [...]string{"", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
)

func enumString[E ~int](names []string, e E) string {
	if e < 0 || int(e) >= len(names) {
		return strconv.Itoa(int(e))
	}
	return names[e]
}

func parseEnum[E ~int](names []string, s string) (E, bool) {
	i := slices.Index(names, strings.ToLower(strings.TrimSpace(s)))
	return E(i), i >= 0
}

func (k Kind) String() string        { return enumString(kindNames[:], k) }
func (e Edge) String() string        { return enumString(edgeNames[:], e) }
func (p Position) String() string    { return enumString(positionNames[:], p) }
func (a Attribution) String() string { return enumString(attributionNames[:], a) }

// Config describes a calendar. The zero value is the Gregorian calendar with
// weeks counted from January 1st.
//
// Zero values of MonthOfYear, MinDaysInFirstWeek, WeeksInMonth and
// DaysInWeek are replaced by their defaults (1, 7, {4, 4, 5} and 7) when a
// calendar is created. For Position Nearest, MinDaysInFirstWeek defaults to 4.
type Config struct {
	Kind Kind
	// DayOfWeek is the ISO weekday (1 = Monday) weeks start on, or
	// FirstDayOfYear.
	DayOfWeek int
	// MonthOfYear is the Gregorian month the year begins or ends in.
	MonthOfYear int
	Edge        Edge
	Position    Position
	Year        Attribution
	// MinDaysInFirstWeek is how many days of a year its first week needs.
	MinDaysInFirstWeek int
	// WeeksInMonth is the number of weeks in each month of a quarter, for
	// week-based calendars.
	WeeksInMonth [3]int
	DaysInWeek   int
	// Locale and Backend are recorded but do not affect arithmetic.
	Locale  string
	Backend string
}

var layouts = [][3]int{{4, 4, 5}, {4, 5, 4}, {5, 4, 4}}

// withDefaults returns c with zero fields replaced by their defaults.
func (c Config) withDefaults() Config {
	if c.MonthOfYear == 0 {
		c.MonthOfYear = 1
	}
	if c.MinDaysInFirstWeek == 0 {
		c.MinDaysInFirstWeek = 7
		if c.Position == Nearest {
			c.MinDaysInFirstWeek = 4
		}
	}
	if c.WeeksInMonth == ([3]int{}) {
		c.WeeksInMonth = layouts[0]
	}
	if c.DaysInWeek == 0 {
		c.DaysInWeek = 7
	}
	return c
}

// Validate reports every problem with c, after applying defaults. The
// returned error matches ErrConfig.
func (c Config) Validate() error {
	c = c.withDefaults()
	errs := &errors.M{}
	bad := func(opt string, v any, reason string) {
		errs.Append(&ConfigError{Option: opt, Value: v, Reason: reason})
	}
	if c.Kind != MonthBased && c.Kind != WeekBased {
		bad("calendar", c.Kind, "must be month or week")
	}
	switch {
	case c.DayOfWeek == FirstDayOfYear && c.Kind == WeekBased:
		bad("day_of_week", "first", "week-based calendars need an anchor weekday")
	case c.DayOfWeek != FirstDayOfYear && !kday.Valid(c.DayOfWeek):
		bad("day_of_week", c.DayOfWeek, "must be in [1,7]")
	}
	if c.MonthOfYear < 1 || c.MonthOfYear > 12 {
		bad("month_of_year", c.MonthOfYear, "must be in [1,12]")
	}
	if c.Edge != Begins && c.Edge != Ends {
		bad("begins_or_ends", c.Edge, "must be begins or ends")
	}
	if c.Position < First || c.Position > Nearest {
		bad("first_or_last", c.Position, "must be first, last or nearest")
	}
	if c.Year < Majority || c.Year > Ending {
		bad("year", c.Year, "must be majority, beginning or ending")
	}
	if c.MinDaysInFirstWeek < 1 || c.MinDaysInFirstWeek > 7 {
		bad("min_days_in_first_week", c.MinDaysInFirstWeek, "must be in [1,7]")
	}
	if !slices.Contains(layouts, c.WeeksInMonth) {
		bad("weeks_in_month", c.WeeksInMonth, "must be one of [4 4 5], [4 5 4] or [5 4 4]")
	}
	if c.DaysInWeek != 7 {
		bad("days_in_week", c.DaysInWeek, "only seven-day weeks are supported")
	}
	if c.Kind == MonthBased && c.Position != First {
		bad("first_or_last", c.Position, "month-based calendars start on the first day of a month")
	}
	return errs.Err()
}

// Options is an untyped set of calendar options, as read from a
// configuration file.
type Options map[string]any

// renamedOptions maps option names that are no longer accepted to their
// replacements.
var renamedOptions = map[string]string{
	"day":             "day_of_week",
	"month":           "month_of_year",
	"min_days":        "min_days_in_first_week",
	"weeks_in_period": "weeks_in_month",
}

// rawOptions is the decoding target for Options.
type rawOptions struct {
	Calendar           string `mapstructure:"calendar"`
	DayOfWeek          any    `mapstructure:"day_of_week"`
	MonthOfYear        int    `mapstructure:"month_of_year"`
	BeginsOrEnds       string `mapstructure:"begins_or_ends"`
	FirstOrLast        string `mapstructure:"first_or_last"`
	Year               string `mapstructure:"year"`
	MinDaysInFirstWeek int    `mapstructure:"min_days_in_first_week"`
	WeeksInMonth       []int  `mapstructure:"weeks_in_month"`
	DaysInWeek         int    `mapstructure:"days_in_week"`
	Locale             string `mapstructure:"locale"`
	Backend            string `mapstructure:"backend"`
}

var knownOptions = func() map[string]bool {
	m := make(map[string]bool)
	for _, f := range []string{
		"calendar", "day_of_week", "month_of_year", "begins_or_ends",
		"first_or_last", "year", "min_days_in_first_week", "weeks_in_month",
		"days_in_week", "locale", "backend",
	} {
		m[f] = true
	}
	return m
}()

// NewConfig converts opts into a validated Config. Unknown and renamed
// options are errors, as are values of the wrong type or out of range. All
// problems are reported together.
func NewConfig(opts Options) (Config, error) {
	errs := &errors.M{}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if to, ok := renamedOptions[k]; ok {
			errs.Append(&ConfigError{Option: k, Reason: fmt.Sprintf("renamed to %q", to)})
		} else if !knownOptions[k] {
			errs.Append(&ConfigError{Option: k, Reason: "unknown option"})
		}
	}
	if err := errs.Err(); err != nil {
		return Config{}, err
	}

	var raw rawOptions
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(map[string]any(opts)); err != nil {
		return Config{}, &ConfigError{Option: "options", Reason: err.Error()}
	}

	var c Config
	if raw.Calendar != "" {
		if c.Kind, err = parseOption[Kind]("calendar", kindNames[:], raw.Calendar); err != nil {
			errs.Append(err)
		}
	}
	if raw.DayOfWeek != nil {
		if c.DayOfWeek, err = parseWeekday(raw.DayOfWeek); err != nil {
			errs.Append(err)
		}
	} else if c.Kind == WeekBased {
		c.DayOfWeek = kday.Monday
	}
	c.MonthOfYear = raw.MonthOfYear
	if raw.BeginsOrEnds != "" {
		if c.Edge, err = parseOption[Edge]("begins_or_ends", edgeNames[:], raw.BeginsOrEnds); err != nil {
			errs.Append(err)
		}
	}
	if raw.FirstOrLast != "" {
		if c.Position, err = parseOption[Position]("first_or_last", positionNames[:], raw.FirstOrLast); err != nil {
			errs.Append(err)
		}
	}
	if raw.Year != "" {
		if c.Year, err = parseOption[Attribution]("year", attributionNames[:], raw.Year); err != nil {
			errs.Append(err)
		}
	}
	c.MinDaysInFirstWeek = raw.MinDaysInFirstWeek
	switch len(raw.WeeksInMonth) {
	case 0:
	case 3:
		copy(c.WeeksInMonth[:], raw.WeeksInMonth)
	default:
		errs.Append(&ConfigError{Option: "weeks_in_month", Value: raw.WeeksInMonth, Reason: "must have three elements"})
	}
	c.DaysInWeek = raw.DaysInWeek
	c.Locale = raw.Locale
	c.Backend = raw.Backend

	if err := errs.Err(); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func parseOption[E ~int](opt string, names []string, s string) (E, error) {
	e, ok := parseEnum[E](names, s)
	if !ok {
		return 0, &ConfigError{Option: opt, Value: s, Reason: "must be one of " + strings.Join(names, ", ")}
	}
	return e, nil
}

// parseWeekday accepts an ISO weekday number, an English weekday name or
// "first".
func parseWeekday(v any) (int, error) {
	switch v := v.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if s == "first" {
			return FirstDayOfYear, nil
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		if i := slices.Index(weekdayNames[:], s); i > 0 {
			return i, nil
		}
	}
	return 0, &ConfigError{Option: "day_of_week", Value: v, Reason: "must be a weekday number, a weekday name or \"first\""}
}

// Options returns c as options accepted by NewConfig.
func (c Config) Options() Options {
	c = c.withDefaults()
	o := Options{
		"calendar":               c.Kind.String(),
		"month_of_year":          c.MonthOfYear,
		"begins_or_ends":         c.Edge.String(),
		"first_or_last":          c.Position.String(),
		"year":                   c.Year.String(),
		"min_days_in_first_week": c.MinDaysInFirstWeek,
		"weeks_in_month":         c.WeeksInMonth[:],
		"days_in_week":           c.DaysInWeek,
	}
	if c.DayOfWeek == FirstDayOfYear {
		o["day_of_week"] = "first"
	} else {
		o["day_of_week"] = c.DayOfWeek
	}
	if c.Locale != "" {
		o["locale"] = c.Locale
	}
	if c.Backend != "" {
		o["backend"] = c.Backend
	}
	return o
}
