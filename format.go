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
	"time"

	"gonih.org/calendar/internal/cache"
	"gonih.org/calendar/ordinal"
)

// These are predefined layouts for use in [Date.Format] and [Parse]. Layouts
// work like those of package time, with the reference date January 2, 2006,
// except that the month components stand for the period of a date. The
// recognized components are
//
//	Year: "2006" "06"
//	Period: "01" "1"
//	Day of the period: "2" "_2" "02"
//	Day of the year: "__2" "002"
//	Gregorian month name: "Jan" "January"
//	Day of the week: "Mon" "Monday"
//
// Everything else is a literal.
const (
	ISODate     = "2006-01-02"
	ISOWeekDate = "2006-W01-2"
	OrdinalDate = "2006-002"
)

// inst is a single component of a layout string, either a literal string, or a
// formatting operator.
type inst struct {
	op  fmtOp
	lit string
}

// String returns the layout element of i.
func (i inst) String() string {
	if i.op == opLiteral {
		return i.lit
	}
	return i.op.String()
}

// fmtOp is a formatting operator.
type fmtOp int

// Operators are matched in the order of their values.
const (
	opLiteral fmtOp = iota
	opLongMonth
	opMonth
	opLongWeekDay
	opWeekDay
	opZeroYearDay
	opZeroPeriod
	opZeroDay
	opYear
	opPeriod
	opLongYear
	opDay
	opUnderLongYear
	opUnderDay
	opUnderYearDay
	opInvalid
)

var opElems = [...]string{
	opLiteral:       "<literal>",
	opLongMonth:     "January",
	opMonth:         "Jan",
	opLongWeekDay:   "Monday",
	opWeekDay:       "Mon",
	opZeroYearDay:   "002",
	opZeroPeriod:    "01",
	opZeroDay:       "02",
	opYear:          "06",
	opPeriod:        "1",
	opLongYear:      "2006",
	opDay:           "2",
	opUnderLongYear: "_2006",
	opUnderDay:      "_2",
	opUnderYearDay:  "__2",
}

// String returns the layout element of op.
func (op fmtOp) String() string {
	if op < opLiteral || op >= opInvalid {
		panic(fmt.Sprintf("invalid fmtOp %d", int(op)))
	}
	return opElems[op]
}

// memo caches compiled layouts.
var memo cache.Cache[string, []inst]

// parseLayout compiles layout into the instructions Format and Parse run.
func parseLayout(layout string) []inst {
	var prog []inst
	lit := 0
	for i := 0; i < len(layout); {
		op := opAt(layout[i:])
		if op == opLiteral {
			i++
			continue
		}
		if lit < i {
			prog = append(prog, inst{lit: layout[lit:i]})
		}
		prog = append(prog, inst{op: op})
		i += len(opElems[op])
		lit = i
	}
	if lit < len(layout) {
		prog = append(prog, inst{lit: layout[lit:]})
	}
	return prog
}

// opAt returns the operator s starts with, or opLiteral. The abbreviated
// names must not run into a lower-case letter, so "Month" is a literal.
func opAt(s string) fmtOp {
	for op := opLongMonth; op < opInvalid; op++ {
		rest, ok := strings.CutPrefix(s, opElems[op])
		if !ok {
			continue
		}
		if (op == opMonth || op == opWeekDay) && rest != "" && 'a' <= rest[0] && rest[0] <= 'z' {
			continue
		}
		return op
	}
	return opLiteral
}

// Format returns a textual representation of d formatted according to
// layout.
func (d Date) Format(layout string) string {
	return string(d.AppendFormat(make([]byte, 0, len(layout)+10), layout))
}

// appendInt appends v, padded with pad to at least width bytes.
func appendInt(b []byte, v, width int, pad byte) []byte {
	start := len(b)
	b = strconv.AppendInt(b, int64(v), 10)
	for len(b)-start < width {
		b = slices.Insert(b, start, pad)
	}
	return b
}

func monthName(m int) string { return time.Month(m).String() }

// weekdayName takes the weekday in ISO numbering, Sunday may be 0 or 7.
func weekdayName(k int) string { return time.Weekday(k % 7).String() }

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func (d Date) AppendFormat(b []byte, layout string) []byte {
	for _, i := range memo.Get(layout, parseLayout) {
		switch i.op {
		case opLiteral:
			b = append(b, i.lit...)
		case opYear:
			b = appendInt(b, abs(d.year%100), 2, '0')
		case opUnderLongYear, opLongYear:
			if i.op == opUnderLongYear {
				b = append(b, '_')
			}
			if d.year < 0 {
				b = append(b, '-')
			}
			b = appendInt(b, abs(d.year), 4, '0')
		case opMonth, opLongMonth:
			_, m, _ := d.o.Gregorian()
			name := monthName(m)
			if i.op == opMonth {
				name = name[:3]
			}
			b = append(b, name...)
		case opWeekDay, opLongWeekDay:
			name := weekdayName(d.Weekday())
			if i.op == opWeekDay {
				name = name[:3]
			}
			b = append(b, name...)
		case opPeriod:
			b = appendInt(b, d.period, 0, 0)
		case opZeroPeriod:
			b = appendInt(b, d.period, 2, '0')
		case opDay:
			b = appendInt(b, d.day, 0, 0)
		case opUnderDay:
			b = appendInt(b, d.day, 2, ' ')
		case opZeroDay:
			b = appendInt(b, d.day, 2, '0')
		case opUnderYearDay:
			b = appendInt(b, d.DayOfYear(), 3, ' ')
		case opZeroYearDay:
			b = appendInt(b, d.DayOfYear(), 3, '0')
		default:
			panic(fmt.Sprintf("invalid instruction %v", i))
		}
	}
	return b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Parse parses a date of cal formatted according to layout.
//
// Elements omitted from the layout are assumed to be one. Years must be in
// the range 0000…9999. Gregorian month names select the period mapped to
// that month and are only accepted by month-based calendars. If a layout
// sets the period more than once, the last one wins. The day of the
// week is checked for syntax but is otherwise ignored.
//
// For layouts specifying the two-digit year 06, a value NN >= 69 will be
// treated as 19NN and a value NN < 69 will be treated as 20NN.
func Parse(cal *Calendar, layout, value string) (Date, error) {
	sc := scanner{s: value}
	year, period, day, yday := 0, -1, -1, -1
	for _, i := range memo.Get(layout, parseLayout) {
		elem := sc.s
		ok := true
		switch i.op {
		case opLiteral:
			ok = sc.literal(i.lit)
		case opYear:
			if year, ok = sc.atoi(2); year >= 69 {
				year += 1900
			} else {
				year += 2000
			}
		case opUnderLongYear, opLongYear:
			if i.op == opUnderLongYear && !sc.literal("_") {
				ok = false
				break
			}
			if ok = isDigit(sc.s, 0); ok {
				year, ok = sc.atoi(4)
			}
		case opMonth, opLongMonth:
			var m int
			if m, ok = sc.name(12, i.op == opMonth, monthName); ok && cal.cfg.Kind != MonthBased {
				return Date{}, parseError(layout, value, "month names need a month-based calendar", i, elem)
			}
			period = (m-cal.cfg.beginMonth()+12)%12 + 1
		case opWeekDay, opLongWeekDay:
			_, ok = sc.name(7, i.op == opWeekDay, weekdayName)
		case opPeriod, opZeroPeriod:
			period, ok = sc.digits(2, i.op == opZeroPeriod)
		case opUnderDay, opDay, opZeroDay:
			if i.op == opUnderDay {
				sc.skip(' ', 1)
			}
			day, ok = sc.digits(2, i.op == opZeroDay)
		case opUnderYearDay, opZeroYearDay:
			if i.op == opUnderYearDay {
				sc.skip(' ', 2)
			}
			yday, ok = sc.digits(3, i.op == opZeroYearDay)
		default:
			panic(fmt.Sprintf("invalid instruction %v", i))
		}
		if !ok {
			return Date{}, parseError(layout, value, "", i, elem)
		}
	}
	if sc.s != "" {
		return Date{}, parseError(layout, value, "extra text: "+strconv.Quote(sc.s), inst{}, "")
	}

	if yday >= 0 {
		if yday < 1 || yday > cal.DaysInYear(year) {
			return Date{}, parseError(layout, value, "day-of-year out of range", inst{}, "")
		}
		d := cal.FromOrdinal(cal.eng.firstDay(year) + ordinal.Day(yday-1))
		if period >= 0 && period != d.period {
			return Date{}, parseError(layout, value, "day-of-year does not match period", inst{}, "")
		}
		if day >= 0 && day != d.day {
			return Date{}, parseError(layout, value, "day-of-year does not match day", inst{}, "")
		}
		return d, nil
	}
	period, day = max(period, 1), max(day, 1)
	if !cal.ValidDate(year, period, day) {
		return Date{}, parseError(layout, value, "date out of range", inst{}, "")
	}
	return cal.Date(year, period, day)
}

// parseError copies its strings, so that the value passed to Parse does not
// escape and parsing without errors does not allocate.
func parseError(layout, value, msg string, i inst, elem string) error {
	e := &ParseError{Layout: layout, Value: strings.Clone(value), Message: msg}
	if msg == "" {
		e.LayoutElem = strings.Clone(i.String())
		e.ValueElem = strings.Clone(elem)
	}
	return e
}

func isDigit(s string, i int) bool {
	return i < len(s) && '0' <= s[i] && s[i] <= '9'
}

// scanner consumes the value passed to Parse.
type scanner struct {
	s string
}

// skip drops up to n leading copies of c.
func (sc *scanner) skip(c byte, n int) {
	for ; n > 0 && sc.s != "" && sc.s[0] == c; n-- {
		sc.s = sc.s[1:]
	}
}

// literal consumes lit. A run of spaces in lit matches any run of spaces.
func (sc *scanner) literal(lit string) bool {
	for lit != "" {
		if lit[0] != ' ' {
			if sc.s == "" || sc.s[0] != lit[0] {
				return false
			}
			lit, sc.s = lit[1:], sc.s[1:]
			continue
		}
		if sc.s != "" && sc.s[0] != ' ' {
			return false
		}
		lit, sc.s = strings.TrimLeft(lit, " "), strings.TrimLeft(sc.s, " ")
	}
	return true
}

// atoi consumes the next n bytes as an integer.
func (sc *scanner) atoi(n int) (int, bool) {
	if len(sc.s) < n {
		return 0, false
	}
	v, err := strconv.Atoi(sc.s[:n])
	if err != nil {
		return 0, false
	}
	sc.s = sc.s[n:]
	return v, true
}

// digits consumes a decimal number of up to n digits, or exactly n if
// fixed.
func (sc *scanner) digits(n int, fixed bool) (int, bool) {
	v, i := 0, 0
	for ; i < n && isDigit(sc.s, i); i++ {
		v = 10*v + int(sc.s[i]-'0')
	}
	if i == 0 || (fixed && i < n) {
		return 0, false
	}
	sc.s = sc.s[i:]
	return v, true
}

// name consumes the first of name(1)…name(n), or of their three-letter
// abbreviations, that the input starts with, ignoring ASCII case. It
// returns the index of the name.
func (sc *scanner) name(n int, short bool, name func(int) string) (int, bool) {
	for i := 1; i <= n; i++ {
		v := name(i)
		if short {
			v = v[:3]
		}
		if len(sc.s) >= len(v) && foldEqual(sc.s[:len(v)], v) {
			sc.s = sc.s[len(v):]
			return i, true
		}
	}
	return 0, false
}

// foldEqual reports whether the ASCII strings a and b, of equal length, are
// equal up to the case of letters.
func foldEqual(a, b string) bool {
	lower := func(c byte) byte {
		if 'A' <= c && c <= 'Z' {
			return c + 'a' - 'A'
		}
		return c
	}
	for i := range len(a) {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}
	return true
}

// ParseError describes a problem parsing a date string. It matches
// ErrInvalidDate.
type ParseError struct {
	Layout     string
	Value      string
	LayoutElem string
	ValueElem  string
	Message    string
}

// Error returns the string representation of a ParseError.
func (e *ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("parsing date %q as %q: cannot parse %q as %q", e.Value, e.Layout, e.ValueElem, e.LayoutElem)
	}
	return fmt.Sprintf("parsing date %q: %s", e.Value, e.Message)
}

// Is makes errors.Is(err, ErrInvalidDate) true for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidDate
}
