// Copyright 2009 The Go Authors.
// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ordinal contains the day numbering every calendar in this module is
// converted through.
//
// A Day counts days in the proleptic Gregorian calendar, such that Day 1 is
// Monday, January 1st of year 1 (the "Rata Die" numbering). Day 0 is thus
// December 31st of year 0, and earlier dates are negative. Because Day 1 is a
// Monday, d mod 7 yields the day of the week with Sunday as zero.
//
// Days can be compared, added and subtracted using Go's arithmetic operators.
// The difference of two Days is the number of days between them.
package ordinal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Computations are derived from the standard library time package. See this
// comment for explanations:
// https://cs.opensource.google/go/go/+/refs/tags/go1.20.6:src/time/time.go;l=353

const (
	// The unsigned zero year for internal calculations.
	// Must be 1 mod 400, and dates before it will not compute correctly.
	absoluteZeroYear = -292277022399

	// The year containing Day 1.
	internalYear = 1

	// Offsets to convert between internal or absolute days. internalToAbsolute
	// is a multiple of 7, so absolute days keep the weekday of Day 1.
	absoluteToInternal = (absoluteZeroYear - internalYear) * 365.2425
	internalToAbsolute = -absoluteToInternal

	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461
)

// ErrInvalidDate is returned when a year, month and day do not name a date of
// the Gregorian calendar.
var ErrInvalidDate = errors.New("invalid date")

// daysBefore[m] counts the number of days in a non-leap year before month m
// begins. There is an entry for m=12, counting the number of days before
// January of next year (365).
var daysBefore = [...]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

// IsLeapYear reports whether year has 366 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in the given month of year. It
// returns 0 if month is not in [1,12].
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysBefore[month] - daysBefore[month-1]
}

// ValidGregorian reports whether year, month and day name a date, without
// normalization.
func ValidGregorian(year, month, day int) bool {
	return day >= 1 && day <= DaysInMonth(year, month)
}

// absDate computes the year, day of year and when full=true, the month and day
// in which an absolute date occurs.
func absDate(abs uint64, full bool) (year, month, day, yday int) {
	d := abs

	// Account for 400 year cycles.
	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	// Cut off 100-year cycles. The last cycle has one extra leap year, so on
	// its last day n would be 4 instead of 3.
	n = d / daysPer100Years
	n -= n >> 2
	y += 100 * n
	d -= daysPer100Years * n

	// Cut off 4-year cycles.
	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	// Cut off years within a 4-year cycle. The last year is a leap year.
	n = d / 365
	n -= n >> 2
	y += n
	d -= 365 * n

	year = int(int64(y) + absoluteZeroYear)
	yday = int(d)

	if !full {
		return
	}

	day = yday
	if IsLeapYear(year) {
		switch {
		case day > 31+29-1:
			// After leap day; pretend it wasn't there.
			day--
		case day == 31+29-1:
			return year, 2, 29, yday
		}
	}

	// Estimate month on assumption that every month has 31 days.
	// The estimate may be too low by at most one month, so adjust.
	month = day / 31
	end := daysBefore[month+1]
	var begin int
	if day >= end {
		month++
		begin = end
	} else {
		begin = daysBefore[month]
	}

	month++ // because January is 1
	day = day - begin + 1
	return year, month, day, yday
}

// daysSinceEpoch returns the number of days from the absolute epoch to the
// start of year.
func daysSinceEpoch(year int) int {
	y := year - absoluteZeroYear

	n := y / 400
	y -= 400 * n
	d := daysPer400Years * n

	n = y / 100
	y -= 100 * n
	d += daysPer100Years * n

	n = y / 4
	y -= 4 * n
	d += daysPer4Years * n

	d += 365 * y
	return d
}

// norm returns nhi, nlo such that
//
//	hi * base + lo == nhi * base + nlo
//	0 <= nlo < base
func norm(hi, lo, base int) (nhi, nlo int) {
	if lo < 0 {
		n := (-lo-1)/base + 1
		hi -= n
		lo += n * base
	}
	if lo >= base {
		n := lo / base
		hi += n
		lo -= n * base
	}
	return hi, lo
}

// A Day is a date, as the number of days since December 31st of year 0.
type Day int

// FromGregorian returns the Day of the given Gregorian date.
//
// The arguments may be outside their usual ranges and will be normalized
// during the conversion, just as for [time.Date]. For example, October 32
// converts to November 1.
func FromGregorian(year, month, day int) Day {
	m := month - 1
	year, m = norm(year, m, 12)
	month = m + 1

	d := daysSinceEpoch(year)
	d += daysBefore[month-1]
	if IsLeapYear(year) && month >= 3 {
		d++
	}
	d += day - 1

	return Day(d - internalToAbsolute + 1)
}

// Gregorian is like FromGregorian, but returns an error wrapping
// ErrInvalidDate instead of normalizing its arguments.
func Gregorian(year, month, day int) (Day, error) {
	if !ValidGregorian(year, month, day) {
		return 0, fmt.Errorf("%w: %04d-%02d-%02d is not a Gregorian date", ErrInvalidDate, year, month, day)
	}
	return FromGregorian(year, month, day), nil
}

// FromTime returns the Day of the calendar date of t in its location.
func FromTime(t time.Time) Day {
	y, m, d := t.Date()
	return FromGregorian(y, int(m), d)
}

// Today returns the current date in the given location.
func Today(loc *time.Location) Day {
	return FromTime(time.Now().In(loc))
}

// abs returns the absolute date of d.
func (d Day) abs() uint64 {
	return uint64(int(d) - 1 + internalToAbsolute)
}

// Gregorian returns the year, month and day of d.
func (d Day) Gregorian() (year, month, day int) {
	year, month, day, _ = absDate(d.abs(), true)
	return year, month, day
}

// Year returns the Gregorian year in which d occurs.
func (d Day) Year() int {
	year, _, _, _ := absDate(d.abs(), false)
	return year
}

// YearDay returns the day of the Gregorian year of d, in the range [1,366].
func (d Day) YearDay() int {
	_, _, _, yday := absDate(d.abs(), false)
	return yday + 1
}

// Weekday returns the ISO 8601 day of the week of d, that is 1 for Monday
// through 7 for Sunday.
func (d Day) Weekday() int {
	return int(d.abs()%7) + 1
}

// Time returns the given moment in time on d, in the given location.
func (d Day) Time(hour, min, sec, nsec int, loc *time.Location) time.Time {
	return time.Date(1, 1, int(d), hour, min, sec, nsec, loc)
}

// AppendISO appends d in ISO 8601 calendar date format (YYYY-MM-DD) to b.
// Years outside [0,9999] are written with a sign or more digits.
func (d Day) AppendISO(b []byte) []byte {
	year, month, day := d.Gregorian()
	if year < 0 {
		b = append(b, '-')
		year = -year
	}
	for p := 1000; p > 1 && year < p; p /= 10 {
		b = append(b, '0')
	}
	b = strconv.AppendInt(b, int64(year), 10)
	b = append(b, '-', byte('0'+month/10), byte('0'+month%10), '-', byte('0'+day/10), byte('0'+day%10))
	return b
}

// String returns d formatted as ISO 8601.
func (d Day) String() string {
	var buf [16]byte
	return string(d.AppendISO(buf[:0]))
}

// GoString implements fmt.GoStringer and formats d to be printed in Go source code.
func (d Day) GoString() string {
	year, month, day := d.Gregorian()
	return fmt.Sprintf("ordinal.FromGregorian(%d, %d, %d)", year, month, day)
}

// ParseISO parses an ISO 8601 calendar date (YYYY-MM-DD, with an optional
// leading sign on the year).
func ParseISO(s string) (Day, error) {
	v := s
	neg := false
	if len(v) > 0 && (v[0] == '-' || v[0] == '+') {
		neg = v[0] == '-'
		v = v[1:]
	}
	i := 0
	for i < len(v) && '0' <= v[i] && v[i] <= '9' {
		i++
	}
	if i < 4 || len(v) != i+6 || v[i] != '-' || v[i+3] != '-' {
		return 0, fmt.Errorf("%w: cannot parse %q as YYYY-MM-DD", ErrInvalidDate, s)
	}
	year, err := strconv.Atoi(v[:i])
	if err != nil {
		return 0, fmt.Errorf("%w: year of %q: %v", ErrInvalidDate, s, err)
	}
	month, err1 := strconv.Atoi(v[i+1 : i+3])
	day, err2 := strconv.Atoi(v[i+4:])
	if err1 != nil || err2 != nil {
		return 0, fmt.Errorf("%w: cannot parse %q as YYYY-MM-DD", ErrInvalidDate, s)
	}
	if neg {
		year = -year
	}
	return Gregorian(year, month, day)
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The day is
// represented as a [binary.Varint].
func (d Day) MarshalBinary() ([]byte, error) {
	b := make([]byte, binary.MaxVarintLen64)
	return b[:binary.PutVarint(b, int64(d))], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (d *Day) UnmarshalBinary(b []byte) error {
	v, i := binary.Varint(b)
	switch {
	case i == 0:
		return errors.New("encoded day truncated")
	case i < 0 || int64(int(v)) != v:
		return errors.New("encoded day overflows int")
	case i != len(b):
		return errors.New("extra data after day")
	}
	*d = Day(v)
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface. The day is
// formatted in ISO 8601 format.
func (d Day) MarshalText() ([]byte, error) {
	return d.AppendISO(nil), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (d *Day) UnmarshalText(b []byte) error {
	v, err := ParseISO(string(b))
	if err == nil {
		*d = v
	}
	return err
}
