// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"fmt"
	"strconv"
	"time"
)

const (
	usPerSecond = 1_000_000
	usPerMinute = 60 * usPerSecond
	usPerHour   = 60 * usPerMinute
	usPerDay    = 24 * usPerHour
)

// Duration is the calendar difference between two dates or date-times.
// Months counts the periods of the calendar, so for week-based calendars it
// is a number of weeks.
type Duration struct {
	Years        int
	Months       int
	Days         int
	Hours        int
	Minutes      int
	Seconds      int
	Microseconds int
}

// IsZero reports whether d is empty.
func (d Duration) IsZero() bool {
	return d == Duration{}
}

// String formats d in ISO 8601 duration format, such as "P1Y2M3DT4H5M6S".
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	b := []byte{'P'}
	appendPart := func(n int, unit byte) {
		if n != 0 {
			b = strconv.AppendInt(b, int64(n), 10)
			b = append(b, unit)
		}
	}
	appendPart(d.Years, 'Y')
	appendPart(d.Months, 'M')
	appendPart(d.Days, 'D')
	if d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0 && d.Microseconds == 0 {
		return string(b)
	}
	b = append(b, 'T')
	appendPart(d.Hours, 'H')
	appendPart(d.Minutes, 'M')
	if d.Seconds != 0 || d.Microseconds != 0 {
		b = strconv.AppendInt(b, int64(d.Seconds), 10)
		if d.Microseconds != 0 {
			b = append(b, fmt.Sprintf(".%06d", d.Microseconds)...)
		}
		b = append(b, 'S')
	}
	return string(b)
}

// DateTime is a date with a time of day and a fixed UTC offset.
type DateTime struct {
	Date
	Hour, Minute, Second, Microsecond int
	// UTCOffset is the offset east of UTC, in seconds.
	UTCOffset int
}

// NewDateTime returns a DateTime, checking the time of day.
func NewDateTime(d Date, hour, minute, second, microsecond, utcOffset int) (DateTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 || microsecond < 0 || microsecond >= usPerSecond {
		return DateTime{}, fmt.Errorf("%w: time %02d:%02d:%02d.%06d out of range", ErrInvalidDate, hour, minute, second, microsecond)
	}
	return DateTime{Date: d, Hour: hour, Minute: minute, Second: second, Microsecond: microsecond, UTCOffset: utcOffset}, nil
}

// DateTimeOf returns the date and time of day of t in c, keeping t's offset.
func (c *Calendar) DateTimeOf(t time.Time) DateTime {
	_, off := t.Zone()
	return DateTime{
		Date:        c.DateOf(t),
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		Microsecond: t.Nanosecond() / 1000,
		UTCOffset:   off,
	}
}

// timeOfDay returns the time of day of dt in microseconds.
func (dt DateTime) timeOfDay() int {
	return dt.Hour*usPerHour + dt.Minute*usPerMinute + dt.Second*usPerSecond + dt.Microsecond
}

// String formats dt like "2024-03-17T10:04:05.000001+01:00".
func (dt DateTime) String() string {
	off := dt.UTCOffset
	sign := byte('+')
	if off < 0 {
		sign, off = '-', -off
	}
	return fmt.Sprintf("%sT%02d:%02d:%02d.%06d%c%02d:%02d", dt.Date, dt.Hour, dt.Minute, dt.Second, dt.Microsecond, sign, off/3600, off/60%60)
}

// Between returns the duration from one date to a later one of the same
// calendar.
func Between(from, to Date) (Duration, error) {
	return BetweenTimes(DateTime{Date: from}, DateTime{Date: to})
}

// BetweenTimes returns the duration from one date-time to a later one of the
// same calendar and UTC offset.
func BetweenTimes(from, to DateTime) (Duration, error) {
	if from.cal == nil || to.cal == nil || !from.cal.Compatible(to.cal) {
		return Duration{}, fmt.Errorf("%w: %v and %v", ErrIncompatibleCalendar, from.cal, to.cal)
	}
	if from.UTCOffset != to.UTCOffset {
		return Duration{}, fmt.Errorf("%w: offsets %ds and %ds", ErrIncompatibleTimeZone, from.UTCOffset, to.UTCOffset)
	}
	timeDiff := to.timeOfDay() - from.timeOfDay()
	if to.o < from.o || (to.o == from.o && timeDiff < 0) {
		return Duration{}, fmt.Errorf("%w: %v is before %v", ErrInvalidDateOrder, to, from)
	}
	d := dateDiff(from.Date, to.Date)
	if timeDiff < 0 {
		d = borrowDay(from.Date, d)
		timeDiff += usPerDay
	}
	d.Hours, timeDiff = timeDiff/usPerHour, timeDiff%usPerHour
	d.Minutes, timeDiff = timeDiff/usPerMinute, timeDiff%usPerMinute
	d.Seconds, d.Microseconds = timeDiff/usPerSecond, timeDiff%usPerSecond
	return d, nil
}

// dateDiff returns the years, periods and days from one date to a later
// one. Days are borrowed from the length of the period of from.
func dateDiff(from, to Date) Duration {
	c := from.cal
	var d Duration
	adjust := 0
	if to.period < from.period || (to.period == from.period && to.day < from.day) {
		adjust = 1
	}
	d.Years = to.year - from.year - adjust

	dayAdjust := 0
	if to.day < from.day {
		dayAdjust = 1
	}
	if to.period > from.period {
		d.Months = to.period - from.period - dayAdjust
	} else {
		n := c.eng.periodsInYear(from.year)
		d.Months = n - from.period + to.period - dayAdjust
		if d.Months >= n {
			d.Months -= n
		}
	}

	if to.day >= from.day {
		d.Days = to.day - from.day
	} else {
		d.Days = c.eng.daysInPeriod(from.year, from.period) - from.day + to.day
	}
	return d
}

// borrowDay takes one day off d, the difference between from and a later
// date. An underflow of the days is taken from the periods and one of the
// periods from the years, counted with the period and year lengths dateDiff
// uses.
func borrowDay(from Date, d Duration) Duration {
	eng := from.cal.eng
	d.Days--
	if d.Days < 0 {
		d.Months--
		d.Days += eng.daysInPeriod(from.year, from.period)
	}
	if d.Months < 0 {
		d.Years--
		d.Months += eng.periodsInYear(from.year)
	}
	return d
}

// Add returns d moved by dur: first by its years, then by its periods, then
// by its days. A day that does not exist in the target period is clamped.
// The time components of dur are ignored.
func (d Date) Add(dur Duration) (Date, error) {
	r, err := d.Plus(Years, dur.Years, true)
	if err != nil {
		return Date{}, err
	}
	if r.cal.cfg.Kind == WeekBased {
		r, err = r.Plus(Weeks, dur.Months, true)
	} else {
		r, err = r.Plus(Months, dur.Months, true)
	}
	if err != nil {
		return Date{}, err
	}
	return r.AddDays(dur.Days), nil
}

// Add returns dt moved by dur. The time components are added first and
// carry into the days, which are then applied as for Date.Add.
func (dt DateTime) Add(dur Duration) (DateTime, error) {
	t := dt.timeOfDay() + dur.Hours*usPerHour + dur.Minutes*usPerMinute + dur.Seconds*usPerSecond + dur.Microseconds
	days := t / usPerDay
	t %= usPerDay
	if t < 0 {
		t += usPerDay
		days--
	}
	dur.Days += days
	d, err := dt.Date.Add(dur)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{
		Date:        d,
		Hour:        t / usPerHour,
		Minute:      t / usPerMinute % 60,
		Second:      t / usPerSecond % 60,
		Microsecond: t % usPerSecond,
		UTCOffset:   dt.UTCOffset,
	}, nil
}
