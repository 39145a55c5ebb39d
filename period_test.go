// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"errors"
	"fmt"
	"testing"

	"gonih.org/calendar/interval"
	"gonih.org/calendar/kday"
	"gonih.org/calendar/ordinal"
)

// weekCalendars returns week-based calendars anchored on every weekday.
func weekCalendars() []*Calendar {
	var cals []*Calendar
	for k := kday.Monday; k <= kday.Sunday; k++ {
		cals = append(cals,
			MustNew(fmt.Sprintf("ends_last_%d_july", k), Config{Kind: WeekBased, DayOfWeek: k, MonthOfYear: 7, Edge: Ends, Position: Last}),
			MustNew(fmt.Sprintf("begins_nearest_%d_feb", k), Config{Kind: WeekBased, DayOfWeek: k, MonthOfYear: 2, Position: Nearest, WeeksInMonth: [3]int{5, 4, 4}}),
			MustNew(fmt.Sprintf("begins_first_%d_oct", k), Config{Kind: WeekBased, DayOfWeek: k, MonthOfYear: 10, MinDaysInFirstWeek: 4}),
		)
	}
	return cals
}

func firstRange(t *testing.T, c *Calendar, u Unit, year int) Range {
	t.Helper()
	var (
		r   Range
		err error
	)
	switch u {
	case Years:
		r = c.Year(year)
	case Quarters:
		r, err = c.Quarter(year, 1)
	case Months:
		r, err = c.Month(year, 1)
	case Weeks:
		r, err = c.Week(year, 1)
	case Days:
		r, err = c.Day(year, 1)
	}
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// TestContiguity steps through 5000 consecutive ranges in both directions
// and checks that no day is skipped or repeated.
func TestContiguity(t *testing.T) {
	for _, c := range append(weekCalendars(), Gregorian, USFiscal) {
		for _, u := range []Unit{Quarters, Months, Weeks} {
			t.Run(c.Name()+"/"+u.String(), func(t *testing.T) {
				t.Parallel()
				r := firstRange(t, c, u, 1990)
				for i := 0; i < 5000; i++ {
					n, err := r.Next(u, false)
					if err != nil {
						t.Fatalf("%v.Next(%v) = %v", r, u, err)
					}
					if n.first != r.last+1 {
						t.Fatalf("%v.Next(%v) = %v starting %v, want %v", r, u, n, n.first, r.last+1)
					}
					if got := interval.Compare(r, n); got != interval.Meets {
						t.Fatalf("Compare(%v, %v) = %v, want %v", r, n, got, interval.Meets)
					}
					r = n
				}
				for i := 0; i < 5000; i++ {
					p, err := r.Previous(u, false)
					if err != nil {
						t.Fatalf("%v.Previous(%v) = %v", r, u, err)
					}
					if p.last != r.first-1 {
						t.Fatalf("%v.Previous(%v) = %v ending %v, want %v", r, u, p, p.last, r.first-1)
					}
					r = p
				}
				if want := firstRange(t, c, u, 1990); r != want {
					t.Fatalf("stepping back returned to %v, want %v", r, want)
				}
			})
		}
	}
}

// TestRangesPartitionYear checks that quarters, months and weeks of a
// week-based year cover it exactly.
func TestRangesPartitionYear(t *testing.T) {
	for _, c := range append(weekCalendars(), NRF, ISOWeek) {
		for y := 2000; y < 2030; y++ {
			year := c.Year(y)
			q4, _ := c.Quarter(y, 4)
			m12, _ := c.Month(y, 12)
			w, _ := c.Week(y, c.WeeksInYear(y))
			q1, _ := c.Quarter(y, 1)
			if q1.first != year.first || q4.last != year.last || m12.last != year.last || w.last != year.last {
				t.Fatalf("%v: ranges of %d do not end with the year %v: %v %v %v", c, y, year, q4, m12, w)
			}
			if want := 13 * 7; q1.Len() != want {
				t.Errorf("%v: %v has %d days, want %d", c, q1, q1.Len(), want)
			}
			if want := 13*7 + 7*btoi(c.LongYear(y)); q4.Len() != want {
				t.Errorf("%v: %v has %d days, want %d", c, q4, q4.Len(), want)
			}
		}
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestNextPrevious(t *testing.T) {
	type step struct {
		from   func() (Range, error)
		unit   Unit
		back   bool
		coerce bool
		want   string // "" for errors
	}
	wk := func(c *Calendar, y, w int) func() (Range, error) { return func() (Range, error) { return c.Week(y, w) } }
	mo := func(c *Calendar, y, m int) func() (Range, error) { return func() (Range, error) { return c.Month(y, m) } }
	dy := func(c *Calendar, y, n int) func() (Range, error) { return func() (Range, error) { return c.Day(y, n) } }
	qu := func(c *Calendar, y, q int) func() (Range, error) { return func() (Range, error) { return c.Quarter(y, q) } }
	tcs := []step{
		{wk(ISOWeek, 2020, 53), Years, false, false, ""},
		{wk(ISOWeek, 2020, 53), Years, false, true, "2021-W52"},
		{wk(ISOWeek, 2020, 53), Weeks, false, false, "2021-W01"},
		{wk(ISOWeek, 2021, 1), Weeks, true, false, "2020-W53"},
		{wk(ISOWeek, 2021, 10), Years, true, false, "2020-W10"},
		{dy(Gregorian, 2024, 366), Years, false, false, ""},
		{dy(Gregorian, 2024, 366), Years, false, true, "2025-365"},
		{dy(Gregorian, 2024, 366), Days, false, false, "2025-001"},
		{dy(Gregorian, 2025, 1), Days, true, false, "2024-366"},
		{mo(Gregorian, 2024, 11), Quarters, false, false, "2025-M02"},
		{mo(Gregorian, 2024, 2), Quarters, true, false, "2023-M11"},
		{mo(Gregorian, 2024, 12), Months, false, false, "2025-M01"},
		{mo(Gregorian, 2024, 1), Months, true, false, "2023-M12"},
		{mo(Gregorian, 2024, 1), Weeks, false, false, ""},
		{qu(Gregorian, 2024, 4), Quarters, false, false, "2025-Q1"},
		{qu(Gregorian, 2024, 1), Years, true, false, "2023-Q1"},
		{qu(Gregorian, 2024, 1), Days, false, false, ""},
	}
	for _, tc := range tcs {
		r, err := tc.from()
		if err != nil {
			t.Fatal(err)
		}
		var got Range
		if tc.back {
			got, err = r.Previous(tc.unit, tc.coerce)
		} else {
			got, err = r.Next(tc.unit, tc.coerce)
		}
		if tc.want == "" {
			if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("%v step %v (back %v, coerce %v) = %v, %v, want ErrInvalidDate", r, tc.unit, tc.back, tc.coerce, got, err)
			}
			continue
		}
		if err != nil || got.String() != tc.want {
			t.Errorf("%v step %v (back %v, coerce %v) = %v, %v, want %v", r, tc.unit, tc.back, tc.coerce, got, err, tc.want)
		}
	}
}

func TestRangeAccessors(t *testing.T) {
	q, err := USFiscal.Quarter(2024, 1)
	if err != nil {
		t.Fatal(err)
	}
	if q.First().Ordinal() != gd(2023, 10, 1) || q.Last().Ordinal() != gd(2023, 12, 31) || q.Len() != 92 {
		t.Errorf("USFiscal Q1 2024 = %v…%v (%d days)", q.First(), q.Last(), q.Len())
	}
	if q.Unit() != Quarters || q.Year() != 2024 || q.Index() != 1 || q.Calendar() != USFiscal {
		t.Errorf("USFiscal Q1 2024 accessors: %v %d %d %v", q.Unit(), q.Year(), q.Index(), q.Calendar())
	}
	if !q.Contains(USFiscal.FromOrdinal(gd(2023, 11, 11))) || q.Contains(USFiscal.FromOrdinal(gd(2024, 1, 1))) {
		t.Errorf("Contains misreports the bounds of %v", q)
	}
	n := 0
	for d := range q.Dates() {
		if d.Ordinal() != gd(2023, 10, 1)+ordinal.Day(n) {
			t.Fatalf("Dates() yielded %v at position %d", d, n)
		}
		n++
		if n == 10 {
			break
		}
	}
	if n != 10 {
		t.Errorf("Dates() stopped after %d dates", n)
	}

	m, _ := NRF.Month(2023, 12)
	if m.Len() != 35 || m.Last().Ordinal() != gd(2024, 2, 3) {
		t.Errorf("NRF 2023 month 12 = %v…%v", m.First(), m.Last())
	}
	if _, err := Gregorian.Quarter(2024, 5); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Quarter(2024, 5) = %v, want ErrInvalidDate", err)
	}
	if _, err := Gregorian.Day(2023, 366); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Day(2023, 366) = %v, want ErrInvalidDate", err)
	}
	if _, err := ISOWeek.Week(2019, 53); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Week(2019, 53) = %v, want ErrInvalidDate", err)
	}
}

func TestRangeOf(t *testing.T) {
	d := ISOWeek.FromOrdinal(gd(2021, 1, 3))
	for _, tc := range []struct {
		c    *Calendar
		u    Unit
		want string
	}{
		{ISOWeek, Years, "2020"},
		{ISOWeek, Quarters, "2020-Q4"},
		{ISOWeek, Months, "2020-M12"},
		{ISOWeek, Weeks, "2020-W53"},
		{ISOWeek, Days, "2020-371"},
		{Gregorian, Weeks, "2021-W01"},
		{Gregorian, Months, "2021-M01"},
		{USFiscal, Quarters, "2021-Q2"},
	} {
		r, err := tc.c.RangeOf(tc.u, d)
		if err != nil || r.String() != tc.want {
			t.Errorf("%v.RangeOf(%v, %v) = %v, %v, want %v", tc.c, tc.u, d, r, err, tc.want)
		}
		if !r.Contains(d) {
			t.Errorf("%v.RangeOf(%v, %v) = %v does not contain it", tc.c, tc.u, d, r)
		}
	}
}

func TestIntervalOfRanges(t *testing.T) {
	d1 := greg(2019, 1, 1)
	d2 := greg(2019, 1, 2)
	if got := interval.Compare(d1, d2); got != interval.Meets {
		t.Errorf("Compare(%v, %v) = %v, want %v", d1, d2, got, interval.Meets)
	}
	if got := interval.Compare(d2, d1); got != interval.MetBy {
		t.Errorf("Compare(%v, %v) = %v, want %v", d2, d1, got, interval.MetBy)
	}
	y := Gregorian.Year(2019)
	q, _ := Gregorian.Quarter(2019, 1)
	m, _ := Gregorian.Month(2019, 2)
	if got := interval.Compare(q, y); got != interval.Starts {
		t.Errorf("Compare(%v, %v) = %v, want %v", q, y, got, interval.Starts)
	}
	if got := interval.Compare(y, m); got != interval.Contains {
		t.Errorf("Compare(%v, %v) = %v, want %v", y, m, got, interval.Contains)
	}
	fy := USFiscal.Year(2019)
	if got := interval.Compare(y, fy); got != interval.OverlappedBy {
		t.Errorf("Compare(%v, %v) = %v, want %v", y, fy, got, interval.OverlappedBy)
	}
}

func TestParseUnit(t *testing.T) {
	for u := Years; u <= Days; u++ {
		for _, s := range []string{u.String(), u.String() + "s"} {
			if got, err := ParseUnit(s); err != nil || got != u {
				t.Errorf("ParseUnit(%q) = %v, %v, want %v", s, got, err, u)
			}
		}
	}
	if _, err := ParseUnit("fortnight"); err == nil {
		t.Errorf("ParseUnit(%q) succeeded", "fortnight")
	}
}
