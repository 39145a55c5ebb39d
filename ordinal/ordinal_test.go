// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordinal

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"
	"time"
)

var tcs = []struct {
	year  int
	month int
	day   int
	want  Day
}{
	{1, 1, 1, 1},
	{2, 1, 1, 366},
	{3, 1, 1, 731},
	{4, 1, 1, 1096},
	{5, 1, 1, 1462},

	{1, 3, 1, 60},
	{4, 3, 1, 1156},

	{1, 1, 31, 31},
	{1, 2, 1, 32},
	{1, 1, 32, 32},
	{1, 1, 0, 0},
	{0, 12, 31, 0},
	{0, 1, 1, -365},
	{1957, 96, 104, 717409},
	{1964, 12, 104, 717409},
	{1970, 1, 1, 719163},
	{2000, 1, 1, 730120},
	{2023, 7, 14, 738715},
}

func TestFromGregorian(t *testing.T) {
	for i, tc := range tcs {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if got := FromGregorian(tc.year, tc.month, tc.day); got != tc.want {
				t.Errorf("FromGregorian(%d, %d, %d) = %d, want %d", tc.year, tc.month, tc.day, got, tc.want)
			}
			check(t, tc.year, tc.month, tc.day)
		})
	}
}

func TestGregorianValidates(t *testing.T) {
	for _, tc := range []struct {
		y, m, d int
		ok      bool
	}{
		{2024, 2, 29, true},
		{2023, 2, 29, false},
		{1900, 2, 29, false},
		{2000, 2, 29, true},
		{2024, 13, 1, false},
		{2024, 0, 1, false},
		{2024, 4, 31, false},
		{2024, 4, 0, false},
		{-9999, 1, 1, true},
	} {
		_, err := Gregorian(tc.y, tc.m, tc.d)
		if (err == nil) != tc.ok {
			t.Errorf("Gregorian(%d, %d, %d) = _, %v, want ok=%v", tc.y, tc.m, tc.d, err, tc.ok)
		}
		if err != nil && !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Gregorian(%d, %d, %d) = _, %v, want ErrInvalidDate", tc.y, tc.m, tc.d, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for y := -10000; y <= 10000; y += 7 {
		want := FromGregorian(y, 1, 1)
		for m := 1; m <= 12; m++ {
			for d := 1; d <= DaysInMonth(y, m); d++ {
				o := FromGregorian(y, m, d)
				if o != want {
					t.Fatalf("FromGregorian(%d, %d, %d) = %d, want %d", y, m, d, o, want)
				}
				gy, gm, gd := o.Gregorian()
				if gy != y || gm != m || gd != d {
					t.Fatalf("FromGregorian(%d, %d, %d).Gregorian() = %d, %d, %d", y, m, d, gy, gm, gd)
				}
				want++
			}
		}
		if next := FromGregorian(y+1, 1, 1); next != want {
			t.Fatalf("FromGregorian(%d, 1, 1) = %d, want %d", y+1, next, want)
		}
	}
}

func TestWeekday(t *testing.T) {
	// 0001-01-01 was a Monday.
	if got := Day(1).Weekday(); got != 1 {
		t.Errorf("Day(1).Weekday() = %d, want 1", got)
	}
	for d := Day(-30); d < 30; d++ {
		if got, want := d.Weekday(), (int(d)%7+7)%7; got%7 != want {
			t.Errorf("Day(%d).Weekday() = %d, want %d mod 7", d, got, want)
		}
	}
}

func TestToday(t *testing.T) {
	if got, want := Today(time.UTC), FromTime(time.Now().UTC()); got != want {
		t.Errorf("Today(time.UTC) = %v, want %v", got, want)
	}
}

func TestString(t *testing.T) {
	for _, tc := range []struct {
		d    Day
		want string
	}{
		{FromGregorian(2019, 1, 1), "2019-01-01"},
		{FromGregorian(33, 11, 5), "0033-11-05"},
		{FromGregorian(-44, 3, 15), "-0044-03-15"},
		{FromGregorian(12345, 6, 7), "12345-06-07"},
	} {
		if got := tc.d.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func addAll(f *testing.F) {
	for _, tc := range tcs {
		f.Add(tc.year, tc.month, tc.day)
	}
}

func FuzzFromGregorian(f *testing.F) {
	addAll(f)
	f.Fuzz(func(t *testing.T, year, month, day int) {
		if year < -100000 || year > 100000 || month < -1000 || month > 1000 || day < -100000 || day > 100000 {
			t.Skip()
		}
		check(t, year, month, day)
	})
}

func FuzzMarshalText(f *testing.F) {
	addAll(f)
	f.Fuzz(func(t *testing.T, year, month, day int) {
		if year < -1000000 || year > 1000000 {
			t.Skip()
		}
		want := FromGregorian(year, month%1000, day%100000)
		b, _ := want.MarshalText()
		var got Day
		if err := got.UnmarshalText(b); err != nil {
			t.Errorf("UnmarshalText(%q) = %v, want <nil>", string(b), err)
		}
		if got != want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", string(b), got, want)
		}
	})
}

func FuzzUnmarshalText(f *testing.F) {
	rnd := rand.New(rand.NewSource(0))
	for i := 0; i < 100; i++ {
		b, err := Day(rnd.Intn(1e6)).MarshalText()
		if err != nil {
			f.Fatal(err)
		}
		f.Add(b)
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		var d Day
		// we only check that UnmarshalText does not panic.
		d.UnmarshalText(b)
	})
}

func FuzzMarshalBinary(f *testing.F) {
	addAll(f)
	f.Fuzz(func(t *testing.T, year, month, day int) {
		if year < -1000000 || year > 1000000 {
			t.Skip()
		}
		want := FromGregorian(year, month%1000, day%100000)
		b, _ := want.MarshalBinary()
		var got Day
		if err := got.UnmarshalBinary(b); err != nil {
			t.Errorf("UnmarshalBinary(%q) = %v, want <nil>", string(b), err)
		}
		if got != want {
			t.Errorf("UnmarshalBinary(%q) = %v, want %v", string(b), got, want)
		}
	})
}

// check that the given year, month and day values produce the same date
// calculations as time.Time.
func check(t *testing.T, year, month, day int) {
	d := FromGregorian(year, month, day)
	got := time.Date(1, 1, 1, 6, 0, 0, 0, time.UTC).AddDate(0, 0, int(d)-1)
	want := time.Date(year, time.Month(month), day, 6, 0, 0, 0, time.UTC)
	if got != want {
		t.Errorf("FromGregorian(%d, %d, %d): %v != %v", year, month, day, got.Format(time.DateOnly), want.Format(time.DateOnly))
	}
	Y, M, D := d.Gregorian()
	if wantY, wantM, wantD := want.Date(); Y != wantY || M != int(wantM) || D != wantD {
		t.Errorf("FromGregorian(%d, %d, %d).Gregorian() = %d, %d, %d, want %d, %d, %d", year, month, day, Y, M, D, wantY, wantM, wantD)
	}
	if d2 := FromGregorian(Y, M, D); d2 != d {
		t.Errorf("FromGregorian(%d, %d, %d) = %d, want %d", Y, M, D, d2, d)
	}
	if gotY, wantY := d.Year(), want.Year(); gotY != wantY {
		t.Errorf("FromGregorian(%d, %d, %d).Year() = %d, want %d", year, month, day, gotY, wantY)
	}
	if gotYD, wantYD := d.YearDay(), want.YearDay(); gotYD != wantYD {
		t.Errorf("FromGregorian(%d, %d, %d).YearDay() = %d, want %d", year, month, day, gotYD, wantYD)
	}
	if gotWD, wantWD := d.Weekday()%7, int(want.Weekday()); gotWD != wantWD {
		t.Errorf("FromGregorian(%d, %d, %d).Weekday() = %v, want %v", year, month, day, gotWD, wantWD)
	}
	if got := FromTime(want); got != d {
		t.Errorf("FromTime(%v) = %d, want %d", want, got, d)
	}
	if got := d.Time(6, 0, 0, 0, time.UTC); got != want {
		t.Errorf("%#v.Time() = %v, want %v", d, got, want)
	}
}
