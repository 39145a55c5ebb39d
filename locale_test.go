// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"testing"

	"gonih.org/calendar/kday"
)

func TestTerritory(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		locale string
		want   string
	}{
		{"en-US", "US"},
		{"en_GB.UTF-8", "GB"},
		{"de-de", "DE"},
		{"es-419", "419"},
		{"zh-Hant-TW", "TW"},
		{"en", ""},
		{"", ""},
		{"C", ""},
	}
	for _, tc := range tcs {
		if got := territory(tc.locale); got != tc.want {
			t.Errorf("territory(%q) = %q, want %q", tc.locale, got, tc.want)
		}
	}
}

func TestWithWeekRule(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		opts    Options
		day     any
		minDays any
	}{
		{Options{"locale": "en-US"}, kday.Sunday, 1},
		{Options{"locale": "en-GB", "day_of_week": 2}, 2, 4},
		{Options{"locale": "xx-ZZ"}, kday.Monday, 1},
		{Options{"locale": "ar_EG", "min_days_in_first_week": 7}, kday.Saturday, 7},
		{Options{"month_of_year": 4}, nil, nil},
	}
	for _, tc := range tcs {
		got := tc.opts.WithWeekRule(DefaultWeekRules)
		if got["day_of_week"] != tc.day || got["min_days_in_first_week"] != tc.minDays {
			t.Errorf("%v.WithWeekRule() = %v, want day_of_week %v and min_days_in_first_week %v", tc.opts, got, tc.day, tc.minDays)
		}
	}

	opts := Options{"locale": "en-GB", "month_of_year": 4}
	c, err := FromOptions("uk", opts.WithWeekRule(DefaultWeekRules))
	if err != nil {
		t.Fatal(err)
	}
	if !c.Compatible(MustNew("uk_local", Config{DayOfWeek: kday.Monday, MonthOfYear: 4, MinDaysInFirstWeek: 4, Locale: "en-GB"})) {
		t.Errorf("calendar from %v has configuration %+v", opts, c.Config())
	}
	if _, ok := opts["day_of_week"]; ok {
		t.Errorf("WithWeekRule modified its receiver")
	}
}
