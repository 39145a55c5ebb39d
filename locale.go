// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"strings"

	"gonih.org/calendar/kday"
)

// WeekRule is the regional convention for numbering weeks.
type WeekRule struct {
	FirstDay int // ISO weekday
	MinDays  int
}

// A WeekRuleSource looks up the week rule of a locale. Calendars never
// consult one on their own; see Options.WithWeekRule.
type WeekRuleSource interface {
	WeekRule(locale string) (WeekRule, bool)
}

// TerritoryWeekRules maps territory codes (the region subtag of a locale,
// such as "US" in "en-US") to week rules. The "001" entry is the fallback.
type TerritoryWeekRules map[string]WeekRule

// DefaultWeekRules is a small built-in table of week conventions.
var DefaultWeekRules = TerritoryWeekRules{
	"001": {FirstDay: kday.Monday, MinDays: 1},
	"GB":  {FirstDay: kday.Monday, MinDays: 4},
	"DE":  {FirstDay: kday.Monday, MinDays: 4},
	"FR":  {FirstDay: kday.Monday, MinDays: 4},
	"SE":  {FirstDay: kday.Monday, MinDays: 4},
	"US":  {FirstDay: kday.Sunday, MinDays: 1},
	"CA":  {FirstDay: kday.Sunday, MinDays: 1},
	"JP":  {FirstDay: kday.Sunday, MinDays: 1},
	"AU":  {FirstDay: kday.Monday, MinDays: 1},
	"AE":  {FirstDay: kday.Saturday, MinDays: 1},
	"EG":  {FirstDay: kday.Saturday, MinDays: 1},
}

// WeekRule implements WeekRuleSource. Locales without a region, or with an
// unknown one, get the "001" rule.
func (t TerritoryWeekRules) WeekRule(locale string) (WeekRule, bool) {
	if r, ok := t[territory(locale)]; ok {
		return r, true
	}
	r, ok := t["001"]
	return r, ok
}

// territory returns the upper-case region subtag of a BCP 47 or POSIX locale
// name, or "".
func territory(locale string) string {
	locale, _, _ = strings.Cut(locale, ".")
	parts := strings.FieldsFunc(locale, func(r rune) bool { return r == '-' || r == '_' })
	for _, p := range parts[min(1, len(parts)):] {
		if len(p) == 2 || (len(p) == 3 && p[0] >= '0' && p[0] <= '9') {
			return strings.ToUpper(p)
		}
	}
	return ""
}

// WithWeekRule returns a copy of o, where day_of_week and
// min_days_in_first_week are filled in from the week rule of o's locale, if
// they are absent. Without a locale option, o is returned unchanged.
func (o Options) WithWeekRule(src WeekRuleSource) Options {
	loc, _ := o["locale"].(string)
	if loc == "" || src == nil {
		return o
	}
	r, ok := src.WeekRule(loc)
	if !ok {
		return o
	}
	n := make(Options, len(o)+2)
	for k, v := range o {
		n[k] = v
	}
	if _, ok := n["day_of_week"]; !ok {
		n["day_of_week"] = r.FirstDay
	}
	if _, ok := n["min_days_in_first_week"]; !ok {
		n["min_days_in_first_week"] = r.MinDays
	}
	return n
}
