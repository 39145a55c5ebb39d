// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interval classifies how two closed ranges of days relate, using
// the thirteen relations of Allen's interval algebra.
//
// Intervals are closed and measured in whole days. Two intervals meet if one
// ends on the day before the other starts; sharing a single day is an
// overlap.
package interval

import (
	"fmt"

	"gonih.org/calendar/ordinal"
)

// An Interval is a closed range of days. first must not be after last.
type Interval interface {
	Bounds() (first, last ordinal.Day)
}

// Span is the simplest Interval: a first and a last day.
type Span struct {
	First, Last ordinal.Day
}

// Bounds implements Interval.
func (s Span) Bounds() (first, last ordinal.Day) {
	return s.First, s.Last
}

// Len returns the number of days in s.
func (s Span) Len() int {
	return int(s.Last-s.First) + 1
}

// String formats s as an ISO 8601 interval.
func (s Span) String() string {
	return s.First.String() + "/" + s.Last.String()
}

// Relation is one of the thirteen mutually exclusive relations between two
// intervals.
type Relation int

const (
	Precedes Relation = iota
	Meets
	Overlaps
	FinishedBy
	Contains
	Starts
	Equals
	StartedBy
	During
	Finishes
	OverlappedBy
	MetBy
	PrecededBy
)

var relationNames = [...]string{
	Precedes:     "precedes",
	Meets:        "meets",
	Overlaps:     "overlaps",
	FinishedBy:   "finished_by",
	Contains:     "contains",
	Starts:       "starts",
	Equals:       "equals",
	StartedBy:    "started_by",
	During:       "during",
	Finishes:     "finishes",
	OverlappedBy: "overlapped_by",
	MetBy:        "met_by",
	PrecededBy:   "preceded_by",
}

// String implements fmt.Stringer.
func (r Relation) String() string {
	if r < 0 || int(r) >= len(relationNames) {
		return fmt.Sprintf("Relation(%d)", int(r))
	}
	return relationNames[r]
}

// Converse returns the relation of b to a, if r is the relation of a to b.
func (r Relation) Converse() Relation {
	return PrecededBy - r
}

// ParseRelation returns the Relation with the given name.
func ParseRelation(s string) (Relation, error) {
	for i, n := range relationNames {
		if n == s {
			return Relation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown interval relation %q", s)
}

// Compare returns the relation of a to b. Exactly one relation holds for any
// two valid intervals.
func Compare(a, b Interval) Relation {
	f1, l1 := a.Bounds()
	f2, l2 := b.Bounds()
	switch {
	case f1 < f2:
		switch {
		case l1 < f2-1:
			return Precedes
		case l1 == f2-1:
			return Meets
		case l1 < l2:
			return Overlaps
		case l1 == l2:
			return FinishedBy
		default:
			return Contains
		}
	case f1 == f2:
		switch {
		case l1 < l2:
			return Starts
		case l1 == l2:
			return Equals
		default:
			return StartedBy
		}
	default:
		switch {
		case f1 > l2+1:
			return PrecededBy
		case f1 == l2+1:
			return MetBy
		case l1 > l2:
			return OverlappedBy
		case l1 == l2:
			return Finishes
		default:
			return During
		}
	}
}

// Intersect returns the days common to a and b, and whether there are any.
func Intersect(a, b Interval) (Span, bool) {
	f1, l1 := a.Bounds()
	f2, l2 := b.Bounds()
	s := Span{max(f1, f2), min(l1, l2)}
	if s.First > s.Last {
		return Span{}, false
	}
	return s, true
}

// Includes reports whether d lies within i.
func Includes(i Interval, d ordinal.Day) bool {
	f, l := i.Bounds()
	return f <= d && d <= l
}
