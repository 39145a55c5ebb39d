// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gonih.org/calendar"
	"gonih.org/calendar/internal/config"
	"gonih.org/calendar/internal/logging"
	"gonih.org/calendar/interval"
)

// app is the state shared by all subcommands, set up before any of them
// runs.
type app struct {
	configPath string
	logLevel   string
	calName    string

	out      io.Writer
	logger   *zap.Logger
	closeLog func() error
	registry *calendar.Registry
	cal      *calendar.Calendar
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:           "calendar",
		Short:         "Convert dates between calendars and do calendar arithmetic",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(errOut)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.registry != nil {
				a.registry.LogCacheStats()
			}
			if a.closeLog == nil {
				return nil
			}
			return a.closeLog()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file path")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&a.calName, "calendar", "", "calendar to work in (default from the config file)")

	root.AddCommand(
		a.calendarsCmd(),
		a.convertCmd(),
		a.periodCmd(),
		a.compareCmd(),
		a.durationCmd(),
		a.kdayCmd(),
	)
	return root
}

func (a *app) setup(errOut io.Writer) error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if cfg.Logging.Level == "" {
		// Registry chatter is only interesting when asked for.
		cfg.Logging.Level = "warn"
	}
	logger, closeLog, err := logging.New(cfg.Logging, errOut)
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logger, closeLog

	if a.registry, err = cfg.Registry(logger); err != nil {
		return err
	}
	name := cfg.DefaultCalendar
	if a.calName != "" {
		name = a.calName
	}
	if a.cal, err = a.registry.Get(name); err != nil {
		return err
	}
	a.logger.Debug("calendar selected", zap.String("calendar", a.cal.Name()), zap.Strings("registered", a.registry.Names()))
	return nil
}

// parseDate parses s in c, as a date in the native layout of c, an ordinal
// date, or "today".
func parseDate(c *calendar.Calendar, s string) (calendar.Date, error) {
	if s == "today" {
		return c.Today(time.Local), nil
	}
	layout := calendar.ISODate
	if c.Config().Kind == calendar.WeekBased {
		layout = calendar.ISOWeekDate
	}
	d, err := calendar.Parse(c, layout, s)
	if err == nil {
		return d, nil
	}
	if d, err2 := calendar.Parse(c, calendar.OrdinalDate, s); err2 == nil {
		return d, nil
	}
	return calendar.Date{}, err
}

var weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// parseWeekday parses an ISO weekday number or an English weekday name or
// its three-letter abbreviation.
func parseWeekday(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= 7 {
		return n, nil
	}
	s = strings.ToLower(s)
	if i := slices.IndexFunc(weekdayNames, func(n string) bool { return n == s || (len(s) == 3 && strings.HasPrefix(n, s)) }); i >= 0 {
		return i + 1, nil
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

func (a *app) calendarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendars",
		Short: "List the known calendars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range a.registry.Names() {
				c, _ := a.registry.Lookup(name)
				cfg := c.Config()
				fmt.Fprintf(a.out, "%-12s %-5s month=%-2d day_of_week=%d %s %s\n", name, cfg.Kind, cfg.MonthOfYear, cfg.DayOfWeek, cfg.Edge, cfg.Position)
			}
			return nil
		},
	}
}

func (a *app) convertCmd() *cobra.Command {
	var to []string
	cmd := &cobra.Command{
		Use:   "convert DATE",
		Short: "Show a date in other calendars",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(a.cal, args[0])
			if err != nil {
				return err
			}
			if len(to) == 0 {
				to = a.registry.Names()
			}
			for _, name := range to {
				c, err := a.registry.Get(name)
				if err != nil {
					return err
				}
				e := d.In(c)
				y, w := e.Week()
				fmt.Fprintf(a.out, "%-12s %v  week %d-W%02d  day %d\n", name, e, y, w, e.DayOfYear())
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&to, "to", nil, "calendars to convert to (default all)")
	return cmd
}

func (a *app) periodCmd() *cobra.Command {
	var step int
	var coerce bool
	var by string
	cmd := &cobra.Command{
		Use:   "period UNIT DATE",
		Short: "Show the year, quarter, month, week or day containing a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := calendar.ParseUnit(args[0])
			if err != nil {
				return err
			}
			d, err := parseDate(a.cal, args[1])
			if err != nil {
				return err
			}
			r, err := a.cal.RangeOf(u, d)
			if err != nil {
				return err
			}
			stepUnit := u
			if by != "" {
				if stepUnit, err = calendar.ParseUnit(by); err != nil {
					return err
				}
			}
			for ; step > 0; step-- {
				if r, err = r.Next(stepUnit, coerce); err != nil {
					return err
				}
			}
			for ; step < 0; step++ {
				if r, err = r.Previous(stepUnit, coerce); err != nil {
					return err
				}
			}
			fmt.Fprintf(a.out, "%v %v..%v (%d days)\n", r, r.First(), r.Last(), r.Len())
			return nil
		},
	}
	cmd.Flags().IntVar(&step, "step", 0, "move this many ranges forward (or backward, if negative)")
	cmd.Flags().StringVar(&by, "by", "", "unit to step by (default the range's unit)")
	cmd.Flags().BoolVar(&coerce, "coerce", false, "clamp positions missing from the target year")
	return cmd
}

func (a *app) compareCmd() *cobra.Command {
	var unitA, unitB string
	cmd := &cobra.Command{
		Use:   "compare DATE DATE",
		Short: "Show the interval relation between two ranges",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rs [2]calendar.Range
			for i, u := range []string{unitA, unitB} {
				unit, err := calendar.ParseUnit(u)
				if err != nil {
					return err
				}
				d, err := parseDate(a.cal, args[i])
				if err != nil {
					return err
				}
				if rs[i], err = a.cal.RangeOf(unit, d); err != nil {
					return err
				}
			}
			rel := interval.Compare(rs[0], rs[1])
			fmt.Fprintf(a.out, "%v %v %v\n", rs[0], rel, rs[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&unitA, "a", "day", "unit of the first range")
	cmd.Flags().StringVar(&unitB, "b", "day", "unit of the second range")
	return cmd
}

func (a *app) durationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration FROM TO",
		Short: "Show the calendar duration between two dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDate(a.cal, args[0])
			if err != nil {
				return err
			}
			to, err := parseDate(a.cal, args[1])
			if err != nil {
				return err
			}
			d, err := calendar.Between(from, to)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, d)
			return nil
		},
	}
}

func (a *app) kdayCmd() *cobra.Command {
	var n int
	var mode string
	cmd := &cobra.Command{
		Use:   "kday DATE WEEKDAY",
		Short: "Find a weekday relative to a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDate(a.cal, args[0])
			if err != nil {
				return err
			}
			k, err := parseWeekday(args[1])
			if err != nil {
				return err
			}
			var r calendar.Date
			switch mode {
			case "on-or-before":
				r = d.KdayOnOrBefore(k)
			case "on-or-after":
				r = d.KdayOnOrAfter(k)
			case "nearest":
				r = d.KdayNearest(k)
			case "before":
				r = d.KdayBefore(k)
			case "after":
				r = d.KdayAfter(k)
			case "nth":
				if r, err = d.NthKday(n, k); err != nil {
					return err
				}
			default:
				return fmt.Errorf("invalid mode %q", mode)
			}
			fmt.Fprintf(a.out, "%v %s\n", r, r.Time(0, 0, 0, 0, time.UTC).Weekday())
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "on-or-after", "on-or-before, on-or-after, nearest, before, after or nth")
	cmd.Flags().IntVarP(&n, "nth", "n", 1, "occurrence for --mode nth; negative counts backwards")
	return cmd
}
