// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the configuration file of the calendar tool: logging
// settings, the default calendar and custom calendar definitions.
package config

import (
	"fmt"
	"slices"
	"strings"

	"cloudeng.io/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"gonih.org/calendar"
	"gonih.org/calendar/internal/logging"
)

// EnvPrefix is the prefix of environment variables overriding settings, as
// in CALENDAR_DEFAULT_CALENDAR.
const EnvPrefix = "CALENDAR"

// Config is the configuration of the calendar tool.
type Config struct {
	Logging         logging.Config `mapstructure:"logging"`
	DefaultCalendar string         `mapstructure:"default_calendar"`
	// Calendars maps names to calendar options. See calendar.NewConfig.
	Calendars map[string]map[string]any `mapstructure:"calendars"`
}

// Default returns the configuration used without a configuration file.
func Default() *Config {
	return &Config{DefaultCalendar: calendar.Gregorian.Name()}
}

// Load reads the configuration file at path. Any format viper understands
// works; the format is chosen by the file extension.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("default_calendar", calendar.Gregorian.Name())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the logging settings and every calendar definition. All
// problems are reported together.
func (c *Config) Validate() error {
	errs := &errors.M{}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs.Append(fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		errs.Append(fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}
	for _, name := range c.calendarNames() {
		if _, err := calendar.NewConfig(c.Calendars[name]); err != nil {
			errs.Append(fmt.Errorf("calendars.%s: %w", name, err))
		}
	}
	if c.DefaultCalendar == "" {
		errs.Append(fmt.Errorf("default_calendar is required"))
	}
	return errs.Err()
}

// Register defines the configured calendars in r, in name order.
func (c *Config) Register(r *calendar.Registry) error {
	errs := &errors.M{}
	for _, name := range c.calendarNames() {
		_, err := r.DefineOptions(name, c.Calendars[name])
		errs.Append(err)
	}
	return errs.Err()
}

// Registry returns a registry holding the predefined and configured
// calendars, and checks that the default calendar is among them.
func (c *Config) Registry(logger *zap.Logger) (*calendar.Registry, error) {
	r := calendar.NewRegistry(logger)
	if err := c.Register(r); err != nil {
		return nil, err
	}
	if _, err := r.Get(c.DefaultCalendar); err != nil {
		return nil, fmt.Errorf("default_calendar: %w", err)
	}
	return r, nil
}

func (c *Config) calendarNames() []string {
	names := make([]string, 0, len(c.Calendars))
	for n := range c.Calendars {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
