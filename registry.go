// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"gonih.org/calendar/internal/cache"
)

// Predefined returns the calendars defined by this package.
func Predefined() []*Calendar {
	return []*Calendar{Gregorian, ISOWeek, USFiscal, UKFiscal, AUFiscal, NRF}
}

// Registry holds calendars by name. Definitions are serialized; lookups may
// happen concurrently. Date arithmetic never consults a Registry.
type Registry struct {
	mu     sync.Mutex
	byName map[string]*Calendar
	logger *zap.Logger
}

// NewRegistry returns a Registry holding the predefined calendars. A nil
// logger disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{byName: make(map[string]*Calendar), logger: logger}
	for _, c := range Predefined() {
		r.byName[c.name] = c
	}
	return r
}

// Define creates and registers a calendar. Defining an existing name returns
// the calendar already registered under it, even if cfg differs.
func (r *Registry) Define(name string, cfg Config) (*Calendar, error) {
	if name == "" {
		return nil, &ConfigError{Option: "name", Reason: "calendar name must not be empty"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byName[name]; ok {
		if c.cfg != cfg.withDefaults() {
			r.logger.Warn("calendar already defined with a different configuration",
				zap.String("calendar", name),
				zap.Any("existing", c.cfg.Options()),
				zap.Any("requested", cfg.Options()))
		}
		return c, nil
	}
	c, err := New(name, cfg)
	if err != nil {
		r.logger.Error("invalid calendar definition", zap.String("calendar", name), zap.Error(err))
		return nil, err
	}
	r.byName[name] = c
	r.logger.Info("calendar defined",
		zap.String("calendar", name),
		zap.Stringer("kind", c.cfg.Kind),
		zap.Int("month_of_year", c.cfg.MonthOfYear))
	return c, nil
}

// DefineOptions is like Define, but takes untyped options. See NewConfig.
func (r *Registry) DefineOptions(name string, opts Options) (*Calendar, error) {
	cfg, err := NewConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("calendar %q: %w", name, err)
	}
	return r.Define(name, cfg)
}

// Lookup returns the calendar registered under name.
func (r *Registry) Lookup(name string) (*Calendar, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byName[name]
	return c, ok
}

// Get is like Lookup, but returns an error naming the known calendars if
// name is not registered.
func (r *Registry) Get(name string) (*Calendar, error) {
	if c, ok := r.Lookup(name); ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown calendar %q, known calendars are %v", name, r.Names())
}

// Remove unregisters name. Dates of the calendar stay usable.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		return false
	}
	delete(r.byName, name)
	r.logger.Info("calendar removed", zap.String("calendar", name))
	return true
}

// Names returns the sorted names of all registered calendars.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// LogCacheStats logs, at debug level, the size and hit counts of the layout
// cache and of the year bounds cached by each registered week-based
// calendar.
func (r *Registry) LogCacheStats() {
	if !r.logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	logStats := func(msg string, fields []zap.Field, n int, s cache.Stats) {
		fields = append(fields, zap.Int("entries", n), zap.Int64("hits", s.Hits), zap.Int64("misses", s.Misses))
		r.logger.Debug(msg, fields...)
	}
	logStats("layout cache", nil, memo.Len(), memo.Stats())
	for _, name := range r.Names() {
		c, ok := r.Lookup(name)
		if !ok {
			continue
		}
		if e, ok := c.eng.(*weekEngine); ok {
			n, s := e.cacheStats()
			logStats("year bounds cache", []zap.Field{zap.String("calendar", name)}, n, s)
		}
	}
}
