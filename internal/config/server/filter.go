package server

import (
	"fmt"
	"strings"
	"time"
)

// FilterServerConfig controls how filters are compiled.
type FilterServerConfig struct {
	Timezone   string   `mapstructure:"timezone"    yaml:"timezone"`
	WeekStart  string   `mapstructure:"week_start"  yaml:"week_start"`
	JSONColumn string   `mapstructure:"json_column" yaml:"json_column"`
	UTMPath    []string `mapstructure:"utm_path"    yaml:"utm_path"`
}

// Location loads the time zone used for day boundaries.
func (c FilterServerConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid filter timezone '%s': %w", c.Timezone, err)
	}
	return loc, nil
}

// Weekday parses the first day of the week.
func (c FilterServerConfig) Weekday() (time.Weekday, error) {
	if c.WeekStart == "" {
		return time.Sunday, nil
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), c.WeekStart) {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid filter week start '%s'", c.WeekStart)
}
