// pkg/config/config.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package config defines the flag-based configuration every cmd/ binary
// in this module shares, the same stdlib flag.FlagSet idiom the teacher
// uses directly in main() rather than a config-file/viper layer.
package config

import (
	"flag"
	"fmt"
)

// Config holds the knobs common to a database-backed consumer: where
// the store lives, how verbosely it logs, the cache size the Database
// keeps resolved objects in, and the levels-per-query used to build a
// Graph when a caller doesn't name its own.
type Config struct {
	StoreDir   string
	LogLevel   string
	LogDir     string
	CacheSize  int
	Levels     levelList
}

// levelList is a flag.Value accepting a comma-separated list of flight
// levels, e.g. "18000,24000,30000".
type levelList []int32

func (l *levelList) String() string {
	if l == nil {
		return ""
	}
	s := ""
	for i, v := range *l {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", v)
	}
	return s
}

func (l *levelList) Set(s string) error {
	var levels []int32
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i == start {
				return fmt.Errorf("config: empty level in %q", s)
			}
			var v int32
			if _, err := fmt.Sscanf(s[start:i], "%d", &v); err != nil {
				return fmt.Errorf("config: invalid level %q: %w", s[start:i], err)
			}
			levels = append(levels, v)
			start = i + 1
		}
	}
	*l = levels
	return nil
}

// RegisterFlags installs this Config's flags on fs, defaulting to
// values that work against a store directory in the current directory.
// Callers invoke this on flag.CommandLine from main() before
// flag.Parse(), the same place the teacher's cmd/* binaries declare
// their flags.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.StoreDir, "store", "adr.db", "path to the bbolt object store")
	fs.StringVar(&c.LogLevel, "loglevel", "info", "log level: debug, info, warn, or error")
	fs.StringVar(&c.LogDir, "logdir", "", "directory for log output; default is the OS user config directory")
	fs.IntVar(&c.CacheSize, "cachesize", 4096, "number of resolved objects the Database keeps cached")
	fs.Var(&c.Levels, "levels", "comma-separated flight levels a Graph is built over, e.g. 18000,24000,30000")
}

// DefaultLevels is used when a caller hasn't supplied -levels.
var DefaultLevels = []int32{10000, 18000, 26000, 34000, 42000}

// LevelsOrDefault returns c.Levels if set, else DefaultLevels.
func (c *Config) LevelsOrDefault() []int32 {
	if len(c.Levels) == 0 {
		return DefaultLevels
	}
	return []int32(c.Levels)
}
