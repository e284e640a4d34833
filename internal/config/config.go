// Copyright 2021 The age Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the demo CLI's configuration: a YAML file plus an
// optional .env overlay. It has no bearing on the session façade itself,
// which takes no configuration beyond its Go constructor arguments
// (spec.md §6: no persisted state, no environment variables, no CLI).
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the demo CLI's configuration surface.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
	// MetricsAddr, if non-empty, is the address the demo serves
	// Prometheus metrics on (for example ":9090").
	MetricsAddr string `yaml:"metrics_addr"`
	// Info overrides the fixed HPKE info string, for interop testing
	// against a non-default binding. Empty means use the module default.
	Info string `yaml:"info"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{LogLevel: "info"}
}

// Load reads path as YAML into a Config seeded with Default, after first
// loading envPath (if it exists) into the process environment via
// godotenv. Load does not read any Config field from the environment and
// does not expand ${VAR}-style references in the YAML file.
func Load(path, envPath string) (Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("couldn't load env file %q: %w", envPath, err)
		}
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("couldn't read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("couldn't parse config file %q: %w", path, err)
	}
	return cfg, nil
}
