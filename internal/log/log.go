// Copyright 2021 The age Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log provides a small structured-logging facade over
// go.uber.org/zap for the demo CLI. The session façade itself never logs
// (spec.md §5: the core is synchronous and side-effect free); only
// cmd/hpkesession-demo uses this package, including to report a failure
// of the metrics server it starts.
package log

import "go.uber.org/zap"

// Logger is the subset of zap's API this module's CLI needs. NewNop
// satisfies it for callers that don't want logging.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Sync() error
}

// New builds a production zap.Logger at the given level ("debug", "info",
// "warn", or "error"; anything else defaults to "info").
func New(level string) (Logger, error) {
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zapLevel
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return zap.NewNop()
}

// Field constructors re-exported so callers don't need their own zap import
// for the common cases.
var (
	String = zap.String
	Int    = zap.Int
	Error  = zap.Error
)
