// SPDX-License-Identifier: MIT
//
// Copyright © 2020 Kent Gibson <warthog618@gmail.com>.

// Package logger provides the CLI's structured logger. It is only used by
// cmd/smsmasque; the core encoding packages never log.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

var (
	log  *slog.Logger
	once sync.Once
)

const timeFormat = "15:04:05.000"

// Init configures the global logger at the given level (debug, info, warn,
// or error; anything else falls back to info).
func Init(level string) {
	lvl := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		AddSource:  lvl == slog.LevelDebug,
		Level:      lvl,
		NoColor:    !isColorTerminal(),
		TimeFormat: timeFormat,
	})
	log = slog.New(handler)
}

func isColorTerminal() bool {
	fd := os.Stderr.Fd()
	if fd > uintptr(^uint(0)>>1) {
		return false
	}
	return term.IsTerminal(int(fd))
}

func ensure() {
	once.Do(func() {
		if log == nil {
			Init("info")
		}
	})
}

// Log returns the global logger, initializing it at info level if Init
// hasn't been called yet.
func Log() *slog.Logger {
	ensure()
	return log
}
