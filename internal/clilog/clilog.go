/*************************************************************************
 * Copyright 2024 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

/*
Package clilog provides sabiql's logger in the form of a logging singleton: Writer.

It is a thin wrapper around a zerolog file logger so the rest of the
program can log without caring where the underlying file lives or how
it was configured.
*/
package clilog

import (
	"errors"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var ErrEmptyPath error = errors.New("path cannot be empty")

// Level recreates zerolog.Level so other packages do not have to
// import zerolog directly.
type Level int

const (
	DEBUG Level = Level(zerolog.DebugLevel)
	INFO  Level = Level(zerolog.InfoLevel)
	WARN  Level = Level(zerolog.WarnLevel)
	ERROR Level = Level(zerolog.ErrorLevel)
	FATAL Level = Level(zerolog.FatalLevel)
)

// Writer is the logging singleton.
var Writer zerolog.Logger

var logFile *os.File

// Init initializes Writer, the logging singleton. Safe (ineffectual)
// if the writer has already been initialized.
func Init(path string, lvlString string) error {
	if logFile != nil {
		return nil
	}
	if path = strings.TrimSpace(path); path == "" {
		return ErrEmptyPath
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(lvlString))
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	logFile = f
	Writer = zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	Writer.Info().Str("level", lvl.String()).Msg("logger initialized")
	return nil
}

// Destroy closes the writer's file.
func Destroy() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// ValidLevel reports whether lvlString names a recognized zerolog level
// (case-insensitive), without initializing the logger. Used to validate
// a --loglevel flag at parse time rather than at Init time.
func ValidLevel(lvlString string) error {
	_, err := zerolog.ParseLevel(strings.ToLower(lvlString))
	return err
}

// Active returns whether the given level is currently enabled.
func Active(lvl Level) bool {
	return zerolog.Level(lvl) >= Writer.GetLevel()
}

// LogFlagFailedGet logs the non-fatal failure to fetch a named flag.
func LogFlagFailedGet(flagname string, err error) {
	Writer.Warn().Str("flag", flagname).Err(err).Msg("failed to fetch flag, ignoring")
}
