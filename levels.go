// Copyright 2026 The logkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logkit

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level represents the severity of a log record. It keeps the underlying
// integer representation of slog.Level so that logkit levels interoperate
// with slog.LevelVar and anything else expecting a slog.Leveler.
//
// Ordering: LevelDebug < LevelInfo < LevelWarning < LevelError < LevelCritical.
type Level slog.Level

// Constants for the five severity levels, mapped onto slog.Level integer
// values. LevelCritical sits above slog's highest standard level.
const (
	// LevelDebug is detailed diagnostic output.
	LevelDebug Level = Level(slog.LevelDebug) // -4

	// LevelInfo is routine operational output and the global default.
	LevelInfo Level = Level(slog.LevelInfo) // 0

	// LevelWarning indicates something unexpected but recoverable.
	LevelWarning Level = Level(slog.LevelWarn) // 4

	// LevelError indicates a failed operation.
	LevelError Level = Level(slog.LevelError) // 8

	// LevelCritical indicates a failure the process may not survive.
	LevelCritical Level = 12
)

// String returns the canonical upper-case name of the level. For values
// between defined constants it returns the name of the nearest lower defined
// level plus the offset (e.g. "ERROR+2").
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	}

	var base Level
	var name string
	switch {
	case l < LevelDebug:
		return slog.Level(l).String()
	case l < LevelInfo:
		base, name = LevelDebug, "DEBUG"
	case l < LevelWarning:
		base, name = LevelInfo, "INFO"
	case l < LevelError:
		base, name = LevelWarning, "WARNING"
	case l < LevelCritical:
		base, name = LevelError, "ERROR"
	default:
		base, name = LevelCritical, "CRITICAL"
	}
	return fmt.Sprintf("%s+%d", name, int(l-base))
}

// Level returns the underlying slog.Level value, satisfying the slog.Leveler
// interface so a logkit.Level can be used anywhere slog expects one.
func (l Level) Level() slog.Level {
	return slog.Level(l)
}

// ParseLevel converts a level name from configuration into a Level. Names are
// matched case-insensitively against the closed set DEBUG, INFO, WARNING,
// ERROR and CRITICAL; anything else returns an error wrapping ErrInvalidLevel
// so configuration typos surface at load time instead of silently defaulting.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	case "CRITICAL":
		return LevelCritical, nil
	}
	return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}
