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
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// loggerState is the shared per-name state behind a Logger: the explicit
// level (if any), the attached sinks, and the link to the dotted-name
// parent. Every Logger with the same name shares one loggerState, which is
// what makes same-named loggers interchangeable.
type loggerState struct {
	reg      *Registry
	parent   *loggerState
	name     string
	level    slog.LevelVar
	levelSet atomic.Bool
	mu       sync.Mutex
	handlers []Handler
}

// effectiveLevel resolves the threshold for this logger: its own explicit
// level, else the nearest ancestor's explicit level, else the registry's
// global default.
func (s *loggerState) effectiveLevel() Level {
	for st := s; st != nil; st = st.parent {
		if st.levelSet.Load() {
			return Level(st.level.Level())
		}
	}
	return s.reg.DefaultLevel()
}

// sinkChain collects the handlers attached to this logger and every
// ancestor, self first. A logger without its own sinks thereby delegates
// upward, terminating at the root.
func (s *loggerState) sinkChain() []Handler {
	var hs []Handler
	for st := s; st != nil; st = st.parent {
		st.mu.Lock()
		hs = append(hs, st.handlers...)
		st.mu.Unlock()
	}
	return hs
}

// Logger is a named component logger. It owns no state beyond its bound
// fields; levels and sinks live on the shared per-name state, so loggers are
// cheap to copy and derive. Obtain one via GetLogger.
type Logger struct {
	state *loggerState
	bound []slog.Attr
}

// Name returns the logger's dotted component name; the root logger's name is
// the empty string.
func (l *Logger) Name() string { return l.state.name }

// SetLevel sets this logger's explicit severity threshold. Descendants
// without their own explicit level inherit it.
func (l *Logger) SetLevel(level Level) {
	l.state.level.Set(level.Level())
	l.state.levelSet.Store(true)
}

// ResetLevel clears the explicit threshold so the logger inherits from its
// nearest configured ancestor again.
func (l *Logger) ResetLevel() { l.state.levelSet.Store(false) }

// EffectiveLevel returns the threshold currently governing this logger.
func (l *Logger) EffectiveLevel() Level { return l.state.effectiveLevel() }

// Enabled reports whether a record at level would be emitted.
func (l *Logger) Enabled(level Level) bool { return level >= l.state.effectiveLevel() }

// With returns a derived logger sharing this logger's name, level and sinks,
// with the given fields bound to every record it emits. The receiver is
// unchanged, so the derived logger acts as a lexical scope: dropping it
// restores the prior context by construction.
func (l *Logger) With(attrs ...slog.Attr) *Logger {
	if len(attrs) == 0 {
		return l
	}
	bound := make([]slog.Attr, 0, len(l.bound)+len(attrs))
	bound = append(bound, l.bound...)
	bound = append(bound, attrs...)
	return &Logger{state: l.state, bound: bound}
}

// AddHandler attaches a sink to this logger. Sinks are normally attached
// only to the root logger by Configure; attach to a child to give one
// component its own destination.
func (l *Logger) AddHandler(h Handler) {
	if h == nil {
		return
	}
	l.state.mu.Lock()
	l.state.handlers = append(l.state.handlers, h)
	l.state.mu.Unlock()
}

// ClearHandlers detaches and closes every sink attached to this logger.
// Close failures are reported to stderr; teardown always completes.
func (l *Logger) ClearHandlers() {
	l.state.mu.Lock()
	old := l.state.handlers
	l.state.handlers = nil
	l.state.mu.Unlock()
	for _, h := range old {
		if err := h.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "[logkit] WARNING: error closing log sink: %v\n", err)
		}
	}
}

// Handlers returns a copy of the sinks attached directly to this logger.
func (l *Logger) Handlers() []Handler {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()
	return append([]Handler(nil), l.state.handlers...)
}

// emit builds the record and dispatches it to every sink on the hierarchy.
// It must be called exactly one frame below an exported logging method so
// the captured source location points at the caller.
func (l *Logger) emit(ctx context.Context, level Level, msg string, attrs []slog.Attr) {
	if !l.Enabled(level) {
		return
	}

	var file string
	var line int
	if _, f, ln, ok := runtime.Caller(2); ok {
		file = filepath.Base(f)
		line = ln
	}

	rec := Record{
		Time:       time.Now(),
		Level:      level,
		LoggerName: l.state.name,
		Message:    msg,
		Fields:     mergeAttrs(l.bound, ContextFields(ctx), TraceAttrs(ctx), attrs),
		File:       file,
		Line:       line,
	}

	for _, h := range l.state.sinkChain() {
		if !h.Enabled(level) {
			continue
		}
		if err := h.Handle(rec); err != nil {
			fmt.Fprintf(os.Stderr, "[logkit] ERROR writing log record: %v\n", err)
		}
	}
}

// Debug logs at LevelDebug without request context.
func (l *Logger) Debug(msg string, attrs ...slog.Attr) {
	l.emit(context.Background(), LevelDebug, msg, attrs)
}

// Info logs at LevelInfo without request context.
func (l *Logger) Info(msg string, attrs ...slog.Attr) {
	l.emit(context.Background(), LevelInfo, msg, attrs)
}

// Warning logs at LevelWarning without request context.
func (l *Logger) Warning(msg string, attrs ...slog.Attr) {
	l.emit(context.Background(), LevelWarning, msg, attrs)
}

// Error logs at LevelError without request context.
func (l *Logger) Error(msg string, attrs ...slog.Attr) {
	l.emit(context.Background(), LevelError, msg, attrs)
}

// Critical logs at LevelCritical without request context.
func (l *Logger) Critical(msg string, attrs ...slog.Attr) {
	l.emit(context.Background(), LevelCritical, msg, attrs)
}

// DebugContext logs at LevelDebug, merging ctx's field layers and trace IDs.
func (l *Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelDebug, msg, attrs)
}

// InfoContext logs at LevelInfo, merging ctx's field layers and trace IDs.
func (l *Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelInfo, msg, attrs)
}

// WarningContext logs at LevelWarning, merging ctx's field layers and trace IDs.
func (l *Logger) WarningContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelWarning, msg, attrs)
}

// ErrorContext logs at LevelError, merging ctx's field layers and trace IDs.
func (l *Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelError, msg, attrs)
}

// CriticalContext logs at LevelCritical, merging ctx's field layers and trace IDs.
func (l *Logger) CriticalContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelCritical, msg, attrs)
}

// Log emits a record at an arbitrary level.
func (l *Logger) Log(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	l.emit(ctx, level, msg, attrs)
}

// mergeAttrs merges attribute groups in order. Keys keep the position of
// their first appearance; a later group's value for a repeated key replaces
// the earlier value in place, mirroring nested-scope shadowing.
func mergeAttrs(groups ...[]slog.Attr) []slog.Attr {
	var merged []slog.Attr
	var index map[string]int
	for _, g := range groups {
		for _, a := range g {
			if index == nil {
				index = make(map[string]int)
			}
			if pos, ok := index[a.Key]; ok {
				merged[pos] = a
				continue
			}
			index[a.Key] = len(merged)
			merged = append(merged, a)
		}
	}
	return merged
}
