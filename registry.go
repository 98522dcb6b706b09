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
	"log/slog"
	"strings"
	"sync"
)

// Registry is the process-wide logger hierarchy: one shared state per dotted
// name, linked to its prefix parent, rooted at the empty name. Concurrent
// emits are safe; reconfiguration (Configure, SetDefaultLevel) is expected
// at startup or otherwise serialized by the caller.
type Registry struct {
	mu           sync.RWMutex
	loggers      map[string]*loggerState
	defaultLevel slog.LevelVar
}

// NewRegistry returns an empty hierarchy with the global default level INFO.
// Most applications use the package-level default registry via GetLogger and
// Configure; separate registries exist mainly for tests.
func NewRegistry() *Registry {
	r := &Registry{loggers: make(map[string]*loggerState)}
	r.defaultLevel.Set(LevelInfo.Level())
	r.loggers[""] = &loggerState{reg: r, name: ""}
	return r
}

// defaultRegistry backs the package-level functions.
var defaultRegistry = NewRegistry()

// GetLogger returns the logger for a dotted component name from the default
// registry, creating it (and any missing ancestors) on first use. Loggers
// obtained under the same name share level and sinks.
func GetLogger(name string) *Logger { return defaultRegistry.Logger(name) }

// Logger returns the logger for name, creating the dotted-name chain up to
// the root as needed.
func (r *Registry) Logger(name string) *Logger {
	r.mu.RLock()
	st, ok := r.loggers[name]
	r.mu.RUnlock()
	if !ok {
		r.mu.Lock()
		st = r.stateLocked(name)
		r.mu.Unlock()
	}
	return &Logger{state: st}
}

// Root returns the root logger, which carries the configured sinks.
func (r *Registry) Root() *Logger { return r.Logger("") }

// stateLocked finds or creates the state for name and its ancestors.
// Caller must hold r.mu for writing.
func (r *Registry) stateLocked(name string) *loggerState {
	if st, ok := r.loggers[name]; ok {
		return st
	}
	parentName := ""
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		parentName = name[:i]
	}
	st := &loggerState{
		reg:    r,
		name:   name,
		parent: r.stateLocked(parentName),
	}
	r.loggers[name] = st
	return st
}

// SetDefaultLevel sets the global default threshold used by loggers with no
// explicit level anywhere on their ancestor chain.
func (r *Registry) SetDefaultLevel(level Level) { r.defaultLevel.Set(level.Level()) }

// DefaultLevel returns the global default threshold.
func (r *Registry) DefaultLevel() Level { return Level(r.defaultLevel.Level()) }
