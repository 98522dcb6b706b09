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
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/mixpilot/logkit/internal/rotate"
)

// Option overrides a single resolved configuration value during Initialize.
// Options are the top of the resolution chain: explicit option, then
// configuration file, then built-in default.
type Option func(*options)

type options struct {
	level           *Level
	debugMode       *bool
	consoleEnabled  *bool
	fileEnabled     *bool
	logDir          *string
	componentLevels map[string]Level
}

// WithLevel sets the global default level, overriding the file and defaults.
func WithLevel(level Level) Option {
	return func(o *options) { o.level = &level }
}

// WithDebugMode overrides the application debug-mode signal. When enabled,
// component levels still at INFO (and not pinned by WithComponentLevel) are
// promoted to DEBUG.
func WithDebugMode(enabled bool) Option {
	return func(o *options) { o.debugMode = &enabled }
}

// WithConsoleEnabled turns the console sink on or off.
func WithConsoleEnabled(enabled bool) Option {
	return func(o *options) { o.consoleEnabled = &enabled }
}

// WithFileEnabled turns the rotating file sink on or off.
func WithFileEnabled(enabled bool) Option {
	return func(o *options) { o.fileEnabled = &enabled }
}

// WithLogDir overrides the directory that holds the log file.
func WithLogDir(dir string) Option {
	return func(o *options) { o.logDir = &dir }
}

// WithComponentLevel pins one component's level, overriding the file, the
// defaults, and debug-mode promotion.
func WithComponentLevel(name string, level Level) Option {
	return func(o *options) {
		if o.componentLevels == nil {
			o.componentLevels = make(map[string]Level)
		}
		o.componentLevels[name] = level
	}
}

// apply overlays the options onto cfg.
func (o *options) apply(cfg *Config) {
	if o.debugMode != nil {
		cfg.App.DebugMode = *o.debugMode
		if *o.debugMode {
			if o.level == nil {
				cfg.Logging.Level = LevelDebug
			}
			for name, lvl := range cfg.Logging.Components {
				if _, pinned := o.componentLevels[name]; pinned {
					continue
				}
				if lvl == LevelInfo {
					cfg.Logging.Components[name] = LevelDebug
				}
			}
		}
	}
	if o.level != nil {
		cfg.Logging.Level = *o.level
	}
	if o.consoleEnabled != nil {
		cfg.Logging.Console.Enabled = *o.consoleEnabled
	}
	if o.fileEnabled != nil {
		cfg.Logging.File.Enabled = *o.fileEnabled
	}
	if o.logDir != nil {
		cfg.Logging.File.Path = *o.logDir
	}
	for name, lvl := range o.componentLevels {
		cfg.Logging.Components[name] = lvl
	}
}

// Initialize loads the configuration file at configPath (or the built-in
// defaults when configPath is empty), applies any options on top, and
// configures the default registry's sinks and component levels.
//
// A missing or unparseable file never aborts setup: the failure is reported
// to stderr, the defaults are used, and the load error is returned so the
// caller can inspect it. Logging is functional either way.
func Initialize(configPath string, opts ...Option) error {
	cfg := DefaultConfig()
	var loadErr error
	if configPath != "" {
		loaded, err := LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[logkit] WARNING: failed to load logging config: %v\n", err)
			fmt.Fprintf(os.Stderr, "[logkit] INFO: using default logging configuration\n")
			loadErr = err
		} else {
			cfg = loaded
		}
	}

	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	o.apply(&cfg)

	Configure(cfg)
	return loadErr
}

// Configure applies cfg to the default registry. See Registry.Configure.
func Configure(cfg Config) { defaultRegistry.Configure(cfg) }

// Configure applies cfg to this registry: it sets the global default level,
// detaches and closes every sink previously attached to the root (so
// reconfiguration never leaves duplicate or stale sinks), attaches the
// enabled sinks, and sets per-component levels.
//
// If the file sink cannot be set up (directory creation or file open
// failure), the failure is reported to stderr and the sink is skipped;
// the console sink is unaffected. Configure itself never fails.
//
// Configure is intended for startup; reconfiguring while other goroutines
// emit concurrently must be serialized by the caller.
func (r *Registry) Configure(cfg Config) {
	r.SetDefaultLevel(cfg.Logging.Level)

	root := r.Root()
	root.ClearHandlers()

	if cfg.Logging.Console.Enabled {
		root.AddHandler(newConsoleHandler(cfg.Logging.Console))
	}
	if cfg.Logging.File.Enabled {
		h, err := newFileHandler(cfg.Logging.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[logkit] WARNING: file sink disabled: %v\n", err)
		} else {
			root.AddHandler(h)
		}
	}

	for name, lvl := range cfg.Logging.Components {
		r.Logger(name).SetLevel(lvl)
	}

	root.Debug("logging system initialized")
}

// newConsoleHandler builds the stdout sink, auto-detecting color support
// when the configuration leaves it unset.
func newConsoleHandler(cc ConsoleConfig) *ConsoleHandler {
	useColors := false
	if cc.Colors != nil {
		useColors = *cc.Colors
	} else {
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
	template := cc.Template
	if template == "" {
		template = DefaultConsoleTemplate
	}
	return NewConsoleHandler(os.Stdout, cc.Level, NewFormatter(template, cc.TimeFormat, useColors))
}

// newFileHandler builds the rotating file sink. The rotation threshold is
// derived from the fractional MiB setting; colors are always off.
func newFileHandler(fc FileConfig) (*FileHandler, error) {
	maxBytes := int64(fc.MaxSizeMB * float64(1<<20))
	w, err := rotate.New(filepath.Join(fc.Path, fc.Filename), maxBytes, fc.BackupCount)
	if err != nil {
		return nil, err
	}
	template := fc.Template
	if template == "" {
		template = DefaultFileTemplate
	}
	return NewFileHandler(w, fc.Level, NewFormatter(template, fc.TimeFormat, false)), nil
}
