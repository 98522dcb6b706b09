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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the fully resolved logging configuration: defaults overlaid with
// the configuration file, overlaid with programmatic options. Level fields
// use the closed Level enum; string level names are validated during load.
type Config struct {
	App     AppConfig
	Logging LoggingConfig
}

// AppConfig carries the hosting application's signals that affect logging.
type AppConfig struct {
	// DebugMode promotes component levels still at the default INFO to
	// DEBUG. Explicit per-component overrides are untouched.
	DebugMode bool
}

// LoggingConfig holds the global level, both sinks, and per-component
// overrides.
type LoggingConfig struct {
	Level      Level
	Console    ConsoleConfig
	File       FileConfig
	Components map[string]Level
}

// ConsoleConfig describes the stdout sink.
type ConsoleConfig struct {
	Enabled    bool
	Level      Level
	Template   string
	TimeFormat string
	// Colors overrides ANSI coloring of the level name. nil means
	// auto-detect: colors are used only when stdout is a terminal.
	Colors *bool
}

// FileConfig describes the rotating file sink. Colors are never used here.
type FileConfig struct {
	Enabled     bool
	Level       Level
	Path        string
	Filename    string
	MaxSizeMB   float64 // rotation threshold in MiB; fractional values allowed
	BackupCount int     // rotated generations retained beyond the active file
	Template    string
	TimeFormat  string
}

// DefaultConfig returns the built-in defaults: global INFO, console at INFO,
// file sink at DEBUG under logs/ with 10 MiB rotation and five backups, and
// the application's fixed component set with data_capture at DEBUG.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level: LevelInfo,
			Console: ConsoleConfig{
				Enabled:    true,
				Level:      LevelInfo,
				Template:   DefaultConsoleTemplate,
				TimeFormat: DefaultTimeFormat,
			},
			File: FileConfig{
				Enabled:     true,
				Level:       LevelDebug,
				Path:        "logs",
				Filename:    "mixpilot.log",
				MaxSizeMB:   10,
				BackupCount: 5,
				Template:    DefaultFileTemplate,
				TimeFormat:  DefaultTimeFormat,
			},
			Components: map[string]Level{
				"data_capture":   LevelDebug,
				"analysis":       LevelInfo,
				"recommendation": LevelInfo,
				"dj_generator":   LevelInfo,
				"ui":             LevelInfo,
				"external_api":   LevelInfo,
			},
		},
	}
}

// configDocument mirrors the configuration file schema. Every field is a
// pointer so a value that was explicitly set can be told apart from one that
// should fall back to the default — debug-mode promotion depends on that
// distinction.
type configDocument struct {
	App struct {
		DebugMode *bool `json:"debug_mode" yaml:"debug_mode"`
	} `json:"app" yaml:"app"`
	Logging struct {
		Level   *string `json:"level" yaml:"level"`
		Console struct {
			Enabled    *bool   `json:"enabled" yaml:"enabled"`
			Level      *string `json:"level" yaml:"level"`
			Format     *string `json:"format" yaml:"format"`
			TimeFormat *string `json:"time_format" yaml:"time_format"`
			Colors     *bool   `json:"colors" yaml:"colors"`
		} `json:"console" yaml:"console"`
		File struct {
			Enabled     *bool    `json:"enabled" yaml:"enabled"`
			Level       *string  `json:"level" yaml:"level"`
			Path        *string  `json:"path" yaml:"path"`
			Filename    *string  `json:"filename" yaml:"filename"`
			MaxSizeMB   *float64 `json:"max_size_mb" yaml:"max_size_mb"`
			BackupCount *int     `json:"backup_count" yaml:"backup_count"`
			Format      *string  `json:"format" yaml:"format"`
			TimeFormat  *string  `json:"time_format" yaml:"time_format"`
		} `json:"file" yaml:"file"`
		Components map[string]string `json:"components" yaml:"components"`
	} `json:"logging" yaml:"logging"`
}

// LoadConfig reads a JSON or YAML configuration file (chosen by extension,
// .yaml/.yml for YAML) and resolves it over the built-in defaults. Unknown
// level names anywhere in the document return an error wrapping
// ErrInvalidConfig naming the offending key.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("logkit: read config file %q: %w", path, err)
	}

	var doc configDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Config{}, fmt.Errorf("logkit: parse YAML config %q: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return Config{}, fmt.Errorf("logkit: parse JSON config %q: %w", path, err)
		}
	}
	return resolveConfig(&doc)
}

// resolveConfig overlays doc onto the defaults and applies debug-mode
// promotion using the document's knowledge of which values were explicit.
func resolveConfig(doc *configDocument) (Config, error) {
	cfg := DefaultConfig()

	if doc.App.DebugMode != nil {
		cfg.App.DebugMode = *doc.App.DebugMode
	}

	if err := overrideLevel(&cfg.Logging.Level, doc.Logging.Level, "logging.level"); err != nil {
		return Config{}, err
	}

	cc := &doc.Logging.Console
	if cc.Enabled != nil {
		cfg.Logging.Console.Enabled = *cc.Enabled
	}
	if err := overrideLevel(&cfg.Logging.Console.Level, cc.Level, "logging.console.level"); err != nil {
		return Config{}, err
	}
	if cc.Format != nil {
		cfg.Logging.Console.Template = *cc.Format
	}
	if cc.TimeFormat != nil {
		cfg.Logging.Console.TimeFormat = *cc.TimeFormat
	}
	cfg.Logging.Console.Colors = cc.Colors

	fc := &doc.Logging.File
	if fc.Enabled != nil {
		cfg.Logging.File.Enabled = *fc.Enabled
	}
	if err := overrideLevel(&cfg.Logging.File.Level, fc.Level, "logging.file.level"); err != nil {
		return Config{}, err
	}
	if fc.Path != nil {
		cfg.Logging.File.Path = *fc.Path
	}
	if fc.Filename != nil {
		cfg.Logging.File.Filename = *fc.Filename
	}
	if fc.MaxSizeMB != nil {
		cfg.Logging.File.MaxSizeMB = *fc.MaxSizeMB
	}
	if fc.BackupCount != nil {
		cfg.Logging.File.BackupCount = *fc.BackupCount
	}
	if fc.Format != nil {
		cfg.Logging.File.Template = *fc.Format
	}
	if fc.TimeFormat != nil {
		cfg.Logging.File.TimeFormat = *fc.TimeFormat
	}

	for name, levelStr := range doc.Logging.Components {
		lvl, err := ParseLevel(levelStr)
		if err != nil {
			return Config{}, fmt.Errorf("%w: logging.components.%s: %v", ErrInvalidConfig, name, err)
		}
		cfg.Logging.Components[name] = lvl
	}

	if cfg.App.DebugMode {
		if doc.Logging.Level == nil {
			cfg.Logging.Level = LevelDebug
		}
		for name, lvl := range cfg.Logging.Components {
			if _, explicit := doc.Logging.Components[name]; explicit {
				continue
			}
			if lvl == LevelInfo {
				cfg.Logging.Components[name] = LevelDebug
			}
		}
	}

	return cfg, nil
}

// overrideLevel parses an optional level string into dst, tagging parse
// failures with the configuration key.
func overrideLevel(dst *Level, src *string, key string) error {
	if src == nil {
		return nil
	}
	lvl, err := ParseLevel(*src)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
	}
	*dst = lvl
	return nil
}
