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

package logkit_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/mixpilot/logkit"
)

func TestLevelOrdering(t *testing.T) {
	t.Parallel()

	ordered := []logkit.Level{
		logkit.LevelDebug,
		logkit.LevelInfo,
		logkit.LevelWarning,
		logkit.LevelError,
		logkit.LevelCritical,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("level %s (%d) not below %s (%d)",
				ordered[i-1], ordered[i-1], ordered[i], ordered[i])
		}
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level logkit.Level
		want  string
	}{
		{logkit.LevelDebug, "DEBUG"},
		{logkit.LevelInfo, "INFO"},
		{logkit.LevelWarning, "WARNING"},
		{logkit.LevelError, "ERROR"},
		{logkit.LevelCritical, "CRITICAL"},
		{logkit.LevelInfo + 1, "INFO+1"},
		{logkit.LevelError + 2, "ERROR+2"},
		{logkit.LevelCritical + 3, "CRITICAL+3"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevelImplementsLeveler(t *testing.T) {
	t.Parallel()

	var leveler slog.Leveler = logkit.LevelCritical
	if got := leveler.Level(); got != slog.Level(12) {
		t.Errorf("LevelCritical.Level() = %v, want 12", got)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    logkit.Level
		wantErr bool
	}{
		{"DEBUG", logkit.LevelDebug, false},
		{"info", logkit.LevelInfo, false},
		{" Warning ", logkit.LevelWarning, false},
		{"ERROR", logkit.LevelError, false},
		{"critical", logkit.LevelCritical, false},
		{"TRACE", 0, true},
		{"", 0, true},
		{"WARN", 0, true}, // the closed set uses WARNING
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := logkit.ParseLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLevel(%q) = %v, want error", tt.in, got)
				}
				if !errors.Is(err, logkit.ErrInvalidLevel) {
					t.Errorf("ParseLevel(%q) error = %v, want ErrInvalidLevel", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) returned %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
