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
	"time"
)

// Record is one log event, fully materialized at emit time. The Fields slice
// is the merged context snapshot (logger-bound fields, context layers, trace
// correlation fields, then per-call attributes) captured synchronously when
// the record was created; it is never re-evaluated afterwards. Records are
// treated as immutable by every sink.
type Record struct {
	Time       time.Time
	Level      Level
	LoggerName string
	Message    string
	Fields     []slog.Attr
	File       string // base name of the emitting source file, "" if unknown
	Line       int
}
