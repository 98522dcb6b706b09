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

// Package logkit provides the application-wide contextual logging system:
// named component loggers arranged in a dotted hierarchy, nested key/value
// logging context carried on [context.Context], a colored console sink, a
// size-rotating file sink, and instrumentation combinators for call timing
// and call tracing.
//
// The vocabulary builds on the standard library's [log/slog]: fields are
// [slog.Attr], the severity type keeps slog's integer representation, and
// dynamic levels ride on [slog.LevelVar].
//
// Obtain a logger for a component and emit:
//
//	logger := logkit.GetLogger("data_capture")
//	logger.Info("capture started", slog.String("deck", "A"))
//
// Attach ambient context for a scope by deriving a context; every record
// emitted through the *Context methods with that context carries the merged
// fields of all enclosing scopes, inner keys shadowing outer ones:
//
//	ctx = logkit.WithFields(ctx, slog.String("track_id", "123"))
//	logger.InfoContext(ctx, "analyzing track") // ... [track_id=123]
//
// Configure sinks and per-component levels once at startup, from a JSON or
// YAML file or from the built-in defaults:
//
//	if err := logkit.Initialize("config.json"); err != nil {
//	    // defaults are active; err says why the file was not used
//	}
//
// Reconfiguration tears down previously attached sinks before attaching new
// ones, so repeating Initialize never duplicates output. Records below a
// logger's effective threshold are dropped before any formatting work.
package logkit
