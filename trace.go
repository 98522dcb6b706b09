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
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Field names under which trace correlation IDs join a record's context.
const (
	// TraceIDKey carries the 32-char lowercase hex trace ID.
	TraceIDKey = "trace_id"
	// SpanIDKey carries the 16-char lowercase hex span ID.
	SpanIDKey = "span_id"
)

// TraceAttrs extracts OpenTelemetry trace correlation fields from ctx.
// If ctx carries a valid span context, the returned attributes hold the raw
// trace and span IDs; otherwise nil is returned and records are unaffected.
//
// This function is intentionally light-weight: it does not create spans,
// does not parse headers, and does not mutate context. Upstream
// instrumentation must populate the span context before emit time.
func TraceAttrs(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []slog.Attr{
		slog.String(TraceIDKey, sc.TraceID().String()),
		slog.String(SpanIDKey, sc.SpanID().String()),
	}
}
