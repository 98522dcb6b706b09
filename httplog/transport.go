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

// Package httplog provides an outbound http.RoundTripper that applies the
// call-timing contract to HTTP requests: a pre-call record, a completion
// record with status and elapsed time, and an error-severity record when the
// round trip fails, all emitted through a logkit logger with the request
// context's fields attached. It also propagates the W3C traceparent header
// from the request context so downstream services can correlate records.
package httplog

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/mixpilot/logkit"
)

// Option configures the behavior of NewTransport.
type Option func(*config)

type config struct {
	level             logkit.Level
	injectTraceparent bool
	skip              func(*http.Request) bool
}

// WithLevel sets the severity of the pre-call and completion records
// (default logkit.LevelDebug). Failures are always recorded at error
// severity.
func WithLevel(level logkit.Level) Option {
	return func(c *config) { c.level = level }
}

// WithInjectTraceparent enables or disables W3C traceparent injection
// (default: true). An existing traceparent header is never overwritten.
func WithInjectTraceparent(on bool) Option {
	return func(c *config) { c.injectTraceparent = on }
}

// WithSkip sets a predicate that suppresses both logging and header
// injection for matching requests, e.g. health checks or third-party hosts.
func WithSkip(f func(*http.Request) bool) Option {
	return func(c *config) { c.skip = f }
}

// NewTransport wraps base (or http.DefaultTransport if nil) with request
// logging. A nil logger defaults to the external_api component logger.
func NewTransport(base http.RoundTripper, logger *logkit.Logger, opts ...Option) http.RoundTripper {
	cfg := config{
		level:             logkit.LevelDebug,
		injectTraceparent: true,
	}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = logkit.GetLogger("external_api")
	}
	return &transport{base: base, logger: logger, cfg: cfg}
}

type transport struct {
	base   http.RoundTripper
	logger *logkit.Logger
	cfg    config
}

// RoundTrip implements http.RoundTripper. It logs around the wrapped
// transport and never alters the response or error it returns.
func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.cfg.skip != nil && t.cfg.skip(req) {
		return t.base.RoundTrip(req)
	}

	ctx := req.Context()
	if t.cfg.injectTraceparent && req.Header.Get("traceparent") == "" {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
		}
	}

	call := req.Method + " " + req.URL.Redacted()
	start := time.Now()
	t.logger.Log(ctx, t.cfg.level, "Calling "+call)

	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		t.logger.ErrorContext(ctx, fmt.Sprintf("Exception in %s after %.4f seconds: %v", call, elapsed, err))
		return resp, err
	}
	t.logger.Log(ctx, t.cfg.level,
		fmt.Sprintf("Completed %s in %.4f seconds", call, elapsed),
		slog.Int("status", resp.StatusCode))
	return resp, nil
}

var _ http.RoundTripper = (*transport)(nil)
