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

package httplog_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/mixpilot/logkit"
	"github.com/mixpilot/logkit/httplog"
)

func init() {
	otel.SetTextMapPropagator(propagation.TraceContext{})
}

// roundTripFunc adapts a function into an http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

type memoryHandler struct {
	mu      sync.Mutex
	records []logkit.Record
}

func (h *memoryHandler) Enabled(logkit.Level) bool { return true }

func (h *memoryHandler) Handle(r logkit.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *memoryHandler) Close() error { return nil }

func (h *memoryHandler) Records() []logkit.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]logkit.Record(nil), h.records...)
}

func testLogger(t *testing.T) (*logkit.Logger, *memoryHandler) {
	t.Helper()
	reg := logkit.NewRegistry()
	sink := &memoryHandler{}
	reg.Root().AddHandler(sink)
	logger := reg.Logger("external_api")
	logger.SetLevel(logkit.LevelDebug)
	return logger, sink
}

func newRequest(t *testing.T, ctx context.Context) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://api.example/v1/tracks", nil)
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestTransportLogsSuccess(t *testing.T) {
	t.Parallel()

	logger, sink := testLogger(t)
	rt := httplog.NewTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK}, nil
	}), logger)

	resp, err := rt.RoundTrip(newRequest(t, context.Background()))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want response passed through", resp.StatusCode)
	}

	records := sink.Records()
	if len(records) != 2 {
		t.Fatalf("got %d records, want call and completion", len(records))
	}
	if records[0].Message != "Calling GET http://api.example/v1/tracks" {
		t.Errorf("call record = %q", records[0].Message)
	}
	done := records[1]
	if !strings.HasPrefix(done.Message, "Completed GET http://api.example/v1/tracks in ") ||
		!strings.HasSuffix(done.Message, " seconds") {
		t.Errorf("completion record = %q", done.Message)
	}
	if len(done.Fields) != 1 || done.Fields[0].Key != "status" || done.Fields[0].Value.Int64() != 200 {
		t.Errorf("completion fields = %v, want status=200", done.Fields)
	}
}

func TestTransportLogsFailure(t *testing.T) {
	t.Parallel()

	logger, sink := testLogger(t)
	boom := errors.New("connection refused")
	rt := httplog.NewTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	}), logger)

	_, err := rt.RoundTrip(newRequest(t, context.Background()))
	if !errors.Is(err, boom) {
		t.Fatalf("RoundTrip returned %v, want the transport error unchanged", err)
	}

	records := sink.Records()
	if len(records) != 2 {
		t.Fatalf("got %d records, want call and failure", len(records))
	}
	fail := records[1]
	if fail.Level != logkit.LevelError {
		t.Errorf("failure record level = %v, want ERROR", fail.Level)
	}
	if !strings.Contains(fail.Message, "Exception in GET http://api.example/v1/tracks after ") ||
		!strings.HasSuffix(fail.Message, ": connection refused") {
		t.Errorf("failure record = %q", fail.Message)
	}
}

func TestTransportInjectsTraceparent(t *testing.T) {
	t.Parallel()

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger, _ := testLogger(t)
	var seen string
	rt := httplog.NewTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		seen = req.Header.Get("traceparent")
		return &http.Response{StatusCode: http.StatusOK}, nil
	}), logger)

	if _, err := rt.RoundTrip(newRequest(t, ctx)); err != nil {
		t.Fatal(err)
	}
	want := "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	if seen != want {
		t.Errorf("traceparent = %q, want %q", seen, want)
	}
}

func TestTransportKeepsExistingTraceparent(t *testing.T) {
	t.Parallel()

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger, _ := testLogger(t)
	const manual = "00-aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa-bbbbbbbbbbbbbbbb-01"
	var seen string
	rt := httplog.NewTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		seen = req.Header.Get("traceparent")
		return &http.Response{StatusCode: http.StatusOK}, nil
	}), logger)

	req := newRequest(t, ctx)
	req.Header.Set("traceparent", manual)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatal(err)
	}
	if seen != manual {
		t.Errorf("traceparent = %q, want caller's header preserved", seen)
	}
}

func TestTransportSkip(t *testing.T) {
	t.Parallel()

	logger, sink := testLogger(t)
	rt := httplog.NewTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK}, nil
	}), logger, httplog.WithSkip(func(req *http.Request) bool {
		return strings.HasSuffix(req.URL.Path, "/tracks")
	}))

	if _, err := rt.RoundTrip(newRequest(t, context.Background())); err != nil {
		t.Fatal(err)
	}
	if records := sink.Records(); len(records) != 0 {
		t.Errorf("skipped request produced %d records", len(records))
	}
}

func TestTransportLevelOption(t *testing.T) {
	t.Parallel()

	logger, sink := testLogger(t)
	rt := httplog.NewTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK}, nil
	}), logger, httplog.WithLevel(logkit.LevelInfo))

	if _, err := rt.RoundTrip(newRequest(t, context.Background())); err != nil {
		t.Fatal(err)
	}
	records := sink.Records()
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, r := range records {
		if r.Level != logkit.LevelInfo {
			t.Errorf("record %q at %v, want INFO", r.Message, r.Level)
		}
	}
}
