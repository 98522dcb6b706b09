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
)

type contextKey int

const (
	fieldsContextKey contextKey = iota
	loggerContextKey
)

// fieldLayer is one scope's worth of key/value pairs. Layers form an
// immutable parent chain; entering a scope allocates exactly one layer and
// leaving it is simply a matter of no longer using the child context, so
// restoration holds on every exit path, including panics. Goroutines that
// are not handed the child context never observe its layer.
type fieldLayer struct {
	parent *fieldLayer
	attrs  []slog.Attr
}

// WithFields returns a child context carrying one additional layer of
// logging context. Records emitted through the *Context logger methods with
// the returned context include the merged fields of every layer on the
// chain. Nested calls stack; an inner layer shadows an outer value for the
// same key while keeping the key's original position.
func WithFields(ctx context.Context, attrs ...slog.Attr) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(attrs) == 0 {
		return ctx
	}
	parent, _ := ctx.Value(fieldsContextKey).(*fieldLayer)
	layer := &fieldLayer{
		parent: parent,
		attrs:  append([]slog.Attr(nil), attrs...),
	}
	return context.WithValue(ctx, fieldsContextKey, layer)
}

// ContextFields returns the merged snapshot of every context layer on ctx,
// outermost first. Key order is first-insertion order across layers; when an
// inner layer repeats a key, the value from the inner layer wins but the key
// keeps its original position. The returned slice is a copy owned by the
// caller. An empty or nil context yields nil.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	layer, _ := ctx.Value(fieldsContextKey).(*fieldLayer)
	if layer == nil {
		return nil
	}

	// Collect layers root-first so merging observes outer scopes before
	// inner ones.
	var chain []*fieldLayer
	for l := layer; l != nil; l = l.parent {
		chain = append(chain, l)
	}
	groups := make([][]slog.Attr, len(chain))
	for i, l := range chain {
		groups[len(chain)-1-i] = l.attrs
	}
	return mergeAttrs(groups...)
}

// ContextWithLogger returns a child context that stores logger so callers
// deeper in a call chain can retrieve a component-scoped logger without
// threading it explicitly.
func ContextWithLogger(ctx context.Context, logger *Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext retrieves a logger stored in ctx via ContextWithLogger. If no
// logger is found, the root logger is returned so callers always receive a
// usable logger.
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return GetLogger("")
	}
	if logger, ok := ctx.Value(loggerContextKey).(*Logger); ok && logger != nil {
		return logger
	}
	return GetLogger("")
}
