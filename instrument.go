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
	"fmt"
	"runtime"
	"strings"
	"time"
)

// maxResultRepr is the longest result representation Traced will log before
// truncating with an ellipsis.
const maxResultRepr = 1000

// TraceOptions control what Traced records around a call.
type TraceOptions struct {
	// LogArgs includes argument representations in the pre-call record.
	LogArgs bool
	// LogResult emits a post-call record with the result representation.
	LogResult bool
}

// Timed runs fn, emitting a start record and a completion record carrying
// the elapsed time at the given level. If fn returns an error, an
// error-severity record with the elapsed time and the error text is emitted
// instead, and the original error is returned to the caller unchanged.
//
// A nil logger defaults to one named after the calling package, mirroring
// GetLogger on the caller's module.
func Timed[T any](l *Logger, level Level, name string, fn func() (T, error)) (T, error) {
	if l == nil {
		l = GetLogger(callerPackage(1))
	}
	start := time.Now()
	l.Log(context.Background(), level, "Starting "+name)

	result, err := fn()
	elapsed := time.Since(start).Seconds()
	if err != nil {
		l.Error(fmt.Sprintf("Exception in %s after %.4f seconds: %v", name, elapsed, err))
		return result, err
	}
	l.Log(context.Background(), level, fmt.Sprintf("Completed %s in %.4f seconds", name, elapsed))
	return result, nil
}

// TimedFunc is the defer-style face of Timed for call sites without a result
// value. It emits the start record immediately and returns a completion
// function to defer; pass a pointer to the surrounding function's error to
// get the error-severity record on failure, or nil if there is no error to
// report.
//
//	func rebuildIndex() (err error) {
//	    defer logkit.TimedFunc(logger, logkit.LevelDebug, "rebuildIndex")(&err)
//	    ...
//	}
func TimedFunc(l *Logger, level Level, name string) func(errp *error) {
	if l == nil {
		l = GetLogger(callerPackage(1))
	}
	start := time.Now()
	l.Log(context.Background(), level, "Starting "+name)

	return func(errp *error) {
		elapsed := time.Since(start).Seconds()
		if errp != nil && *errp != nil {
			l.Error(fmt.Sprintf("Exception in %s after %.4f seconds: %v", name, elapsed, *errp))
			return
		}
		l.Log(context.Background(), level, fmt.Sprintf("Completed %s in %.4f seconds", name, elapsed))
	}
}

// Traced runs fn, emitting a pre-call record naming the operation (with
// argument representations when opts.LogArgs is set) and, when
// opts.LogResult is set and fn succeeds, a post-call record with the
// result's representation truncated to 1000 runes. Errors from fn propagate
// unchanged and unrecorded; pair with Timed when failures should be logged.
func Traced[T any](l *Logger, level Level, name string, opts TraceOptions, fn func() (T, error), args ...any) (T, error) {
	if l == nil {
		l = GetLogger(callerPackage(1))
	}

	msg := "Calling " + name
	if opts.LogArgs && len(args) > 0 {
		reprs := make([]string, len(args))
		for i, a := range args {
			reprs[i] = fmt.Sprintf("%v", a)
		}
		msg += " with args: " + strings.Join(reprs, ", ")
	}
	l.Log(context.Background(), level, msg)

	result, err := fn()
	if err != nil {
		return result, err
	}
	if opts.LogResult {
		repr := fmt.Sprintf("%v", result)
		if runes := []rune(repr); len(runes) > maxResultRepr {
			repr = string(runes[:maxResultRepr]) + "..."
		}
		l.Log(context.Background(), level, fmt.Sprintf("%s returned: %s", name, repr))
	}
	return result, nil
}

// callerPackage resolves the short package name skip+1 frames up the stack,
// used to default the instrumentation logger the way a decorator would use
// the wrapped function's module name.
func callerPackage(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	name := fn.Name() // e.g. github.com/mixpilot/app/capture.Run
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}
