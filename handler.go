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
	"io"
	"sync"

	"github.com/mixpilot/logkit/internal/rotate"
)

// Handler is a log sink with its own severity threshold and formatter.
// Handlers are independent of one another: a record may pass one handler's
// filter and fail another's. Implementations must be safe for concurrent
// Handle calls.
type Handler interface {
	// Enabled reports whether records at level should be written.
	Enabled(level Level) bool
	// Handle writes one record. The record must not be retained or mutated.
	Handle(r Record) error
	// Close releases any resources owned by the sink.
	Close() error
}

// ConsoleHandler writes formatted lines to an io.Writer, normally stdout.
// Writes are serialized by an internal mutex so concurrent emitters never
// interleave partial lines.
type ConsoleHandler struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
	fmtr  *Formatter
}

// NewConsoleHandler returns a console sink writing to w at the given
// threshold. A nil formatter gets the default console template without
// colors.
func NewConsoleHandler(w io.Writer, level Level, fmtr *Formatter) *ConsoleHandler {
	if fmtr == nil {
		fmtr = NewFormatter(DefaultConsoleTemplate, DefaultTimeFormat, false)
	}
	return &ConsoleHandler{out: w, level: level, fmtr: fmtr}
}

// Enabled reports whether level passes this sink's threshold.
func (h *ConsoleHandler) Enabled(level Level) bool { return level >= h.level }

// Handle formats r and writes it as one line.
func (h *ConsoleHandler) Handle(r Record) error {
	line := h.fmtr.Format(r)
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line+"\n")
	return err
}

// Close is a no-op; the console handler does not own its writer.
func (h *ConsoleHandler) Close() error { return nil }

// FileHandler writes formatted lines, colors always disabled, through a
// size-rotating file writer. Rotation and writes are serialized inside the
// rotating writer, so a record line is never split across generations.
type FileHandler struct {
	level Level
	fmtr  *Formatter
	w     *rotate.Writer
}

// NewFileHandler returns a file sink at the given threshold backed by w.
// A nil formatter gets the default file template. The handler takes
// ownership of w; Close closes it.
func NewFileHandler(w *rotate.Writer, level Level, fmtr *Formatter) *FileHandler {
	if fmtr == nil {
		fmtr = NewFormatter(DefaultFileTemplate, DefaultTimeFormat, false)
	}
	return &FileHandler{level: level, fmtr: fmtr, w: w}
}

// Enabled reports whether level passes this sink's threshold.
func (h *FileHandler) Enabled(level Level) bool { return level >= h.level }

// Handle formats r and appends it to the current log file.
func (h *FileHandler) Handle(r Record) error {
	_, err := io.WriteString(h.w, h.fmtr.Format(r)+"\n")
	return err
}

// Close closes the underlying rotating writer.
func (h *FileHandler) Close() error { return h.w.Close() }

var (
	_ Handler = (*ConsoleHandler)(nil)
	_ Handler = (*FileHandler)(nil)
)
