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

// Package rotate implements the size-rotating file writer behind the file
// sink. When a write would push the active file past the byte threshold,
// existing generations are renamed upward (path.1 becomes path.2 and so on),
// the active file becomes path.1, generations beyond the retention count are
// removed, and a fresh active file is opened. Writes and rotation are
// serialized by one mutex so concurrent emitters never interleave into a
// corrupted file.
package rotate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Writer is an io.WriteCloser that appends to a file and rotates it by size.
// A zero or negative maxBytes disables rotation. A backups count of zero
// means the active file is truncated in place when it fills.
type Writer struct {
	mu       sync.Mutex
	path     string
	maxBytes int64
	backups  int
	file     *os.File
	size     int64
}

// New creates the log directory if absent, opens the active file at path in
// append mode, and returns a Writer rotating at maxBytes with the given
// number of retained backups.
func New(path string, maxBytes int64, backups int) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("rotate: create log directory %q: %w", dir, err)
		}
	}
	if backups < 0 {
		backups = 0
	}
	w := &Writer{path: path, maxBytes: maxBytes, backups: backups}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

// open opens (or creates) the active file and records its current size.
// Caller must hold w.mu or be the constructor.
func (w *Writer) open() error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("rotate: open log file %q: %w", w.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("rotate: stat log file %q: %w", w.path, err)
	}
	w.file = f
	w.size = info.Size()
	return nil
}

// Write appends p to the active file, rotating first if the write would
// exceed the threshold. A single write larger than the threshold still lands
// in one file so records are never split.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, os.ErrClosed
	}
	if w.maxBytes > 0 && w.size > 0 && w.size+int64(len(p)) > w.maxBytes {
		if err := w.rotateLocked(); err != nil {
			return 0, err
		}
	}
	n, err := w.file.Write(p)
	w.size += int64(n)
	if err != nil {
		return n, fmt.Errorf("rotate: write log file %q: %w", w.path, err)
	}
	return n, nil
}

// rotateLocked shifts generations and reopens a fresh active file.
// Caller must hold w.mu.
func (w *Writer) rotateLocked() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("rotate: close active file %q: %w", w.path, err)
	}
	w.file = nil

	if w.backups == 0 {
		if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("rotate: truncate %q: %w", w.path, err)
		}
		return w.open()
	}

	// Oldest generation falls off the end.
	oldest := w.generation(w.backups)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rotate: remove oldest backup %q: %w", oldest, err)
	}
	for i := w.backups - 1; i >= 1; i-- {
		src := w.generation(i)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.Rename(src, w.generation(i+1)); err != nil {
			return fmt.Errorf("rotate: shift backup %q: %w", src, err)
		}
	}
	if err := os.Rename(w.path, w.generation(1)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rotate: archive active file %q: %w", w.path, err)
	}
	return w.open()
}

// generation returns the path of the n-th rotated backup (1 = newest).
func (w *Writer) generation(n int) string {
	return w.path + "." + strconv.Itoa(n)
}

// Size returns the current byte size of the active file.
func (w *Writer) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Close closes the active file. Further writes return os.ErrClosed.
// Close is idempotent.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	if err != nil {
		return fmt.Errorf("rotate: close log file %q: %w", w.path, err)
	}
	return nil
}

// Ensure Writer implements io.WriteCloser.
var _ io.WriteCloser = (*Writer)(nil)
