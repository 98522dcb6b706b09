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
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Default line templates and timestamp layout. Templates substitute the
// tokens {time}, {level}, {name}, {source} and {message}; anything else is
// copied through literally.
const (
	DefaultConsoleTemplate = "{time} - {level} - {name} - {message}"
	DefaultFileTemplate    = "{time} - {level} - {name} - {source} - {message}"
	DefaultTimeFormat      = "2006-01-02 15:04:05,000"
)

type fieldKind int

const (
	fieldLiteral fieldKind = iota
	fieldTime
	fieldLevel
	fieldName
	fieldSource
	fieldMessage
)

var templateFields = map[string]fieldKind{
	"time":    fieldTime,
	"level":   fieldLevel,
	"name":    fieldName,
	"source":  fieldSource,
	"message": fieldMessage,
}

type segment struct {
	field   fieldKind
	literal string
}

// Formatter renders a Record as a single text line according to a parsed
// template. When the record carries context fields, a bracketed
// "key=value key2=value2" suffix is appended to the message before template
// substitution, preserving the merged context's insertion order.
//
// When colors are enabled the level name is wrapped in an ANSI escape
// sequence selected by severity. A Formatter is immutable after construction
// and safe for concurrent use.
type Formatter struct {
	segments   []segment
	timeFormat string
	useColors  bool
}

// NewFormatter parses template into a Formatter. Empty template or
// timeFormat fall back to DefaultConsoleTemplate and DefaultTimeFormat.
// useColors controls ANSI coloring of the level name; it must be false for
// file sinks.
func NewFormatter(template, timeFormat string, useColors bool) *Formatter {
	if template == "" {
		template = DefaultConsoleTemplate
	}
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}
	return &Formatter{
		segments:   parseTemplate(template),
		timeFormat: timeFormat,
		useColors:  useColors,
	}
}

// Format renders r as one line, without a trailing newline.
func (f *Formatter) Format(r Record) string {
	msg := r.Message
	if len(r.Fields) > 0 {
		var b strings.Builder
		b.WriteString(msg)
		b.WriteString(" [")
		for i, a := range r.Fields {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(a.Key)
			b.WriteByte('=')
			b.WriteString(a.Value.String())
		}
		b.WriteByte(']')
		msg = b.String()
	}

	var out strings.Builder
	for _, s := range f.segments {
		switch s.field {
		case fieldLiteral:
			out.WriteString(s.literal)
		case fieldTime:
			out.WriteString(r.Time.Format(f.timeFormat))
		case fieldLevel:
			name := r.Level.String()
			if f.useColors {
				name = levelColor(r.Level).Sprint(name)
			}
			out.WriteString(name)
		case fieldName:
			out.WriteString(displayName(r.LoggerName))
		case fieldSource:
			if r.File != "" {
				fmt.Fprintf(&out, "%s:%d", r.File, r.Line)
			}
		case fieldMessage:
			out.WriteString(msg)
		}
	}
	return out.String()
}

// parseTemplate splits tmpl into literal and field segments. Unknown or
// unterminated {tokens} are kept as literal text.
func parseTemplate(tmpl string) []segment {
	var segs []segment
	var lit strings.Builder
	for i := 0; i < len(tmpl); {
		if tmpl[i] == '{' {
			if j := strings.IndexByte(tmpl[i:], '}'); j > 0 {
				if kind, ok := templateFields[tmpl[i+1:i+j]]; ok {
					if lit.Len() > 0 {
						segs = append(segs, segment{literal: lit.String()})
						lit.Reset()
					}
					segs = append(segs, segment{field: kind})
					i += j + 1
					continue
				}
			}
		}
		lit.WriteByte(tmpl[i])
		i++
	}
	if lit.Len() > 0 {
		segs = append(segs, segment{literal: lit.String()})
	}
	return segs
}

// displayName maps the root logger's empty name to "root" for output.
func displayName(name string) string {
	if name == "" {
		return "root"
	}
	return name
}

// The five fixed severity colors. EnableColor is forced at construction so
// rendering stays deterministic regardless of the process's TTY state; the
// sink decides whether colors are used at all.
var (
	debugColor    = newLevelColor(color.FgBlue)
	infoColor     = newLevelColor(color.FgGreen)
	warningColor  = newLevelColor(color.FgYellow)
	errorColor    = newLevelColor(color.FgRed)
	criticalColor = newLevelColor(color.FgRed, color.Bold)
)

func newLevelColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// levelColor selects the color for a level, bucketing intermediate values
// with their nearest lower defined level.
func levelColor(l Level) *color.Color {
	switch {
	case l >= LevelCritical:
		return criticalColor
	case l >= LevelError:
		return errorColor
	case l >= LevelWarning:
		return warningColor
	case l >= LevelInfo:
		return infoColor
	default:
		return debugColor
	}
}
