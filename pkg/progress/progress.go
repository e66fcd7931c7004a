// Package progress carries human-readable progress messages from core
// operations to whatever front-end invoked them (CLI, GUI, API).
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Level classifies a progress message.
type Level string

// Message levels.
const (
	LevelInfo Level = "info"
	LevelWarn Level = "warn"
)

// Reporter receives progress messages.
type Reporter interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Nop returns a Reporter that drops every message.
func Nop() Reporter { return nopReporter{} }

type nopReporter struct{}

func (nopReporter) Infof(string, ...any) {}
func (nopReporter) Warnf(string, ...any) {}

// OrNop returns r, or a no-op reporter when r is nil.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop()
	}
	return r
}

// Writer prints one line per message to w. Warnings are prefixed with
// "Warning: ".
type Writer struct {
	w io.Writer
}

// NewWriter creates a Reporter that prints to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (p *Writer) Infof(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Writer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.w, "Warning: "+format+"\n", args...)
}

// Logger forwards messages to a slog.Logger.
type Logger struct {
	l *slog.Logger
}

// NewLogger creates a Reporter that logs through l.
func NewLogger(l *slog.Logger) *Logger {
	return &Logger{l: l}
}

func (p *Logger) Infof(format string, args ...any) {
	p.l.Info(fmt.Sprintf(format, args...))
}

func (p *Logger) Warnf(format string, args ...any) {
	p.l.Warn(fmt.Sprintf(format, args...))
}

// Message is a single recorded progress message.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Recorder keeps every message in memory so a caller can render them later.
// It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Infof(format string, args ...any) {
	r.add(LevelInfo, fmt.Sprintf(format, args...))
}

func (r *Recorder) Warnf(format string, args ...any) {
	r.add(LevelWarn, fmt.Sprintf(format, args...))
}

func (r *Recorder) add(level Level, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: level, Text: text})
}

// Messages returns a copy of the recorded messages in order.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Texts returns the text of each recorded message in order.
func (r *Recorder) Texts() []string {
	msgs := r.Messages()
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

// Multi fans messages out to several reporters.
func Multi(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

type multiReporter []Reporter

func (m multiReporter) Infof(format string, args ...any) {
	for _, r := range m {
		r.Infof(format, args...)
	}
}

func (m multiReporter) Warnf(format string, args ...any) {
	for _, r := range m {
		r.Warnf(format, args...)
	}
}
