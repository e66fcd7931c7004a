package project

import (
	"log/slog"

	"github.com/getmockd/soapmock/pkg/logging"
	"github.com/getmockd/soapmock/pkg/progress"
)

// Manager creates, generates, lists, and deletes projects under a Layout.
type Manager struct {
	layout   Layout
	logger   *slog.Logger
	reporter progress.Reporter
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = logging.OrNop(l) }
}

// WithReporter sets the progress reporter.
func WithReporter(r progress.Reporter) Option {
	return func(m *Manager) { m.reporter = progress.OrNop(r) }
}

// NewManager creates a Manager for the given layout.
func NewManager(layout Layout, opts ...Option) *Manager {
	m := &Manager{
		layout:   layout,
		logger:   logging.Nop(),
		reporter: progress.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Layout returns the layout the manager operates on.
func (m *Manager) Layout() Layout {
	return m.layout
}
