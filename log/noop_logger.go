package log

import (
	"github.com/motioncore/fibersync/log/tag"
)

type noopLogger struct{}

var _ Logger = (*noopLogger)(nil)

// NewNoopLogger returns a logger that discards all messages.
func NewNoopLogger() *noopLogger {
	return &noopLogger{}
}

func (n *noopLogger) Debug(string, ...tag.Tag) {}
func (n *noopLogger) Info(string, ...tag.Tag)  {}
func (n *noopLogger) Warn(string, ...tag.Tag)  {}
func (n *noopLogger) Error(string, ...tag.Tag) {}
func (n *noopLogger) Fatal(string, ...tag.Tag) {}
func (n *noopLogger) With(...tag.Tag) Logger   { return n }
