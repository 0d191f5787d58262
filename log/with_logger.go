package log

import (
	"github.com/motioncore/fibersync/log/tag"
)

type (
	// withLogger adds tags to log messages.
	withLogger struct {
		logger Logger
		tags   []tag.Tag
	}
)

var _ Logger = (*withLogger)(nil)

// With returns Logger instance that prepend every log entry with tags. If logger implements
// WithLogger interface, logger.With() is used instead, which is potentially more efficient.
func With(logger Logger, tags ...tag.Tag) Logger {
	if wl, ok := logger.(WithLogger); ok {
		return wl.With(tags...)
	}
	return newWithLogger(logger, tags...)
}

// Skip returns Logger instance with the extra caller skip. If logger does not
// implement SkipLogger interface, it is returned unchanged.
func Skip(logger Logger, extraSkip int) Logger {
	if sl, ok := logger.(SkipLogger); ok {
		return sl.Skip(extraSkip)
	}
	return logger
}

func newWithLogger(logger Logger, tags ...tag.Tag) *withLogger {
	return &withLogger{logger: logger, tags: tags}
}

func (l *withLogger) prependTags(tags []tag.Tag) []tag.Tag {
	allTags := make([]tag.Tag, 0, len(l.tags)+len(tags))
	allTags = append(allTags, l.tags...)
	allTags = append(allTags, tags...)
	return allTags
}

// Debug writes message to the log (if enabled).
func (l *withLogger) Debug(msg string, tags ...tag.Tag) {
	l.logger.Debug(msg, l.prependTags(tags)...)
}

// Info writes message to the log (if enabled).
func (l *withLogger) Info(msg string, tags ...tag.Tag) {
	l.logger.Info(msg, l.prependTags(tags)...)
}

// Warn writes message to the log (if enabled).
func (l *withLogger) Warn(msg string, tags ...tag.Tag) {
	l.logger.Warn(msg, l.prependTags(tags)...)
}

// Error writes message to the log (if enabled).
func (l *withLogger) Error(msg string, tags ...tag.Tag) {
	l.logger.Error(msg, l.prependTags(tags)...)
}

// Fatal writes message to the log (if enabled).
func (l *withLogger) Fatal(msg string, tags ...tag.Tag) {
	l.logger.Fatal(msg, l.prependTags(tags)...)
}
