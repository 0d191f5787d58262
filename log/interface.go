//go:generate mockgen -package $GOPACKAGE -source $GOFILE -destination interface_mock.go

package log

import (
	"github.com/motioncore/fibersync/log/tag"
)

type (
	// Logger is the logging interface.
	// Usage example:
	//  logger.Info("wait finished",
	//          tag.Name("round-gate"),
	//          tag.WaitDuration(elapsed),
	//	 )
	//  Note: msg should be static, do not use fmt.Sprintf() for msg.
	//  Anything dynamic should be tagged.
	Logger interface {
		Debug(msg string, tags ...tag.Tag)
		Info(msg string, tags ...tag.Tag)
		Warn(msg string, tags ...tag.Tag)
		Error(msg string, tags ...tag.Tag)
		Fatal(msg string, tags ...tag.Tag)
	}

	// WithLogger is an optional interface for loggers that can return a new
	// instance with prepended tags. When it is not implemented, an internal
	// (not very efficient) prepender is used instead. See With.
	WithLogger interface {
		With(tags ...tag.Tag) Logger
	}

	// SkipLogger is an optional interface for loggers that can skip extra
	// stack frames when resolving the caller (useful for wrappers that log on
	// behalf of their own callers).
	SkipLogger interface {
		Skip(extraSkip int) Logger
	}
)
