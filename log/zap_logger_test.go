package log

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/motioncore/fibersync/log/tag"
)

type LogSuite struct {
	*require.Assertions
	suite.Suite
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogSuite))
}

func (s *LogSuite) SetupTest() {
	s.Assertions = require.New(s.T())
}

func (s *LogSuite) TestParseZapLevel() {
	s.Equal(zap.DebugLevel, parseZapLevel("debug"))
	s.Equal(zap.InfoLevel, parseZapLevel("info"))
	s.Equal(zap.WarnLevel, parseZapLevel("warn"))
	s.Equal(zap.ErrorLevel, parseZapLevel("error"))
	s.Equal(zap.FatalLevel, parseZapLevel("fatal"))
	s.Equal(zap.InfoLevel, parseZapLevel("unknown"))
}

func (s *LogSuite) TestZapLogger() {
	core, observed := observer.New(zap.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Info("some message", tag.Name("some-name"), tag.Counter(42))

	logs := observed.TakeAll()
	s.Len(logs, 1)
	entry := logs[0]
	s.Equal("some message", entry.Message)
	s.Equal(zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	s.Equal("some-name", fields["name"])
	s.EqualValues(42, fields["counter"])

	callAt, ok := fields[tag.LoggingCallAtKey].(string)
	s.True(ok)
	s.Contains(callAt, "zap_logger_test.go")
}

func (s *LogSuite) TestZapLogger_EmptyMessage() {
	core, observed := observer.New(zap.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Warn("")

	logs := observed.TakeAll()
	s.Len(logs, 1)
	s.Equal(defaultMsgForEmpty, logs[0].Message)
}

func (s *LogSuite) TestZapLogger_DisabledLevel() {
	core, observed := observer.New(zap.WarnLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")

	logs := observed.TakeAll()
	s.Len(logs, 1)
	s.Equal("kept", logs[0].Message)
}

func (s *LogSuite) TestWith_ZapLogger() {
	core, observed := observer.New(zap.DebugLevel)
	logger := With(NewZapLogger(zap.New(core)), tag.ComponentName("stress-host"))

	logger.Info("some message")

	logs := observed.TakeAll()
	s.Len(logs, 1)
	s.Equal("stress-host", logs[0].ContextMap()["component"])
}

func (s *LogSuite) TestWith_PlainLogger() {
	ctrl := gomock.NewController(s.T())
	mockLogger := NewMockLogger(ctrl)

	wrapped := With(mockLogger, tag.Name("prefixed"))
	mockLogger.EXPECT().Info("some message", tag.Name("prefixed"), tag.Counter(1))
	wrapped.Info("some message", tag.Counter(1))
}

func (s *LogSuite) TestSkip() {
	logger := NewTestLogger()
	skipped := Skip(logger, 2).(*zapLogger)
	s.Equal(logger.skip+2, skipped.skip)
}

func (s *LogSuite) TestNoopLogger() {
	logger := NewNoopLogger()
	logger.Info("dropped", tag.Name("some-name"))
	s.Equal(Logger(logger), With(logger, tag.Name("some-name")))
}
