package log

import (
	"context"
	"fmt"
	"os"

	cerrors "github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	samerrors "github.com/HernanLe100/samboost/pkg/errors"
)

// ZerologProvider is the default LoggerProvider, backed by rs/zerolog. It also
// installs itself as the sink for the pkg/errors warning system so that
// boosting warnings come out as structured log events.
type ZerologProvider struct {
	base  zerolog.Logger
	level Level
}

// NewZerologProvider creates a provider writing JSON lines to stderr at the
// given minimum level.
//
//	provider := log.NewZerologProvider(log.ToLogLevel("info"))
//	logger := provider.GetLoggerWithName("AdaBoostClassifier")
func NewZerologProvider(level Level) *ZerologProvider {
	base := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(toZerologLevel(level))
	p := &ZerologProvider{base: base, level: level}

	samerrors.SetZerologWarnFunc(func(warning error) {
		ev := p.base.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(obj)
		}
		ev.Msg(warning.Error())
	})

	return p
}

// ToLogLevel converts a level name ("debug", "info", "warn", "error") to a
// Level. Unknown names panic; level names are configuration, not user input.
func ToLogLevel(level string) Level {
	switch level {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		panic(fmt.Sprintf("invalid log level: %s", level))
	}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	return &zerologLogger{base: p.base, level: p.level}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{
		base:  p.base.With().Str(ModelNameKey, name).Logger(),
		level: p.level,
	}
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *ZerologProvider) SetLevel(level Level) {
	p.level = level
	p.base = p.base.Level(toZerologLevel(level))
}

type zerologLogger struct {
	base  zerolog.Logger
	level Level
}

// Debug implements Logger.Debug.
func (l *zerologLogger) Debug(msg string, fields ...any) {
	l.emit(l.base.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (l *zerologLogger) Info(msg string, fields ...any) {
	l.emit(l.base.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (l *zerologLogger) Warn(msg string, fields ...any) {
	l.emit(l.base.Warn(), msg, fields)
}

// Error implements Logger.Error.
func (l *zerologLogger) Error(msg string, fields ...any) {
	l.emit(l.base.Error(), msg, fields)
}

// With implements Logger.With.
func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.base.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{base: ctx.Logger(), level: l.level}
}

// Enabled implements Logger.Enabled.
func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return l.level <= level
}

// emit attaches fields to the event. Error values additionally carry a
// stacktrace when one was recorded via cockroachdb/errors.
func (l *zerologLogger) emit(ev *zerolog.Event, msg string, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		value := fields[i+1]
		if err, ok := value.(error); ok {
			ev = ev.AnErr(key, err)
			if st := extractStacktrace(err); st != "" {
				ev = ev.Str(StacktraceKey, st)
			}
			continue
		}
		ev = ev.Interface(key, value)
	}
	ev.Msg(msg)
}

func extractStacktrace(err error) string {
	safeDetails := cerrors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
