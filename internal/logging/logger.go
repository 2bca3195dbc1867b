package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/bigntt/internal/errors"
)

// Logger is the logging interface shared by every component.
type Logger interface {
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	// Error logs msg together with err, which may be nil.
	Error(msg string, err error, fields ...Field)
	Debug(msg string, fields ...Field)
	// With returns a Logger that attaches fields to every entry.
	With(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field   { return Field{Key: key, Value: value} }
func Int(key string, value int) Field   { return Field{Key: key, Value: value} }
func Uint(key string, value uint) Field { return Field{Key: key, Value: value} }

func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Hex renders value as a 0x-prefixed hexadecimal string.
func Hex(key string, value uint64) Field {
	return Field{Key: key, Value: fmt.Sprintf("%#x", value)}
}

// Err creates a field under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ParseLevel maps a level name (debug, info, warn, error, disabled) to a
// zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "off", "disabled", "none":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, apperrors.NewConfigError("unknown log level %q", name)
}

// ZerologAdapter backs Logger with a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger returns a JSON logger writing to w at the given level, tagged
// with the component name.
func NewLogger(w io.Writer, component string, level zerolog.Level) *ZerologAdapter {
	return NewZerologAdapter(
		zerolog.New(w).Level(level).With().Str("component", component).Timestamp().Logger(),
	)
}

// NewConsoleLogger returns a human-readable logger on stderr.
func NewConsoleLogger(component string, level zerolog.Level, noColor bool) *ZerologAdapter {
	out := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor, TimeFormat: "15:04:05"}
	return NewLogger(out, component, level)
}

func applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case int64:
			event = event.Int64(f.Key, v)
		case uint:
			event = event.Uint(f.Key, v)
		case uint64:
			event = event.Uint64(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		case fmt.Stringer:
			event = event.Stringer(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}

func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(z.logger.Info(), fields).Msg(msg)
}

func (z *ZerologAdapter) Warn(msg string, fields ...Field) {
	applyFields(z.logger.Warn(), fields).Msg(msg)
}

func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(z.logger.Error().Err(err), fields).Msg(msg)
}

func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(z.logger.Debug(), fields).Msg(msg)
}

func (z *ZerologAdapter) With(fields ...Field) Logger {
	ctx := z.logger.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &ZerologAdapter{logger: ctx.Logger()}
}

// StdLoggerAdapter backs Logger with a standard library *log.Logger.
type StdLoggerAdapter struct {
	logger *stdlog.Logger
	fields []Field
}

// NewStdLoggerAdapter wraps logger. Every level is written.
func NewStdLoggerAdapter(logger *stdlog.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

func (s *StdLoggerAdapter) emit(level, msg string, err error, fields []Field) {
	var b strings.Builder
	b.WriteString("[" + level + "] " + msg)
	if err != nil {
		b.WriteString(": " + err.Error())
	}
	for _, f := range append(s.fields[:len(s.fields):len(s.fields)], fields...) {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	s.logger.Println(b.String())
}

func (s *StdLoggerAdapter) Info(msg string, fields ...Field)  { s.emit("INFO", msg, nil, fields) }
func (s *StdLoggerAdapter) Warn(msg string, fields ...Field)  { s.emit("WARN", msg, nil, fields) }
func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) { s.emit("DEBUG", msg, nil, fields) }

func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	s.emit("ERROR", msg, err, fields)
}

func (s *StdLoggerAdapter) With(fields ...Field) Logger {
	return &StdLoggerAdapter{logger: s.logger, fields: append(s.fields[:len(s.fields):len(s.fields)], fields...)}
}

type nop struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

func (nop) Info(string, ...Field)         {}
func (nop) Warn(string, ...Field)         {}
func (nop) Error(string, error, ...Field) {}
func (nop) Debug(string, ...Field)        {}
func (n nop) With(...Field) Logger        { return n }
