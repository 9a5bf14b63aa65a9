package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug is for pipeline tracing: dropped declarations, sort order
	LevelDebug Level = iota
	// LevelInfo is for operational events such as loaded files
	LevelInfo
	// LevelWarn is for input that was skipped but did not stop the run
	LevelWarn
	// LevelError is for failures reported at the CLI boundary
	LevelError
)

const name = "sass2ts"

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel maps "debug", "info", "warn" or "error" to a Level
func ParseLevel(s string) (Level, error) {
	for l, n := range levelNames {
		if strings.EqualFold(s, n) {
			return l, nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// swappableWriter lets SetOutput redirect loggers that were already handed out
type swappableWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *swappableWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Drop output if nil (e.g., during test cleanup)
	if s.w == nil {
		return len(p), nil
	}
	return s.w.Write(p)
}

func (s *swappableWriter) Sync() error {
	return nil
}

var (
	mu          sync.Mutex
	minLevel    = LevelInfo
	atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sink        = &swappableWriter{w: os.Stderr}
	root        = newRoot()
	sugar       = root.Sugar()
)

func newRoot() *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		NameKey:          "logger",
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	})
	return zap.New(zapcore.NewCore(enc, sink, atomicLevel)).Named(name)
}

// SetOutput sets the output destination (primarily for testing)
func SetOutput(w io.Writer) {
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.w = w
}

// SetLevel sets the minimum log level to display
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
	atomicLevel.SetLevel(level.zapLevel())
}

// GetLevel returns the current minimum log level
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// Named returns a child logger for a component. It shares the output and
// level of the package logger.
func Named(component string) *zap.Logger {
	return root.Named(component)
}

// Sync flushes buffered output
func Sync() {
	_ = root.Sync()
}

// Debug logs a debug message
func Debug(format string, args ...any) {
	sugar.Debugf(format, args...)
}

// Info logs an info message
func Info(format string, args ...any) {
	sugar.Infof(format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	sugar.Warnf(format, args...)
}

// Error logs an error message
func Error(format string, args ...any) {
	sugar.Errorf(format, args...)
}
