package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError is a caller-facing failure. Problems inside a resume are never
// AppErrors; they are reported as validation issues.
type AppError struct {
	Type    ErrorType      `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"cause,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func newAppError(typ ErrorType, code, message string, cause error) *AppError {
	return &AppError{
		Type:    typ,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, code, message, cause)
}

func NewIOError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeIO, code, message, cause)
}

func NewNetworkError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeNetwork, code, message, cause)
}

func NewConfigError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeConfig, code, message, cause)
}

func NewStorageError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeStorage, code, message, cause)
}

func NewInternalError(code, message string, cause error) *AppError {
	return newAppError(ErrorTypeInternal, code, message, cause)
}

// WithContext adds context to an error
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// IsType reports whether any AppError in err's chain has the given type.
func IsType(err error, typ ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == typ
	}
	return false
}

// Logger wraps slog with application-specific methods
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a JSON logger on stderr so command output on stdout
// stays machine-readable.
func NewLogger(level slog.Level) *Logger {
	return NewLoggerWithWriter(os.Stderr, level)
}

func NewLoggerWithWriter(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{logger: slog.New(handler)}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	return NewLoggerWithWriter(io.Discard, slog.LevelError)
}

// LogError logs an application error with appropriate level and context
func (l *Logger) LogError(err error, message string, args ...any) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		logArgs := []any{
			"error_type", appErr.Type,
			"error_code", appErr.Code,
			"error_message", appErr.Message,
		}
		if appErr.Cause != nil {
			logArgs = append(logArgs, "cause", appErr.Cause.Error())
		}
		for key, value := range appErr.Context {
			logArgs = append(logArgs, key, value)
		}
		logArgs = append(logArgs, args...)
		l.logger.Error(message, logArgs...)
		return
	}

	logArgs := append([]any{"error", err.Error()}, args...)
	l.logger.Error(message, logArgs...)
}

func (l *Logger) Info(message string, args ...any) {
	l.logger.Info(message, args...)
}

func (l *Logger) Debug(message string, args ...any) {
	l.logger.Debug(message, args...)
}

func (l *Logger) Warn(message string, args ...any) {
	l.logger.Warn(message, args...)
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

// New creates a new logger instance
func New(level string) (*Logger, error) {
	slogLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return NewLogger(slogLevel), nil
}

func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// Common error codes
const (
	ErrCodeFileNotFound     = "FILE_NOT_FOUND"
	ErrCodeFileNotReadable  = "FILE_NOT_READABLE"
	ErrCodeFileWriteFailed  = "FILE_WRITE_FAILED"
	ErrCodeInvalidFormat    = "INVALID_FORMAT"
	ErrCodeInvalidDocument  = "INVALID_DOCUMENT"
	ErrCodeUnknownStrategy  = "UNKNOWN_STRATEGY"
	ErrCodeUnknownTemplate  = "UNKNOWN_TEMPLATE"
	ErrCodeUnknownTheme     = "UNKNOWN_THEME"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeMissingAPIKey    = "MISSING_API_KEY"
	ErrCodeNetworkTimeout   = "NETWORK_TIMEOUT"
	ErrCodeInvalidConfig    = "INVALID_CONFIG"
	ErrCodeNotLoaded        = "NOT_LOADED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeWatchFailed      = "WATCH_FAILED"
)
