// Package logger emits structured JSON logs, one entry per line on stdout.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"
	"time"
)

// ErrorObject represents the error format inside a log entry.
type ErrorObject struct {
	Msg   string `json:"msg"`
	Stack string `json:"stack"`
}

// LogEntry represents the structured log format.
type LogEntry struct {
	Timestamp string       `json:"timestamp"`
	Level     string       `json:"level"`
	Service   string       `json:"service"`
	Action    string       `json:"action"`
	Message   string       `json:"message"`
	Hostname  string       `json:"hostname"`
	RequestID string       `json:"request_id"`
	Error     *ErrorObject `json:"error,omitempty"`
	Details   any          `json:"details,omitempty"`
}

// Logger is a structured logger bound to one service name.
type Logger struct {
	service  string
	hostname string
}

// NewLogger creates a logger for the named service.
func NewLogger(service string) *Logger {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return &Logger{service: service, hostname: hostname}
}

// ctxKey is an unexported context key type.
type ctxKey string

const requestIDKey ctxKey = "request_id"

// WithRequestID returns a context carrying a request id (useful for HTTP/mq hops).
func (logger *Logger) WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func requestIDFrom(ctx context.Context) string {
	if s, ok := ctx.Value(requestIDKey).(string); ok {
		return s
	}
	return ""
}

// emit builds the common entry fields and writes one JSON line.
func (logger *Logger) emit(ctx context.Context, level, action, msg string, errObj *ErrorObject, details any) {
	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Service:   logger.service,
		Action:    action,
		Message:   msg,
		Hostname:  logger.hostname,
		RequestID: requestIDFrom(ctx),
		Error:     errObj,
		Details:   details,
	}

	b, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log marshal failed: %v\n", err)
		return
	}
	fmt.Println(string(b))
}

func (logger *Logger) Info(ctx context.Context, action, msg string, details any) {
	logger.emit(ctx, "INFO", action, msg, nil, details)
}

func (logger *Logger) Debug(ctx context.Context, action, msg string, details any) {
	logger.emit(ctx, "DEBUG", action, msg, nil, details)
}

func (logger *Logger) Error(ctx context.Context, action, msg string, err error) {
	errObj := &ErrorObject{Msg: "unknown", Stack: string(debug.Stack())}
	if err != nil {
		errObj.Msg = err.Error()
	}
	logger.emit(ctx, "ERROR", action, msg, errObj, nil)
}
