package spies

import (
	"context"
	"log/slog"
	"sync"
)

// ContextualLogEntry represents a captured contextual log call.
type ContextualLogEntry struct {
	Level   slog.Level
	Message string
	Args    []any
}

// TestContextualLogger is a ContextualLogger implementation that captures log calls for testing.
type TestContextualLogger struct {
	entries []ContextualLogEntry
	mu      sync.Mutex
}

// NewTestContextualLogger creates a new TestContextualLogger.
func NewTestContextualLogger() *TestContextualLogger {
	return &TestContextualLogger{entries: make([]ContextualLogEntry, 0)}
}

// DebugContext captures a debug-level log call.
func (l *TestContextualLogger) DebugContext(_ context.Context, msg string, args ...any) {
	l.capture(slog.LevelDebug, msg, args)
}

// InfoContext captures an info-level log call.
func (l *TestContextualLogger) InfoContext(_ context.Context, msg string, args ...any) {
	l.capture(slog.LevelInfo, msg, args)
}

// WarnContext captures a warn-level log call.
func (l *TestContextualLogger) WarnContext(_ context.Context, msg string, args ...any) {
	l.capture(slog.LevelWarn, msg, args)
}

// ErrorContext captures an error-level log call.
func (l *TestContextualLogger) ErrorContext(_ context.Context, msg string, args ...any) {
	l.capture(slog.LevelError, msg, args)
}

func (l *TestContextualLogger) capture(level slog.Level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	argsCopy := make([]any, len(args))
	copy(argsCopy, args)

	l.entries = append(l.entries, ContextualLogEntry{Level: level, Message: msg, Args: argsCopy})
}

// GetEntryCount returns the number of captured log calls.
func (l *TestContextualLogger) GetEntryCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// GetEntries returns a copy of all captured log calls.
func (l *TestContextualLogger) GetEntries() []ContextualLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := make([]ContextualLogEntry, len(l.entries))
	copy(entries, l.entries)

	return entries
}

// HasEntryWithMessage checks if there is a captured log call at the given level with the given message.
func (l *TestContextualLogger) HasEntryWithMessage(level slog.Level, message string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, entry := range l.entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}

	return false
}
