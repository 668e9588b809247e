package logging

import "context"

// NoopLogger discards everything. Handy default for tests.
type NoopLogger struct{}

func NewNoopLogger() *NoopLogger { return &NoopLogger{} }

func (n *NoopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (n *NoopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (n *NoopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (n *NoopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (n *NoopLogger) With(args ...any) Logger                            { return n }
