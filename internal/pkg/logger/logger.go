package logger

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AddFields adds fields to the logger in context and returns the new context.
func AddFields(ctx context.Context, fields ...zap.Field) context.Context {
	l := ctxzap.Extract(ctx)
	return ctxzap.ToContext(ctx, l.With(fields...))
}

// WithAction tags the context logger with the business action being handled.
func WithAction(ctx context.Context, action string) context.Context {
	return AddFields(ctx, zap.String("action", action))
}

// WithBot tags the context logger with the bot being operated on.
func WithBot(ctx context.Context, botID string) context.Context {
	return AddFields(ctx, zap.String("bot_id", botID))
}
