package services

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	videoIDKey   contextKey = "video_id"
	operationKey contextKey = "operation"
	requestIDKey contextKey = "request_id"
)

// WithVideoID annotates context with the video identifier being resolved.
func WithVideoID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, videoIDKey, id)
}

// VideoIDFromContext extracts the video identifier if present.
func VideoIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(videoIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithOperation annotates context with the public operation name.
func WithOperation(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey, name)
}

// OperationFromContext returns the operation name if present.
func OperationFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(operationKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(requestIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// EnsureRequestID returns a context that carries a correlation identifier,
// minting one when the caller did not supply any.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id, ok := RequestIDFromContext(ctx); ok {
		return ctx, id
	}
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}
