// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyTaskID ctxKey = "task_id"

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, taskID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if taskID != "" {
		ctx = context.WithValue(ctx, keyTaskID, taskID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// TaskID returns the tracker task id on the context if present
func TaskID(ctx context.Context) string {
	if v, ok := ctx.Value(keyTaskID).(string); ok {
		return v
	}
	return ""
}
