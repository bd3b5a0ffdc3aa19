package appctx

import (
	"context"
)

// Context key for storing the request identifier
type contextKey string

const RequestIDContextKey contextKey = "request_id"

// SetRequestID adds the request identifier to the request context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}

// GetRequestID extracts the request identifier from the request context
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDContextKey).(string)
	return requestID, ok
}
