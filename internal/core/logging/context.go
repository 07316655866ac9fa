package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	tabIDKey     contextKey = "tab_id"
)

// WithRequestID adds an archive request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithTabID adds the id of the tab a request belongs to.
func WithTabID(ctx context.Context, tabID string) context.Context {
	return context.WithValue(ctx, tabIDKey, tabID)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetTabID retrieves the tab ID from the context.
// Returns empty string if not present.
func GetTabID(ctx context.Context) string {
	if id, ok := ctx.Value(tabIDKey).(string); ok {
		return id
	}
	return ""
}
